package fsprobe

import (
	"bytes"
	"io"
)

// XFS superblock at offset 0: magic "XFSB", sb_uuid at +0x20, sb_fname
// (12 bytes) at +0x6c.
const (
	xfsUUIDOff  = 0x20
	xfsLabelOff = 0x6c
)

var xfsMagic = []byte("XFSB")

type xfsVolume struct {
	r io.ReaderAt
}

func probeXFS(r io.ReaderAt) Volume {
	buf := make([]byte, len(xfsMagic))
	if !readAt(r, buf, 0) || !bytes.Equal(buf, xfsMagic) {
		return nil
	}
	return &xfsVolume{r: r}
}

func (v *xfsVolume) FSType() string { return "xfs" }

func (v *xfsVolume) Label() (string, error) {
	var buf [12]byte
	if _, err := v.r.ReadAt(buf[:], xfsLabelOff); err != nil {
		return "", err
	}
	return trimNul(buf[:]), nil
}

func (v *xfsVolume) UUID() (string, error) {
	var buf [16]byte
	if _, err := v.r.ReadAt(buf[:], xfsUUIDOff); err != nil {
		return "", err
	}
	return formatUUID(buf[:])
}
