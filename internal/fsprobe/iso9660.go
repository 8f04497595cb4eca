package fsprobe

import (
	"io"
	"strings"
)

// ISO 9660: the primary volume descriptor sits at 0x8000 with type byte 1
// and identifier "CD001". The 32-byte volume identifier at +40 serves as the
// label. The format has no UUID, so isoVolume deliberately lacks that
// accessor.
const (
	isoPVDOff   = 0x8000
	isoLabelOff = isoPVDOff + 40
)

const isoMagic = "CD001"

type isoVolume struct {
	r io.ReaderAt
}

func probeISO9660(r io.ReaderAt) Volume {
	var buf [6]byte
	if !readAt(r, buf[:], isoPVDOff) {
		return nil
	}
	if buf[0] != 1 || string(buf[1:]) != isoMagic {
		return nil
	}
	return &isoVolume{r: r}
}

func (v *isoVolume) FSType() string { return "iso9660" }

func (v *isoVolume) Label() (string, error) {
	var buf [32]byte
	if _, err := v.r.ReadAt(buf[:], isoLabelOff); err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf[:]), " \x00"), nil
}
