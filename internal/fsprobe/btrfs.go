package fsprobe

import (
	"bytes"
	"io"
)

// Btrfs on-disk format: https://btrfs.wiki.kernel.org/index.php/On-disk_Format
// Superblock at 0x10000; fsid at +0x20, magic "_BHRfS_M" at +0x40, label
// (256 bytes) at +0x12b.
const (
	btrfsSuperOff = 0x10000
	btrfsUUIDOff  = btrfsSuperOff + 0x20
	btrfsMagicOff = btrfsSuperOff + 0x40
	btrfsLabelOff = btrfsSuperOff + 0x12b
)

var btrfsMagic = []byte("_BHRfS_M")

type btrfsVolume struct {
	r io.ReaderAt
}

func probeBtrfs(r io.ReaderAt) Volume {
	buf := make([]byte, len(btrfsMagic))
	if !readAt(r, buf, btrfsMagicOff) || !bytes.Equal(buf, btrfsMagic) {
		return nil
	}
	return &btrfsVolume{r: r}
}

func (v *btrfsVolume) FSType() string { return "btrfs" }

func (v *btrfsVolume) Label() (string, error) {
	buf := make([]byte, 256)
	if _, err := v.r.ReadAt(buf, btrfsLabelOff); err != nil {
		return "", err
	}
	return trimNul(buf), nil
}

func (v *btrfsVolume) UUID() (string, error) {
	var buf [16]byte
	if _, err := v.r.ReadAt(buf[:], btrfsUUIDOff); err != nil {
		return "", err
	}
	return formatUUID(buf[:])
}
