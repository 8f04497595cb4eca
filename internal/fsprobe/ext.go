package fsprobe

import (
	"encoding/binary"
	"io"
)

// ext2/3/4 superblock lives at offset 1024. Field offsets per
// https://www.kernel.org/doc/html/latest/filesystems/ext4/globals.html
const (
	extSuperOff    = 0x400
	extMagicOff    = extSuperOff + 0x38
	extCompatOff   = extSuperOff + 0x5c
	extIncompatOff = extSuperOff + 0x60
	extUUIDOff     = extSuperOff + 0x68
	extLabelOff    = extSuperOff + 0x78

	extMagic = 0xef53

	extCompatHasJournal = 0x4
	extIncompatExtents  = 0x40
	extIncompat64Bit    = 0x80
)

type extVolume struct {
	r    io.ReaderAt
	name string
}

func probeExt(r io.ReaderAt) Volume {
	var magic [2]byte
	if !readAt(r, magic[:], extMagicOff) {
		return nil
	}
	if binary.LittleEndian.Uint16(magic[:]) != extMagic {
		return nil
	}

	// A journal makes it ext3, extent or 64-bit support makes it ext4.
	name := "ext2"
	var feat [4]byte
	if readAt(r, feat[:], extCompatOff) && binary.LittleEndian.Uint32(feat[:])&extCompatHasJournal != 0 {
		name = "ext3"
	}
	if readAt(r, feat[:], extIncompatOff) && binary.LittleEndian.Uint32(feat[:])&(extIncompatExtents|extIncompat64Bit) != 0 {
		name = "ext4"
	}
	return &extVolume{r: r, name: name}
}

func (v *extVolume) FSType() string { return v.name }

func (v *extVolume) Label() (string, error) {
	var buf [16]byte
	if _, err := v.r.ReadAt(buf[:], extLabelOff); err != nil {
		return "", err
	}
	return trimNul(buf[:]), nil
}

func (v *extVolume) UUID() (string, error) {
	var buf [16]byte
	if _, err := v.r.ReadAt(buf[:], extUUIDOff); err != nil {
		return "", err
	}
	return formatUUID(buf[:])
}
