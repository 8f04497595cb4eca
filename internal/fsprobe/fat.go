package fsprobe

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// FAT boot sector: 0x55AA signature at 510. The extended BPB carries the
// volume serial and label; FAT32 keeps them at different offsets than
// FAT12/16.
const (
	fatBootSigOff = 510

	fat16SerialOff = 0x27
	fat16LabelOff  = 0x2b
	fat16TypeOff   = 0x36

	fat32SerialOff = 0x43
	fat32LabelOff  = 0x47
	fat32TypeOff   = 0x52
)

type fatVolume struct {
	r         io.ReaderAt
	serialOff int64
	labelOff  int64
}

func probeFAT(r io.ReaderAt) Volume {
	var sig [2]byte
	if !readAt(r, sig[:], fatBootSigOff) || sig[0] != 0x55 || sig[1] != 0xaa {
		return nil
	}

	var typ [8]byte
	if readAt(r, typ[:], fat32TypeOff) && string(typ[:5]) == "FAT32" {
		return &fatVolume{r: r, serialOff: fat32SerialOff, labelOff: fat32LabelOff}
	}
	if readAt(r, typ[:], fat16TypeOff) && string(typ[:3]) == "FAT" {
		return &fatVolume{r: r, serialOff: fat16SerialOff, labelOff: fat16LabelOff}
	}
	return nil
}

func (v *fatVolume) FSType() string { return "vfat" }

func (v *fatVolume) Label() (string, error) {
	var buf [11]byte
	if _, err := v.r.ReadAt(buf[:], v.labelOff); err != nil {
		return "", err
	}
	label := strings.TrimRight(string(buf[:]), " \x00")
	// The placeholder mkfs writes when no label was given.
	if label == "NO NAME" {
		return "", nil
	}
	return label, nil
}

// UUID renders the 32-bit volume serial the way blkid does: XXXX-XXXX.
func (v *fatVolume) UUID() (string, error) {
	var buf [4]byte
	if _, err := v.r.ReadAt(buf[:], v.serialOff); err != nil {
		return "", err
	}
	serial := binary.LittleEndian.Uint32(buf[:])
	return fmt.Sprintf("%04X-%04X", serial>>16, serial&0xffff), nil
}
