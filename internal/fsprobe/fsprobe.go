// Package fsprobe identifies the filesystem on a block device and reads its
// label and UUID where the on-disk format carries them.
//
// Nothing is ever mounted: each probe reads the superblock (or volume
// descriptor) at its documented offset and checks the magic, the way blkid
// does. Accessors read from the device at call time, so a vanished device
// surfaces as a read error rather than stale data.
package fsprobe

import (
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrUnknownFS is returned when no probe recognises the device content.
var ErrUnknownFS = errors.New("unknown filesystem")

// Volume is a recognised filesystem. Formats that carry a label or UUID
// additionally implement LabelVolume / UUIDVolume.
type Volume interface {
	FSType() string
}

// LabelVolume is implemented by volumes whose format carries a label.
type LabelVolume interface {
	Volume
	Label() (string, error)
}

// UUIDVolume is implemented by volumes whose format carries a UUID.
type UUIDVolume interface {
	Volume
	UUID() (string, error)
}

// A probeFunc inspects r and returns a volume when the magic matches, nil
// when it does not. An I/O error at a probe offset means "not this
// filesystem": a device shorter than the offset cannot hold that superblock.
type probeFunc func(r io.ReaderAt) Volume

// Probe order matters where detection could overlap; FAT goes last because
// its boot-sector check is the most forgiving.
var probes = []probeFunc{
	probeExt,
	probeXFS,
	probeBtrfs,
	probeSwap,
	probeISO9660,
	probeFAT,
}

// Probe identifies the filesystem on r.
func Probe(r io.ReaderAt) (Volume, error) {
	for _, p := range probes {
		if v := p(r); v != nil {
			return v, nil
		}
	}
	return nil, ErrUnknownFS
}

// readAt reads exactly len(buf) bytes at off, reporting success.
func readAt(r io.ReaderAt, buf []byte, off int64) bool {
	_, err := r.ReadAt(buf, off)
	return err == nil
}

// trimNul cuts a fixed-size label field at the first NUL.
func trimNul(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// formatUUID renders 16 raw bytes in the canonical 8-4-4-4-12 form.
func formatUUID(b []byte) (string, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
