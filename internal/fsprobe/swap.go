package fsprobe

import "io"

// Linux swap header, 4 KiB pages: the signature fills the last 10 bytes of
// the first page; the info block at offset 1024 holds version, last_page,
// nr_badpages, then a 16-byte UUID and a 16-byte label.
const (
	swapPageSize = 4096
	swapSigOff   = swapPageSize - 10
	swapUUIDOff  = 1024 + 12
	swapLabelOff = 1024 + 28
)

type swapVolume struct {
	r io.ReaderAt
}

func probeSwap(r io.ReaderAt) Volume {
	var buf [10]byte
	if !readAt(r, buf[:], swapSigOff) {
		return nil
	}
	sig := string(buf[:])
	if sig != "SWAPSPACE2" && sig != "SWAP-SPACE" {
		return nil
	}
	return &swapVolume{r: r}
}

func (v *swapVolume) FSType() string { return "swap" }

func (v *swapVolume) Label() (string, error) {
	var buf [16]byte
	if _, err := v.r.ReadAt(buf[:], swapLabelOff); err != nil {
		return "", err
	}
	return trimNul(buf[:]), nil
}

func (v *swapVolume) UUID() (string, error) {
	var buf [16]byte
	if _, err := v.r.ReadAt(buf[:], swapUUIDOff); err != nil {
		return "", err
	}
	return formatUUID(buf[:])
}
