// Package search locates block devices by file presence, filesystem label or
// filesystem UUID. It owns the matching logic only; device enumeration,
// opening, filesystem probing, file access and the variable store are
// supplied by the caller as interfaces.
package search

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Mode selects how the search key is matched against a device.
type Mode int

const (
	ModeNone Mode = iota
	ModeFile
	ModeLabel
	ModeUUID
)

func (m Mode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeLabel:
		return "label"
	case ModeUUID:
		return "fs-uuid"
	default:
		return "none"
	}
}

// Invocation errors, detected before any device is touched.
var (
	ErrNoArgument = errors.New("no argument specified")
	ErrNoMode     = errors.New("unspecified search type")
)

// NotFoundError is returned when the walk finished without a single match.
type NotFoundError struct {
	Mode Mode
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Mode == ModeFile {
		return "no such file: " + e.Key
	}
	return "no such device: " + e.Key
}

// Request is the validated tuple a search runs on.
type Request struct {
	Mode     Mode
	Key      string
	SetVar   string // bind the first match to this variable; empty prints every match
	NoFloppy bool
}

// Summary reports what a finished search did.
type Summary struct {
	Matches int
	Bound   string // device bound to SetVar, empty if none
}

// DeviceIterator walks the currently known device names in platform order.
// The walk stops as soon as visit returns true.
type DeviceIterator interface {
	Devices(visit func(name string) (abort bool)) error
}

// Device is an open device handle.
type Device interface {
	Volume() (Volume, error)
	Close() error
}

// DeviceOpener acquires a handle for a device name.
type DeviceOpener interface {
	OpenDevice(name string) (Device, error)
}

// Volume describes a recognised filesystem on a device. Formats that carry a
// label or UUID additionally implement LabelVolume / UUIDVolume; a volume
// without the requested accessor can never match.
type Volume interface {
	FSType() string
}

// LabelVolume is implemented by volumes whose filesystem carries a label.
type LabelVolume interface {
	Volume
	Label() (string, error)
}

// UUIDVolume is implemented by volumes whose filesystem carries a UUID.
type UUIDVolume interface {
	Volume
	UUID() (string, error)
}

// FileOpener opens a file through a device reference such as
// "(sda1)/boot/grub/grub.cfg". A successful open means the file is present.
type FileOpener interface {
	OpenFile(ref string) (io.Closer, error)
}

// VarSetter is the variable store a binding search writes into.
type VarSetter interface {
	Set(name, value string)
}

// Searcher wires the core to its collaborators. Out receives one
// space-prefixed name per match when no binding is requested.
type Searcher struct {
	Devices DeviceIterator
	Opener  DeviceOpener
	Files   FileOpener
	Vars    VarSetter
	Out     io.Writer
	Log     logrus.FieldLogger
}

// walkState is the per-invocation context shared by every visit. The count
// only grows; once abort is set no further device is tested.
type walkState struct {
	count   int
	abort   bool
	bound   string
	pending error // unresolved error left behind by the tail of the walk
}

// Run validates the request, walks every device with the matcher the mode
// selects, and decides the final outcome.
func (s *Searcher) Run(req Request) (Summary, error) {
	if req.Key == "" {
		return Summary{}, ErrNoArgument
	}

	st := &walkState{}
	var visit func(string) bool
	switch req.Mode {
	case ModeLabel, ModeUUID:
		visit = s.metadataVisit(req, st)
	case ModeFile:
		visit = s.fileVisit(req, st)
	default:
		return Summary{}, ErrNoMode
	}

	if err := s.Devices.Devices(visit); err != nil && st.pending == nil {
		st.pending = err
	}

	sum := Summary{Matches: st.count, Bound: st.bound}
	if st.count == 0 {
		// A lingering error from the end of the walk is surfaced in
		// place of "not found".
		if st.pending != nil {
			return sum, st.pending
		}
		return sum, &NotFoundError{Mode: req.Mode, Key: req.Key}
	}
	return sum, nil
}

// metadataVisit tests one device by comparing its filesystem label or UUID
// against the key. Per-device failures are resolved here and never escape.
func (s *Searcher) metadataVisit(req Request, st *walkState) func(string) bool {
	return func(name string) bool {
		st.pending = nil
		if req.NoFloppy && IsFloppy(name) {
			return false
		}

		dev, err := s.Opener.OpenDevice(name)
		if err != nil {
			// An unusable device is not a search failure.
			s.logger().WithField("device", name).WithError(err).Debug("open failed")
			return false
		}
		defer dev.Close()

		vol, err := dev.Volume()
		if err != nil {
			s.logger().WithField("device", name).Debug("no filesystem recognised")
			return false
		}

		value, err := volumeAttr(vol, req.Mode)
		if err != nil || value == "" {
			return false
		}
		if value != req.Key {
			return false
		}

		return s.record(req, st, name)
	}
}

// fileVisit tests one device by trying to open the key as a file on it.
func (s *Searcher) fileVisit(req Request, st *walkState) func(string) bool {
	return func(name string) bool {
		st.pending = nil
		if req.NoFloppy && IsFloppy(name) {
			return false
		}

		f, err := s.Files.OpenFile("(" + name + ")" + req.Key)
		if err != nil {
			return false
		}
		defer f.Close()

		return s.record(req, st, name)
	}
}

// volumeAttr reads the attribute the mode asks for, if the filesystem has it.
func volumeAttr(vol Volume, mode Mode) (string, error) {
	switch mode {
	case ModeLabel:
		lv, ok := vol.(LabelVolume)
		if !ok {
			return "", nil
		}
		return lv.Label()
	case ModeUUID:
		uv, ok := vol.(UUIDVolume)
		if !ok {
			return "", nil
		}
		return uv.UUID()
	}
	return "", nil
}

// record books a match and reports whether the walk should stop.
func (s *Searcher) record(req Request, st *walkState, name string) bool {
	st.count++
	if req.SetVar != "" {
		s.Vars.Set(req.SetVar, name)
		st.bound = name
		st.abort = true
		s.logger().WithFields(logrus.Fields{"var": req.SetVar, "device": name}).Debug("bound first match")
	} else if s.Out != nil {
		fmt.Fprintf(s.Out, " %s", name)
	}
	return st.abort
}

// IsFloppy reports whether name follows the legacy floppy naming scheme:
// "fd" followed by a decimal digit.
func IsFloppy(name string) bool {
	return len(name) >= 3 && name[0] == 'f' && name[1] == 'd' && name[2] >= '0' && name[2] <= '9'
}

func (s *Searcher) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}
