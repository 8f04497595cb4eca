// Package device enumerates Linux block devices through sysfs and opens
// their nodes under /dev. Both roots are configurable so tests can point
// them at fixtures.
package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/sigreer/devsearch/internal/fsprobe"
	"github.com/sigreer/devsearch/internal/search"
)

const (
	DefaultSysfsDir = "/sys/class/block"
	DefaultDevDir   = "/dev"
)

// Manager implements the search core's DeviceIterator and DeviceOpener.
type Manager struct {
	SysfsDir string
	DevDir   string
}

func NewManager(sysfsDir, devDir string) *Manager {
	if sysfsDir == "" {
		sysfsDir = DefaultSysfsDir
	}
	if devDir == "" {
		devDir = DefaultDevDir
	}
	return &Manager{SysfsDir: sysfsDir, DevDir: devDir}
}

// Devices visits every block device name in directory order, stopping early
// when visit returns true. Subdirectories are skipped; device entries in
// /sys/class/block are symlinks.
func (m *Manager) Devices(visit func(name string) bool) error {
	entries, err := os.ReadDir(m.SysfsDir)
	if err != nil {
		return fmt.Errorf("enumerate block devices: %w", err)
	}
	logrus.WithField("devices", len(entries)).Debug("enumerating block devices")
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if visit(e.Name()) {
			break
		}
	}
	return nil
}

// OpenDevice opens the device node read-only. O_NONBLOCK keeps removable
// drives without a medium from blocking the open.
func (m *Manager) OpenDevice(name string) (search.Device, error) {
	f, err := os.OpenFile(filepath.Join(m.DevDir, name), os.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return &blockDevice{f: f}, nil
}

// Sizer is implemented by open devices whose byte size can be read.
type Sizer interface {
	Size() (uint64, error)
}

type blockDevice struct {
	f *os.File
}

func (d *blockDevice) Volume() (search.Volume, error) {
	vol, err := fsprobe.Probe(d.f)
	if err != nil {
		return nil, err
	}
	return vol, nil
}

func (d *blockDevice) Close() error {
	return d.f.Close()
}

// Size asks the kernel via BLKGETSIZE64, falling back to the file size for
// regular files (disk images).
func (d *blockDevice) Size() (uint64, error) {
	var sz uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&sz)))
	if errno == 0 {
		return sz, nil
	}
	st, err := d.f.Stat()
	if err != nil {
		return 0, err
	}
	if st.Mode().IsRegular() {
		return uint64(st.Size()), nil
	}
	return 0, errno
}

// Info holds the sysfs attributes the list command shows.
type Info struct {
	Name      string
	SizeBytes uint64
	Removable bool
	Model     string
}

// Stat collects Info from sysfs without opening the device node. Missing
// attributes stay zero.
func (m *Manager) Stat(name string) Info {
	info := Info{Name: name}
	base := filepath.Join(m.SysfsDir, name)

	if data, err := os.ReadFile(filepath.Join(base, "size")); err == nil {
		if sectors, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64); err == nil {
			info.SizeBytes = sectors * 512
		}
	}
	if data, err := os.ReadFile(filepath.Join(base, "removable")); err == nil {
		info.Removable = strings.TrimSpace(string(data)) == "1"
	}
	if data, err := os.ReadFile(filepath.Join(base, "device", "model")); err == nil {
		info.Model = strings.TrimSpace(string(data))
	}
	return info
}
