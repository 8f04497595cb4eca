package device

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDevicesWalksInDirectoryOrder(t *testing.T) {
	sysfs := t.TempDir()
	for _, name := range []string{"sdb", "sda", "fd0"} {
		writeFile(t, filepath.Join(sysfs, name), nil)
	}

	m := NewManager(sysfs, t.TempDir())
	var got []string
	if err := m.Devices(func(name string) bool {
		got = append(got, name)
		return false
	}); err != nil {
		t.Fatalf("Devices: %v", err)
	}
	want := []string{"fd0", "sda", "sdb"}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v, want %v", got, want)
		}
	}
}

func TestDevicesHonorsAbort(t *testing.T) {
	sysfs := t.TempDir()
	for _, name := range []string{"sda", "sdb", "sdc"} {
		writeFile(t, filepath.Join(sysfs, name), nil)
	}

	m := NewManager(sysfs, t.TempDir())
	var got []string
	if err := m.Devices(func(name string) bool {
		got = append(got, name)
		return name == "sdb"
	}); err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(got) != 2 || got[1] != "sdb" {
		t.Errorf("visited %v, want walk to stop at sdb", got)
	}
}

func TestDevicesSkipsDirectories(t *testing.T) {
	sysfs := t.TempDir()
	writeFile(t, filepath.Join(sysfs, "sda"), nil)
	if err := os.Mkdir(filepath.Join(sysfs, "power"), 0o755); err != nil {
		t.Fatal(err)
	}

	m := NewManager(sysfs, t.TempDir())
	var got []string
	if err := m.Devices(func(name string) bool {
		got = append(got, name)
		return false
	}); err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(got) != 1 || got[0] != "sda" {
		t.Errorf("visited %v, want only sda", got)
	}
}

func TestDevicesMissingSysfs(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	if err := m.Devices(func(string) bool { return false }); err == nil {
		t.Error("Devices on missing sysfs dir succeeded, want error")
	}
}

// ext2 disk image with just enough superblock to be recognised.
func ext2Image(label string) []byte {
	img := make([]byte, 4096)
	binary.LittleEndian.PutUint16(img[0x438:], 0xef53)
	copy(img[0x478:], label)
	return img
}

func TestOpenDeviceProbesImage(t *testing.T) {
	devdir := t.TempDir()
	img := ext2Image("BOOT")
	writeFile(t, filepath.Join(devdir, "sda1"), img)

	m := NewManager(t.TempDir(), devdir)
	dev, err := m.OpenDevice("sda1")
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	defer dev.Close()

	vol, err := dev.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if vol.FSType() != "ext2" {
		t.Errorf("fstype = %q, want ext2", vol.FSType())
	}

	sz, ok := dev.(Sizer)
	if !ok {
		t.Fatal("device does not expose Size")
	}
	n, err := sz.Size()
	if err != nil || n != uint64(len(img)) {
		t.Errorf("Size = %d, %v, want %d", n, err, len(img))
	}
}

func TestOpenDeviceMissingNode(t *testing.T) {
	m := NewManager(t.TempDir(), t.TempDir())
	if _, err := m.OpenDevice("sdz"); err == nil {
		t.Error("OpenDevice(sdz) succeeded, want error")
	}
}

func TestStatReadsSysfsAttributes(t *testing.T) {
	sysfs := t.TempDir()
	base := filepath.Join(sysfs, "sda")
	writeFile(t, filepath.Join(base, "size"), []byte("1000\n"))
	writeFile(t, filepath.Join(base, "removable"), []byte("1\n"))
	writeFile(t, filepath.Join(base, "device", "model"), []byte("Samsung SSD  \n"))

	m := NewManager(sysfs, t.TempDir())
	info := m.Stat("sda")
	if info.SizeBytes != 1000*512 {
		t.Errorf("SizeBytes = %d, want %d", info.SizeBytes, 1000*512)
	}
	if !info.Removable {
		t.Error("Removable = false, want true")
	}
	if info.Model != "Samsung SSD" {
		t.Errorf("Model = %q, want Samsung SSD", info.Model)
	}
}

func TestStatMissingAttributes(t *testing.T) {
	m := NewManager(t.TempDir(), t.TempDir())
	info := m.Stat("sdq")
	if info.SizeBytes != 0 || info.Removable || info.Model != "" {
		t.Errorf("Stat on absent device = %+v, want zero values", info)
	}
}
