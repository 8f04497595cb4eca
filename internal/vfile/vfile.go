// Package vfile resolves device references like "(sda1)/boot/grub/grub.cfg"
// against the running system's mount table. A device that is not mounted
// cannot be addressed, which file-mode searching treats the same as an
// absent file.
package vfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const DefaultMountsPath = "/proc/self/mounts"

// Resolver opens files addressed by device reference.
type Resolver struct {
	MountsPath string
	DevDir     string
}

func NewResolver(mountsPath, devDir string) *Resolver {
	if mountsPath == "" {
		mountsPath = DefaultMountsPath
	}
	if devDir == "" {
		devDir = "/dev"
	}
	return &Resolver{MountsPath: mountsPath, DevDir: devDir}
}

// SplitRef splits "(name)path" into its device name and path parts.
func SplitRef(ref string) (name, path string, err error) {
	if len(ref) == 0 || ref[0] != '(' {
		return "", "", fmt.Errorf("malformed device reference %q", ref)
	}
	end := strings.IndexByte(ref, ')')
	if end < 0 {
		return "", "", fmt.Errorf("malformed device reference %q", ref)
	}
	name, path = ref[1:end], ref[end+1:]
	if name == "" || path == "" {
		return "", "", fmt.Errorf("malformed device reference %q", ref)
	}
	return name, path, nil
}

// OpenFile opens the referenced file if the device is mounted and the file
// exists. The returned handle only proves presence; callers close it right
// away.
func (r *Resolver) OpenFile(ref string) (io.Closer, error) {
	name, rel, err := SplitRef(ref)
	if err != nil {
		return nil, err
	}
	mp, err := r.mountPoint(name)
	if err != nil {
		return nil, err
	}

	full := filepath.Join(mp, rel)
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", full)
	}
	logrus.WithFields(logrus.Fields{"device": name, "path": full}).Debug("file present")
	return f, nil
}

// mountPoint finds where the named device is mounted.
func (r *Resolver) mountPoint(name string) (string, error) {
	data, err := os.ReadFile(r.MountsPath)
	if err != nil {
		return "", fmt.Errorf("read mount table: %w", err)
	}

	devPath := filepath.Join(r.DevDir, name)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if unescapeMount(fields[0]) == devPath {
			return unescapeMount(fields[1]), nil
		}
	}
	return "", fmt.Errorf("device %s is not mounted", name)
}

// unescapeMount undoes the \ooo octal escapes /proc/self/mounts uses for
// whitespace in paths.
func unescapeMount(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
