package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sigreer/devsearch/internal/cache"
	"github.com/sigreer/devsearch/internal/config"
	"github.com/sigreer/devsearch/internal/device"
	"github.com/sigreer/devsearch/internal/search"
)

// volumeInfo is the cached result of probing one device.
type volumeInfo struct {
	FSType string
	Label  string
	UUID   string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List block devices with size, filesystem, label and UUID",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		mgr := device.NewManager(cfg.SysfsDir, cfg.DevDir)

		var names []string
		if err := mgr.Devices(func(name string) bool {
			names = append(names, name)
			return false
		}); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tFSTYPE\tLABEL\tUUID")
		for _, name := range names {
			info := mgr.Stat(name)
			vol := probeCached(mgr, name)
			size := ""
			if info.SizeBytes > 0 {
				size = humanize.IBytes(info.SizeBytes)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, size, vol.FSType, vol.Label, vol.UUID)
		}
		return w.Flush()
	},
}

// probeCached probes a device's filesystem, reusing a recent result.
func probeCached(mgr *device.Manager, name string) volumeInfo {
	if v := cache.Global().Get("volume:" + name); v != nil {
		return v.(volumeInfo)
	}

	var info volumeInfo
	dev, err := mgr.OpenDevice(name)
	if err != nil {
		return info
	}
	defer dev.Close()

	vol, err := dev.Volume()
	if err != nil {
		return info
	}
	info.FSType = vol.FSType()
	if lv, ok := vol.(search.LabelVolume); ok {
		info.Label, _ = lv.Label()
	}
	if uv, ok := vol.(search.UUIDVolume); ok {
		info.UUID, _ = uv.UUID()
	}
	cache.Global().Set("volume:"+name, info, cache.TTLProbe)
	return info
}
