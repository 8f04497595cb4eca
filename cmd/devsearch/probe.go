package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sigreer/devsearch/internal/config"
	"github.com/sigreer/devsearch/internal/device"
	"github.com/sigreer/devsearch/internal/search"
)

var probeCmd = &cobra.Command{
	Use:   "probe DEVICE",
	Short: "Probe a single device and print what was found",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		name := args[0]
		mgr := device.NewManager(cfg.SysfsDir, cfg.DevDir)
		dev, err := mgr.OpenDevice(name)
		if err != nil {
			return err
		}
		defer dev.Close()

		vol, err := dev.Volume()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		fmt.Printf("device: %s\n", name)
		fmt.Printf("fstype: %s\n", vol.FSType())
		if lv, ok := vol.(search.LabelVolume); ok {
			if label, err := lv.Label(); err == nil && label != "" {
				fmt.Printf("label:  %s\n", label)
			}
		}
		if uv, ok := vol.(search.UUIDVolume); ok {
			if id, err := uv.UUID(); err == nil && id != "" {
				fmt.Printf("uuid:   %s\n", id)
			}
		}
		if sz, ok := dev.(device.Sizer); ok {
			if n, err := sz.Size(); err == nil {
				fmt.Printf("size:   %s\n", humanize.IBytes(n))
			}
		}
		return nil
	},
}
