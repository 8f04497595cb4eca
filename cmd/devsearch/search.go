package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sigreer/devsearch/internal/config"
	"github.com/sigreer/devsearch/internal/device"
	"github.com/sigreer/devsearch/internal/env"
	"github.com/sigreer/devsearch/internal/journal"
	"github.com/sigreer/devsearch/internal/search"
	"github.com/sigreer/devsearch/internal/vfile"
)

var searchCmd = &cobra.Command{
	Use:   "search [-f|-l|-u] [-s[=VAR]] [-n] KEY",
	Short: "Search devices by file, filesystem label or filesystem UUID",
	Long: `Search every known block device for the given key. Without --set, each
matching device is printed. With --set, the first device found is bound to a
variable instead; if no variable name is given, "root" is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return search.ErrNoArgument
		}
		key := args[0]

		req := search.Request{Mode: searchMode(cmd), Key: key}
		if cmd.Flags().Changed("set") {
			req.SetVar, _ = cmd.Flags().GetString("set")
			if req.SetVar == "" {
				req.SetVar = "root"
			}
		}
		req.NoFloppy, _ = cmd.Flags().GetBool("no-floppy")

		if req.Mode == search.ModeUUID {
			if _, err := uuid.Parse(key); err != nil {
				logrus.WithField("key", key).Debug("search key is not a canonical UUID; matching stays byte-exact")
			}
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		mgr := device.NewManager(cfg.SysfsDir, cfg.DevDir)
		s := &search.Searcher{
			Devices: mgr,
			Opener:  mgr,
			Files:   vfile.NewResolver(cfg.MountsFile, cfg.DevDir),
			Vars:    env.Default(),
			Out:     os.Stdout,
		}

		start := time.Now()
		sum, serr := s.Run(req)
		if sum.Matches > 0 && req.SetVar == "" {
			fmt.Println()
		}
		recordSearch(cfg, req, sum, time.Since(start))
		return serr
	},
}

// searchMode resolves the mode flags the way the flag set defines them:
// label wins over fs-uuid, file is the default when nothing is given.
func searchMode(cmd *cobra.Command) search.Mode {
	if ok, _ := cmd.Flags().GetBool("label"); ok {
		return search.ModeLabel
	}
	if ok, _ := cmd.Flags().GetBool("fs-uuid"); ok {
		return search.ModeUUID
	}
	return search.ModeFile
}

// recordSearch appends the invocation to the journal when one is configured.
// Journal trouble never affects the search outcome.
func recordSearch(cfg *config.Config, req search.Request, sum search.Summary, dur time.Duration) {
	if cfg.Journal == "" {
		return
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		logrus.WithError(err).Warn("search journal unavailable")
		return
	}
	defer j.Close()

	e := journal.Entry{
		Mode:        req.Mode.String(),
		Key:         req.Key,
		Matches:     sum.Matches,
		BoundDevice: sum.Bound,
		Duration:    dur,
	}
	if sum.Bound != "" {
		e.BoundVar = req.SetVar
	}
	if err := j.Record(e); err != nil {
		logrus.WithError(err).Warn("failed to record search")
	}
}

func init() {
	searchCmd.Flags().BoolP("file", "f", false, "search devices by a file (default)")
	searchCmd.Flags().BoolP("label", "l", false, "search devices by a filesystem label")
	searchCmd.Flags().BoolP("fs-uuid", "u", false, "search devices by a filesystem UUID")
	searchCmd.Flags().StringP("set", "s", "", "set a variable to the first device found")
	searchCmd.Flags().Lookup("set").NoOptDefVal = "root"
	searchCmd.Flags().BoolP("no-floppy", "n", false, "do not probe any floppy drive")
}
