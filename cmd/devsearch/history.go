package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sigreer/devsearch/internal/config"
	"github.com/sigreer/devsearch/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent search invocations from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("count")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cfg.Journal == "" {
			return fmt.Errorf("no journal configured; set journal in the config file")
		}

		j, err := journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.Recent(limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tMODE\tKEY\tMATCHES\tBOUND")
		for _, e := range entries {
			bound := ""
			if e.BoundDevice != "" {
				bound = e.BoundVar + "=" + e.BoundDevice
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", humanize.Time(e.At), e.Mode, e.Key, e.Matches, bound)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntP("count", "c", 20, "number of entries to show")
}
