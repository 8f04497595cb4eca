package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sigreer/devsearch/internal/config"
	"github.com/sigreer/devsearch/internal/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "devsearch",
	Short: "Locate block devices by file, filesystem label or filesystem UUID",
	Long: `devsearch scans the block devices the kernel currently knows about and
matches each one against a search key: a file that must be present on the
device, a filesystem label, or a filesystem UUID. It is meant for early-boot
style environments where no persistent device naming exists yet, typically
to pick out the boot or root device.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	level := logrus.WarnLevel
	if cfg, err := config.Load(cfgFile); err == nil {
		if parsed, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
	}
	logrus.SetLevel(level)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the devsearch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/devsearch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
