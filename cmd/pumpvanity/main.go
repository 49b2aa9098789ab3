package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Amr-9/pumpvanity/internal/config"
)

var (
	Version   = "0.4.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "pumpvanity",
		Short: "Solana vanity address generator",
		Long: `Search for a Solana (or Tron, Bitcoin) address that starts and/or ends
with the given Base58 characters, using every CPU core.

  pumpvanity --suffix pump
  pumpvanity --prefix Dev --threads 8 --timeout 10m`,
		RunE:          runSearch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run:   runVersion,
	}
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	initCommands()
	return rootCmd.Execute()
}

func initCommands() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "human-readable logs instead of JSON")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to a rotated file")

	f := rootCmd.Flags()
	f.StringP("prefix", "p", "", "address prefix to match")
	f.StringP("suffix", "s", "", "address suffix to match")
	f.IntP("threads", "t", runtime.NumCPU(), "number of worker goroutines")
	f.StringP("network", "n", "solana", "key system: solana, tron or bitcoin")
	f.Duration("timeout", 0, "give up after this long (0 = never)")
	f.StringP("output", "o", "", "file to save the keypair to")
	f.String("format", "", "output format: text, yaml, json or keygen")
	f.Bool("encrypt", false, "encrypt the saved secret key with a passphrase")
	f.Bool("no-save", false, "print the keypair without saving it")
	f.Bool("high-priority", false, "raise the process scheduling priority")
	f.Bool("metrics", false, "serve Prometheus metrics while searching")
	f.String("metrics-addr", "", "metrics listen address")
}

func runVersion(*cobra.Command, []string) {
	fmt.Printf("pumpvanity\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-pretty") {
		cfg.Log.Pretty, _ = flags.GetBool("log-pretty")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}

	if flags.Changed("prefix") {
		cfg.Search.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("suffix") {
		cfg.Search.Suffix, _ = flags.GetString("suffix")
	}
	if flags.Changed("threads") {
		cfg.Search.Workers, _ = flags.GetInt("threads")
	}
	if flags.Changed("network") {
		cfg.Search.Network, _ = flags.GetString("network")
	}
	if flags.Changed("timeout") {
		cfg.Search.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("high-priority") {
		cfg.Search.HighPriority, _ = flags.GetBool("high-priority")
	}

	if flags.Changed("output") {
		cfg.Output.File, _ = flags.GetString("output")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("encrypt") {
		cfg.Output.Encrypt, _ = flags.GetBool("encrypt")
	}
	if noSave, _ := flags.GetBool("no-save"); noSave {
		cfg.Output.File = ""
	}

	if flags.Changed("metrics") {
		cfg.Metrics.Enabled, _ = flags.GetBool("metrics")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.ListenAddr, _ = flags.GetString("metrics-addr")
	}
}
