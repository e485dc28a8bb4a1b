package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/breeze-rmm/updates-collector/internal/collectors"
	"github.com/breeze-rmm/updates-collector/internal/config"
	"github.com/breeze-rmm/updates-collector/internal/logging"
	"github.com/breeze-rmm/updates-collector/internal/pkgmgr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	version = "0.1.0"

	cfgFile    string
	outputPath string
	format     string
	cacheOnly  bool
	withHost   bool
	timeoutSec int
)

var log = logging.L("main")

var rootCmd = &cobra.Command{
	Use:   "updates-collector",
	Short: "Package update fact collector",
	Long: `updates-collector queries the host package manager (dnf or yum) for
available package updates and advisory metadata, and emits a single fact
document for the collection pipeline.`,
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect available updates and write the fact document",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCollect(cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List the enabled repositories of the detected package manager",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRepos(cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("updates-collector v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/updates-collector/updates-collector.yaml)")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "overall timeout in seconds")

	collectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to a file instead of stdout")
	collectCmd.Flags().StringVar(&format, "format", "", "output format: json or yaml")
	collectCmd.Flags().BoolVar(&cacheOnly, "cache-only", true, "use the existing metadata cache instead of refreshing")
	collectCmd.Flags().BoolVar(&withHost, "with-host", false, "include host identification facts in the document")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with any explicitly set flags and
// initializes logging. Validation problems are warnings, not failures.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = outputPath
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = format
	}
	if cmd.Flags().Changed("cache-only") {
		cfg.CacheOnly = cacheOnly
	}
	if cmd.Flags().Changed("with-host") {
		cfg.IncludeHost = withHost
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = timeoutSec
	}

	logWriter := io.Writer(os.Stderr)
	var logFileErr error
	if cfg.LogFile != "" {
		rw, err := logging.NewRotatingWriter(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
		if err != nil {
			logFileErr = err
		} else {
			logWriter = rw
		}
	}

	logging.Init(cfg.LogFormat, cfg.LogLevel, logWriter)
	if logFileErr != nil {
		log.Warn("falling back to stderr logging", logging.KeyError, logFileErr.Error())
	}
	for _, issue := range cfg.Validate() {
		log.Warn("config issue", logging.KeyError, issue.Error())
	}

	return cfg, nil
}

func runCollect(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	mgr, err := pkgmgr.Detect(pkgmgr.Options{CacheOnly: cfg.CacheOnly})
	if errors.Is(err, pkgmgr.ErrNoPackageManager) {
		log.Warn("no dnf or yum on this host, nothing to collect")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("collecting updates", "manager", mgr.ID())

	updates, err := collectors.NewUpdatesCollector(mgr).Collect(ctx)
	if err != nil {
		return err
	}

	doc := &collectors.Report{UpdatesReport: *updates}
	if cfg.IncludeHost {
		facts, err := collectors.NewHostCollector().Collect()
		if err != nil {
			log.Warn("host facts incomplete", logging.KeyError, err.Error())
		}
		doc.Host = facts
	}

	data, err := encodeReport(doc, cfg.Format)
	if err != nil {
		return err
	}

	if cfg.Output == "" || cfg.Output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}
	log.Info("report written", "path", cfg.Output, "bytes", len(data))
	return nil
}

func encodeReport(doc *collectors.Report, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(doc)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func runRepos(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	mgr, err := pkgmgr.Detect(pkgmgr.Options{CacheOnly: cfg.CacheOnly})
	if errors.Is(err, pkgmgr.ErrNoPackageManager) {
		log.Warn("no dnf or yum on this host")
		return nil
	}
	if err != nil {
		return err
	}

	if err := mgr.Load(ctx); err != nil {
		return fmt.Errorf("%s metadata load failed: %w", mgr.ID(), err)
	}

	for _, repo := range mgr.EnabledRepos() {
		fmt.Println(repo)
	}
	return nil
}
