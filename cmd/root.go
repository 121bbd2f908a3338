package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patii/workcity/internal/config"
	"github.com/patii/workcity/internal/log"
)

var (
	version      = "dev"
	cfgFile      string
	debug        bool
	cfg          config.Config
	closeLogFile func()
)

var rootCmd = &cobra.Command{
	Use:     "workcity",
	Short:   "Stylesheet registrar for the workcity child theme",
	Long:    `Registers the workcity child theme stylesheet after the Astra parent theme and renders the resulting <link> tags.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ApplyEnv(&cfg); err != nil {
			return err
		}
		if debug {
			cfg.Log.Debug = true
		}
		if cfg.Log.Debug {
			cleanup, err := log.Init(cfg.Log.File)
			if err != nil {
				return fmt.Errorf("initializing debug log: %w", err)
			}
			closeLogFile = cleanup
			log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
			log.Debug(log.CatConfig, "config loaded", "file", viper.ConfigFileUsed(), "site_url", cfg.SiteURL)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLogFile != nil {
			closeLogFile()
			closeLogFile = nil
		}
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .workcity/config.yaml, then ~/.config/workcity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug log (also WORKCITY_DEBUG)")
	rootCmd.PersistentFlags().String("site-url", "", "public origin used to build stylesheet URIs")
	rootCmd.PersistentFlags().String("theme-dir", "", "child theme directory containing style.css")

	_ = viper.BindPFlag("site_url", rootCmd.PersistentFlags().Lookup("site-url"))
	_ = viper.BindPFlag("theme_dir", rootCmd.PersistentFlags().Lookup("theme-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("site_url", defaults.SiteURL)
	viper.SetDefault("parent_version", defaults.ParentVersion)
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("log.debug", defaults.Log.Debug)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.level", defaults.Log.Level)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .workcity/config.yaml (current directory)
		// 2. ~/.config/workcity/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "workcity"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Running without any config file is fine; defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
