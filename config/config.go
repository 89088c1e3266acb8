package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/meysamhadeli/doctrans/constants/lipgloss"
	"github.com/meysamhadeli/doctrans/translator/models"
	"github.com/meysamhadeli/doctrans/tutorials"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ScheduleConfig controls the periodic resolution run
type ScheduleConfig struct {
	Cron     string `mapstructure:"cron"`
	Timezone string `mapstructure:"timezone"`
	Days     int    `mapstructure:"days"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version         string         `mapstructure:"version"`
	DocsBasePath    string         `mapstructure:"docs_base_path"`
	Remote          string         `mapstructure:"remote"`
	Branch          string         `mapstructure:"branch"`
	Fetch           bool           `mapstructure:"fetch"`
	AllowedProducts []string       `mapstructure:"allowed_products"`
	TutorialsPath   string         `mapstructure:"tutorials_path"`
	GitTimeout      time.Duration  `mapstructure:"git_timeout"`
	LogLevel        string         `mapstructure:"log_level"`
	Theme           string         `mapstructure:"theme"`
	Schedule        ScheduleConfig `mapstructure:"schedule"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:         "0.3.0",
	DocsBasePath:    ".",
	Remote:          "origin",
	Branch:          "master",
	Fetch:           true,
	AllowedProducts: models.DefaultAllowedProducts,
	TutorialsPath:   tutorials.DefaultCatalogDir,
	GitTimeout:      2 * time.Minute,
	LogLevel:        "info",
	Theme:           "dracula",
	Schedule: ScheduleConfig{
		Cron:     "0 6 * * *",
		Timezone: "UTC",
		Days:     1,
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment
// variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if t := GetConfigFileType(cfgFile); t != "" {
			v.SetConfigType(t)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("doctrans-config")
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			fmt.Fprintln(os.Stderr, lipgloss.Yellow.Render("No configuration file found, using defaults"))
		}
	}

	bindFlags(v, rootCmd)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	config.AllowedProducts = splitProducts(config.AllowedProducts)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the values the coordinator cannot run without
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.DocsBasePath) == "" {
		problems = append(problems, "docs_base_path is required")
	}
	if strings.TrimSpace(c.Branch) == "" {
		problems = append(problems, "branch is required")
	}
	if c.Fetch && strings.TrimSpace(c.Remote) == "" {
		problems = append(problems, "remote is required when fetch is enabled")
	}
	if len(c.AllowedProducts) == 0 {
		problems = append(problems, "allowed_products must not be empty")
	}
	if c.GitTimeout < 0 {
		problems = append(problems, "git_timeout must not be negative")
	}
	if c.Schedule.Days < 1 {
		problems = append(problems, "schedule.days must be at least 1")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("docs_base_path", DefaultConfig.DocsBasePath)
	v.SetDefault("remote", DefaultConfig.Remote)
	v.SetDefault("branch", DefaultConfig.Branch)
	v.SetDefault("fetch", DefaultConfig.Fetch)
	v.SetDefault("allowed_products", DefaultConfig.AllowedProducts)
	v.SetDefault("tutorials_path", DefaultConfig.TutorialsPath)
	v.SetDefault("git_timeout", DefaultConfig.GitTimeout)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("schedule.cron", DefaultConfig.Schedule.Cron)
	v.SetDefault("schedule.timezone", DefaultConfig.Schedule.Timezone)
	v.SetDefault("schedule.days", DefaultConfig.Schedule.Days)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("docs_base_path", "DOCS_BASE_PATH")
	_ = v.BindEnv("remote", "DOCTRANS_REMOTE")
	_ = v.BindEnv("branch", "DOCTRANS_BRANCH")
	_ = v.BindEnv("fetch", "DOCTRANS_FETCH")
	_ = v.BindEnv("allowed_products", "DOCTRANS_ALLOWED_PRODUCTS")
	_ = v.BindEnv("tutorials_path", "DOCTRANS_TUTORIALS_PATH")
	_ = v.BindEnv("git_timeout", "DOCTRANS_GIT_TIMEOUT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("theme", "THEME")
	_ = v.BindEnv("schedule.cron", "DOCTRANS_SCHEDULE_CRON")
	_ = v.BindEnv("schedule.timezone", "DOCTRANS_SCHEDULE_TIMEZONE")
	_ = v.BindEnv("schedule.days", "DOCTRANS_SCHEDULE_DAYS")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("docs_base_path", flags.Lookup("docs_base_path"))
	_ = v.BindPFlag("remote", flags.Lookup("remote"))
	_ = v.BindPFlag("branch", flags.Lookup("branch"))
	_ = v.BindPFlag("fetch", flags.Lookup("fetch"))
	_ = v.BindPFlag("allowed_products", flags.Lookup("allowed_products"))
	_ = v.BindPFlag("tutorials_path", flags.Lookup("tutorials_path"))
	_ = v.BindPFlag("git_timeout", flags.Lookup("git_timeout"))
	_ = v.BindPFlag("log_level", flags.Lookup("log_level"))
	_ = v.BindPFlag("theme", flags.Lookup("theme"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Path to a configuration file (JSON or YAML).")

	flags.String("docs_base_path", DefaultConfig.DocsBasePath, "Directory holding _documentation, _use_cases and _tutorials; git commands run here.")
	flags.String("remote", DefaultConfig.Remote, "Remote fetched before reading the change log.")
	flags.String("branch", DefaultConfig.Branch, "Branch whose history is inspected.")
	flags.Bool("fetch", DefaultConfig.Fetch, "Fetch the branch from the remote before reading the change log.")
	flags.StringSlice("allowed_products", DefaultConfig.AllowedProducts, "Products whose content is eligible for translation.")
	flags.String("tutorials_path", DefaultConfig.TutorialsPath, "Tutorial catalog directory, relative to docs_base_path.")
	flags.Duration("git_timeout", DefaultConfig.GitTimeout, "Upper bound for each git command.")
	flags.String("log_level", DefaultConfig.LogLevel, "Log level: trace, debug, info, warn, error or off.")
	flags.String("theme", DefaultConfig.Theme, "Chroma theme used to highlight JSON output.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// splitProducts accepts both lists and comma separated values (env vars)
func splitProducts(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
