package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/matchmaker/internal/filtering"
	"github.com/spigell/matchmaker/internal/session"
	"github.com/spigell/matchmaker/internal/source"
)

const (
	app       = "matchmaker"
	envPrefix = "MATCHMAKER"
)

type Config struct {
	Source       string            `mapstructure:"source"`
	Sheet        string            `mapstructure:"sheet"`
	OutputDir    string            `mapstructure:"output-dir"`
	ExportFormat string            `mapstructure:"export-format"`
	Matching     *MatchingConfig   `mapstructure:"matching"`
	Columns      map[string]string `mapstructure:"columns"`
}

type MatchingConfig struct {
	// Flexibility is the number of conditions a candidate may fail. Negative means strict.
	Flexibility int      `mapstructure:"flexibility"`
	Disabled    []string `mapstructure:"disabled"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchmaker is a simple cli for finding compatible profiles in a spreadsheet of candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchmaker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("source", "s", "", "a spreadsheet (.xlsx) or .csv file with profiles")
	rootCmd.PersistentFlags().String("sheet", "", "a sheet to read from the spreadsheet (default is the first one)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("sheet", rootCmd.PersistentFlags().Lookup("sheet"))

	viper.SetDefault("output-dir", "matches")
	viper.SetDefault("export-format", "csv")
	viper.SetDefault("matching.flexibility", -1)
	viper.SetDefault("matching.disabled", []string{})
}

func initConfig() {
	// .env is optional. Values already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The config file is optional unless it was given explicitly.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{Flexibility: -1}
	}

	return config, nil
}

// openSession loads the configured source with the configured rule set.
func openSession(config *Config, logger *zap.Logger) (*session.Session, error) {
	if strings.TrimSpace(config.Source) == "" {
		return nil, errors.New("source is required: set --source, the 'source' key or MATCHMAKER_SOURCE")
	}

	schema, err := source.DefaultSchema().With(config.Columns)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	conditions := filtering.Defaults()
	if err := filtering.DisableAll(conditions, config.Matching.Disabled, "disabled in configuration"); err != nil {
		return nil, fmt.Errorf("matching.disabled: %w", err)
	}

	for _, status := range filtering.Describe(conditions) {
		logger.Debug("condition",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.String("rule", status.Details["rule"]),
		)
	}

	return session.Open(config.Source, session.Options{
		Sheet:      config.Sheet,
		Schema:     schema,
		Conditions: conditions,
		Mode:       filtering.ParseMode(config.Matching.Flexibility),
		Logger:     logger,
	})
}
