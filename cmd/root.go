package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pursuit-cli/pursuit/internal/scoring"
	"github.com/pursuit-cli/pursuit/internal/store"
)

const (
	app            = "pursuit"
	defaultDataDir = "records"
)

type Config struct {
	DataDir      string         `mapstructure:"data-dir"`
	PrestigeFile string         `mapstructure:"prestige-file"`
	EvidenceFile string         `mapstructure:"evidence-file"`
	Scoring      *ScoringConfig `mapstructure:"scoring"`
}

type ScoringConfig struct {
	JobThreshold     float64 `mapstructure:"job-threshold"`
	DefaultThreshold float64 `mapstructure:"default-threshold"`
	PortalDefault    float64 `mapstructure:"portal-default"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "pursuit is a cli for scoring tracked opportunities and moving them through the application lifecycle",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("data-dir", "PURSUIT_DATA_DIR"); err != nil {
		log.Fatalf("binding PURSUIT_DATA_DIR environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is pursuit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("data-dir", defaultDataDir)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// We can't proceed if an explicitly requested config file parsed
		// with error.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")
	viper.SetConfigType("yaml")

	// The default config file is optional; every command works on flag and
	// env defaults alone.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.DataDir == "" {
		config.DataDir = viper.GetString("data-dir")
	}
	return config, nil
}

// newStore opens the record store configured by data-dir.
func newStore(config *Config) *store.Store {
	return store.New(config.DataDir)
}

// newEngine builds the scoring engine from config: default weight tables,
// threshold/portal overrides, optional prestige and evidence files.
func newEngine(config *Config, logger *zap.Logger) (*scoring.Engine, error) {
	cfg := scoring.DefaultConfig()
	if config.Scoring != nil {
		if config.Scoring.JobThreshold > 0 {
			cfg.JobThreshold = config.Scoring.JobThreshold
		}
		if config.Scoring.DefaultThreshold > 0 {
			cfg.DefaultThreshold = config.Scoring.DefaultThreshold
		}
		if config.Scoring.PortalDefault > 0 {
			cfg.PortalDefault = config.Scoring.PortalDefault
		}
	}

	prestige := scoring.DefaultPrestigeTable()
	if config.PrestigeFile != "" {
		loaded, err := scoring.LoadPrestigeTable(config.PrestigeFile)
		if err != nil {
			return nil, err
		}
		prestige = loaded
		logger.Debug("loaded prestige table override", zap.String("path", config.PrestigeFile))
	}

	evidence := scoring.RecordEvidence()
	if config.EvidenceFile != "" {
		loaded, err := scoring.FileEvidence(config.EvidenceFile, evidence)
		if err != nil {
			return nil, err
		}
		evidence = loaded
		logger.Debug("loaded evidence coverage file", zap.String("path", config.EvidenceFile))
	}

	return scoring.NewEngine(cfg, prestige, evidence)
}
