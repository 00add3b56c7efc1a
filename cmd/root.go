package cmd

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/catalog"
	"github.com/spigell/skill-matcher/internal/filtering"
	"github.com/spigell/skill-matcher/internal/logger"
	"github.com/spigell/skill-matcher/internal/matching"
)

const (
	app       = "skill-matcher"
	envPrefix = "SKILL_MATCHER"

	// keyDelimiter separates nested config keys. Skill names such as node.js
	// contain dots, so the default delimiter cannot be used.
	keyDelimiter = "::"
)

type Config struct {
	Catalog     catalog.Categories `mapstructure:"catalog"`
	Profile     *matching.Profile  `mapstructure:"profile" validate:"required"`
	Extract     *ExtractConfig     `mapstructure:"extract" validate:"required"`
	Score       *ScoreConfig       `mapstructure:"score" validate:"required"`
	Filters     *FiltersConfig     `mapstructure:"filters"`
	ExcludeFile string             `mapstructure:"exclude-file"`
}

type ExtractConfig struct {
	Input     string `mapstructure:"input" validate:"required"`
	Output    string `mapstructure:"output" validate:"required"`
	Workers   int    `mapstructure:"workers" validate:"min=0"`
	StripHTML bool   `mapstructure:"strip-html"`
}

type ScoreConfig struct {
	Input  string `mapstructure:"input" validate:"required"`
	Output string `mapstructure:"output" validate:"required"`
	Top    int    `mapstructure:"top" validate:"min=1"`
}

type FiltersConfig struct {
	TitleKeywords []string `mapstructure:"title-keywords"`
	RedFlags      []string `mapstructure:"red-flags"`
	Companies     []string `mapstructure:"companies"`
	Disabled      []string `mapstructure:"disabled"`
}

var (
	// Used for flags.
	cfgFile string

	settings = newSettings()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-matcher extracts skill requirements from job postings and ranks them against your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	settings.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	settings.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// key joins nested config key parts.
func key(parts ...string) string {
	return strings.Join(parts, keyDelimiter)
}

// newSettings returns a viper instance with defaults applied.
func newSettings() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	v.SetDefault(key("extract", "input"), "data/internships_raw.csv")
	v.SetDefault(key("extract", "output"), "data/internships_structured.csv")
	v.SetDefault(key("extract", "workers"), runtime.NumCPU())
	v.SetDefault(key("extract", "strip-html"), true)
	v.SetDefault(key("score", "input"), "data/internships_structured.csv")
	v.SetDefault(key("score", "output"), "data/internships_ranked.csv")
	v.SetDefault(key("score", "top"), 10)
	v.SetDefault(key("filters", "title-keywords"), filtering.DefaultTitleKeywords)

	return v
}

func initConfig() {
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_", "-", "_"))
	settings.AutomaticEnv()

	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
	} else {
		settings.AddConfigPath(".")
		settings.SetConfigName(app)
		settings.SetConfigType("yaml")
	}

	// A missing default config is fine: the built-in catalog and an empty profile are used.
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(settings)
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	config := &Config{
		Profile: &matching.Profile{},
		Extract: &ExtractConfig{},
		Score:   &ScoreConfig{},
		Filters: &FiltersConfig{},
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Profile == nil {
		config.Profile = &matching.Profile{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// bindFlags binds the command flags to config keys. Flags of different commands
// share keys, so binding happens only for the command being executed.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for name, k := range keys {
		if err := settings.BindPFlag(k, cmd.Flags().Lookup(name)); err != nil {
			log.Fatalf("binding flag %s: %v", name, err)
		}
	}
}

// skillCatalog returns the configured catalog or the built-in one.
func (c *Config) skillCatalog() *catalog.Catalog {
	if len(c.Catalog) == 0 {
		return catalog.Build(catalog.Default())
	}
	return catalog.Build(c.Catalog)
}

func (c *Config) filteringConfig() *filtering.Config {
	return &filtering.Config{
		TitleKeywords: c.Filters.TitleKeywords,
		RedFlags:      c.Filters.RedFlags,
		Companies:     c.Filters.Companies,
		ExcludeFile:   c.ExcludeFile,
	}
}

// filterSteps returns the default filter chain with the configured filters disabled.
func (c *Config) filterSteps() ([]filtering.Filter, error) {
	steps := filtering.Defaults()
	for _, name := range c.Filters.Disabled {
		if !filtering.DisableByName(steps, name, "disabled in config") {
			return nil, fmt.Errorf("unknown filter %q in filters.disabled", name)
		}
	}
	return steps, nil
}

// setup builds the logger and the config shared by all pipeline commands.
func setup(command string) (*zap.Logger, *Config) {
	base, err := logger.New(settings.GetBool("json"), settings.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	l := logger.WithRunID(base, uuid.NewString())

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the "+app,
		zap.String("command", command),
		zap.String("version", version),
		zap.String("config", settings.ConfigFileUsed()),
	)

	return l, config
}
