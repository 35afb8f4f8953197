package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ats-scorer/internal/document"
)

const (
	app       = "ats-scorer"
	envPrefix = "ATS"
)

type Config struct {
	Embedding  *EmbeddingConfig  `mapstructure:"embedding"`
	Cache      *CacheConfig      `mapstructure:"cache"`
	Sections   *SectionsConfig   `mapstructure:"sections"`
	Resources  *ResourcesConfig  `mapstructure:"resources"`
	S3         document.S3Config `mapstructure:"s3"`
	HeadHunter *HeadHunterConfig `mapstructure:"headhunter"`
}

type HeadHunterConfig struct {
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

type EmbeddingConfig struct {
	Provider       string        `mapstructure:"provider"`
	Model          string        `mapstructure:"model"`
	Dimension      int           `mapstructure:"dimension"`
	MaxRetries     int           `mapstructure:"max-retries"`
	MaxInputTokens int           `mapstructure:"max-input-tokens"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Gemini         *APIKeyConfig `mapstructure:"gemini"`
	OpenAI         *OpenAIConfig `mapstructure:"openai"`
	Ollama         *OllamaConfig `mapstructure:"ollama"`
}

type APIKeyConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type OpenAIConfig struct {
	APIKeyConfig `mapstructure:",squash"`
	BaseURL      string `mapstructure:"base-url"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base-url"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Valkey  *ValkeyConfig `mapstructure:"valkey"`
}

type ValkeyConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type SectionsConfig struct {
	CaseInsensitive bool `mapstructure:"case-insensitive"`
}

type ResourcesConfig struct {
	LemmasFile     string   `mapstructure:"lemmas-file"`
	ExtraStopwords []string `mapstructure:"extra-stopwords"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "ats-scorer scores how well a resume matches a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Printf("%s: %v", app, err)
	}
	return err
}

func init() {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"embedding.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"embedding.openai.api-key-file": "OPENAI_API_KEY_FILE",
		"headhunter.token-file":         "HH_TOKEN_FILE",
	} {
		if err := viper.BindEnv(key, envPrefix+"_"+envKey(key), env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("provider", "p", "", "embedding provider: local, gemini, openai or ollama")
	rootCmd.PersistentFlags().Bool("case-insensitive", false, "match section headings ignoring case")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("embedding.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("sections.case-insensitive", rootCmd.PersistentFlags().Lookup("case-insensitive"))
}

// setDefaults registers every key so that environment overrides show up in
// viper.AllSettings.
func setDefaults() {
	defaults := map[string]any{
		"embedding.provider":            "local",
		"embedding.model":               "",
		"embedding.dimension":           0,
		"embedding.max-retries":         2,
		"embedding.max-input-tokens":    8191,
		"embedding.timeout":             "60s",
		"embedding.gemini.api-key":      "",
		"embedding.gemini.api-key-file": "",
		"embedding.openai.api-key":      "",
		"embedding.openai.api-key-file": "",
		"embedding.openai.base-url":     "",
		"embedding.ollama.base-url":     "",
		"cache.enabled":                 true,
		"cache.valkey.address":          "",
		"cache.valkey.password":         "",
		"cache.valkey.ttl":              "168h",
		"sections.case-insensitive":     false,
		"resources.lemmas-file":         "",
		"resources.extra-stopwords":     []string{},
		"s3.region":                     "",
		"s3.endpoint":                   "",
		"headhunter.token-file":         "",
		"headhunter.user-agent":         "",
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

func initConfig() {
	// A missing .env is fine, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The config file is optional unless given explicitly.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

func decodeConfig(settings map[string]any) (*Config, error) {
	var config Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &config,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("creating config decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if config.Embedding == nil {
		config.Embedding = &EmbeddingConfig{}
	}
	if config.Embedding.Gemini == nil {
		config.Embedding.Gemini = &APIKeyConfig{}
	}
	if config.Embedding.OpenAI == nil {
		config.Embedding.OpenAI = &OpenAIConfig{}
	}
	if config.Embedding.Ollama == nil {
		config.Embedding.Ollama = &OllamaConfig{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}
	if config.Cache.Valkey == nil {
		config.Cache.Valkey = &ValkeyConfig{}
	}
	if config.Sections == nil {
		config.Sections = &SectionsConfig{}
	}
	if config.Resources == nil {
		config.Resources = &ResourcesConfig{}
	}
	if config.HeadHunter == nil {
		config.HeadHunter = &HeadHunterConfig{}
	}

	return &config, nil
}

func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
