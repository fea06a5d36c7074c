package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const envPrefix = "TRAVELGUIDE"

type GenAIConfig struct {
	APIKey            string        `mapstructure:"apiKey"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requestsPerMinute"`
	Burst             int           `mapstructure:"burst"`
}

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Password string `mapstructure:"password"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	DB       string `mapstructure:"db"`
	SSLMODE  string `mapstructure:"SSLMODE"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	Namespace string `mapstructure:"namespace"`
	SQLite    struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
		CORSOrigins []string      `mapstructure:"corsOrigins"`
	} `mapstructure:"server"`
	Observability struct {
		MetricsPort string `mapstructure:"metricsPort"`
		ServiceName string `mapstructure:"serviceName"`
	} `mapstructure:"observability"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Storage StorageConfig `mapstructure:"storage"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// TRAVELGUIDE_STORAGE_DRIVER overrides storage.driver, and so on.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("genai.apiKey", "GOOGLE_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("failed to bind api key env: %w", err)
	}
	if err := v.BindEnv("genai.model", envPrefix+"_GENAI_MODEL", "GEMINI_MODEL"); err != nil {
		return Config{}, fmt.Errorf("failed to bind model env: %w", err)
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.GenAI.Model == "" {
		config.GenAI.Model = DefaultModel
	}
	return config, nil
}

// DefaultModel is used when no model override is configured.
const DefaultModel = "gemini-2.5-flash"
