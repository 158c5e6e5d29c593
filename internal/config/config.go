package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory  = "memory"
	DriverMySQL   = "mysql"
	DriverSQLite3 = "sqlite3"
)

// EnvConfigFile names the environment variable the server reads its config path from.
const EnvConfigFile = "PLAYTRACK_CONFIG"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	LRS       LRSConfig       `mapstructure:"lrs"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Rankings  RankingsConfig  `mapstructure:"rankings"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type ServerConfig struct {
	Port                int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS                CORSConfig `mapstructure:"cors"`
	ReadTimeoutSeconds  int        `mapstructure:"read_timeout_seconds" validate:"min=0"`
	WriteTimeoutSeconds int        `mapstructure:"write_timeout_seconds" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StoreConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=memory mysql sqlite3"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite3"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// LRSConfig configures forwarding of xAPI statements to a Learning Record Store.
type LRSConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the xAPI base URL, e.g. https://lrs.example.com/xapi/
	Endpoint         string `mapstructure:"endpoint" validate:"required_if=Enabled true,omitempty,url"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"min=0"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
	QueueSize        int    `mapstructure:"queue_size" validate:"min=0"`
}

type IngestionConfig struct {
	EnableXAPI      bool                  `mapstructure:"enable_xapi"`
	EnableSCORM12   bool                  `mapstructure:"enable_scorm12"`
	ContextKeywords ContextKeywordsConfig `mapstructure:"context_keywords"`
}

// ContextKeywordsConfig holds the substrings matched against xAPI grouping activity ids.
type ContextKeywordsConfig struct {
	School  string `mapstructure:"school"`
	Grade   string `mapstructure:"grade"`
	Subject string `mapstructure:"subject"`
}

type RankingsConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"min=1"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
	ExportDirectory string `mapstructure:"export_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/playtrack")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.sqlite_path", filepath.Join("data", "playtrack.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "playtrack")
	v.SetDefault("database.username", "user")
	v.SetDefault("lrs.enabled", false)
	v.SetDefault("lrs.timeout_seconds", 10)
	v.SetDefault("lrs.max_retry_attempts", 3)
	v.SetDefault("lrs.queue_size", 256)
	v.SetDefault("ingestion.enable_xapi", true)
	v.SetDefault("ingestion.enable_scorm12", true)
	v.SetDefault("ingestion.context_keywords.school", "school")
	v.SetDefault("ingestion.context_keywords.grade", "grade")
	v.SetDefault("ingestion.context_keywords.subject", "subject")
	v.SetDefault("rankings.default_limit", 10)
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "export"))

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	// Bind LRS credentials to environment variables
	if err := v.BindEnv("lrs.username", "LRS_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind LRS_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("lrs.password", "LRS_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LRS_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
