package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port             int    `yaml:"port"`
	GinMode          string `yaml:"gin_mode"`
	UserSessionLimit int    `yaml:"user_session_limit"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	PrivateKeyPath string `yaml:"private_key_path"`
	PublicKeyPath  string `yaml:"public_key_path"`
	AccessTTL      string `yaml:"access_ttl"`
	RefreshTTL     string `yaml:"refresh_ttl"`
}

type SMTPConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	Username               string `yaml:"username"`
	Password               string `yaml:"password"`
	From                   string `yaml:"from"`
	ConfirmationCodeTTL    string `yaml:"confirmation_code_ttl"`
	ConfirmationCodeLength int    `yaml:"confirmation_code_length"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port                   string
	GinMode                string
	UserSessionLimit       int
	DSN                    string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	PrivateKeyPath         string
	PublicKeyPath          string
	AccessTTL              time.Duration
	RefreshTTL             time.Duration
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	ConfirmationCodeTTL    time.Duration
	ConfirmationCodeLength int
	CasbinModelPath        string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(configFile.SMTP.ConfirmationCodeTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid confirmation code TTL: %w", err)
	}

	if configFile.App.UserSessionLimit <= 0 {
		return nil, fmt.Errorf("user_session_limit must be positive, got %d", configFile.App.UserSessionLimit)
	}

	return &Config{
		Port:                   fmt.Sprintf("%d", configFile.App.Port),
		GinMode:                configFile.App.GinMode,
		UserSessionLimit:       configFile.App.UserSessionLimit,
		DSN:                    configFile.Database.DSN,
		RedisAddr:              configFile.Redis.Addr,
		RedisPassword:          configFile.Redis.Password,
		RedisDB:                configFile.Redis.DB,
		PrivateKeyPath:         configFile.JWT.PrivateKeyPath,
		PublicKeyPath:          configFile.JWT.PublicKeyPath,
		AccessTTL:              accTTL,
		RefreshTTL:             refTTL,
		SMTPHost:               configFile.SMTP.Host,
		SMTPPort:               configFile.SMTP.Port,
		SMTPUsername:           configFile.SMTP.Username,
		SMTPPassword:           configFile.SMTP.Password,
		SMTPFrom:               configFile.SMTP.From,
		ConfirmationCodeTTL:    codeTTL,
		ConfirmationCodeLength: configFile.SMTP.ConfirmationCodeLength,
		CasbinModelPath:        configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
