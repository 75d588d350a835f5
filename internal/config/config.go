package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Auth     AuthConfig    `yaml:"auth"`
	API      APIConfig     `yaml:"api"`
	Storage  StorageConfig `yaml:"storage"`
	LogLevel string        `yaml:"log_level"`
}

type AuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	// Scope is space-separated; query encoding renders the spaces as '+'.
	Scope        string `yaml:"scope"`
	AuthorizeURL string `yaml:"authorize_url"`
	TokenURL     string `yaml:"token_url"`
}

type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	TokenPath string `yaml:"token_path"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if cfg.Auth.ClientID == "" || cfg.Auth.ClientSecret == "" {
		return nil, fmt.Errorf("auth.client_id and auth.client_secret are required")
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Auth.RedirectURI == "" {
		c.Auth.RedirectURI = "urn:ietf:wg:oauth:2.0:oob"
	}
	if c.Auth.Scope == "" {
		c.Auth.Scope = "public read_user write_likes"
	}
	if c.Auth.AuthorizeURL == "" {
		c.Auth.AuthorizeURL = "https://unsplash.com/oauth/authorize"
	}
	if c.Auth.TokenURL == "" {
		c.Auth.TokenURL = "https://unsplash.com/oauth/token"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.unsplash.com"
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = 10
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Storage.TokenPath == "" {
		c.Storage.TokenPath = "photofeed.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
