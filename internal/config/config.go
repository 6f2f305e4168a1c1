package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Generator GeneratorConfig `yaml:"generator"`
	Email     EmailConfig     `yaml:"email"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Credentials come from the environment, never from the config file.
	Credentials Credentials `yaml:"-"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type GeneratorConfig struct {
	DeploymentName string `yaml:"deployment_name"`
	APIVersion     string `yaml:"api_version"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	From       string `yaml:"from"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Credentials holds out-of-band secrets read from environment variables.
type Credentials struct {
	APIKey             string // SPARC_API_KEY, protects the HTTP API when set
	GeneratorEndpoint  string // AZURE_OPENAI_ENDPOINT
	GeneratorAPIKey    string // AZURE_OPENAI_API_KEY
	TwitterBearerToken string // TWITTER_BEARER_TOKEN
	SMTPUsername       string // SMTP_USERNAME
	SMTPPassword       string // SMTP_PASSWORD
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	setDefaults(cfg)
	loadCredentials(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8090"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "/var/lib/sparc/app.db"
	}
	if cfg.Generator.DeploymentName == "" {
		cfg.Generator.DeploymentName = "gpt-4"
	}
	if cfg.Generator.APIVersion == "" {
		cfg.Generator.APIVersion = "2024-02-15-preview"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// loadCredentials reads secrets from the environment. A .env file in the
// working directory is honored when present.
func loadCredentials(cfg *Config) {
	_ = godotenv.Load()

	cfg.Credentials = Credentials{
		APIKey:             os.Getenv("SPARC_API_KEY"),
		GeneratorEndpoint:  os.Getenv("AZURE_OPENAI_ENDPOINT"),
		GeneratorAPIKey:    os.Getenv("AZURE_OPENAI_API_KEY"),
		TwitterBearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
	}
}

func validate(cfg *Config) error {
	if cfg.Email.SMTPServer != "" && (cfg.Email.SMTPPort <= 0 || cfg.Email.SMTPPort > 65535) {
		return fmt.Errorf("email.smtp_port must be between 1 and 65535")
	}
	if cfg.Email.SMTPServer != "" && cfg.Email.From == "" {
		return fmt.Errorf("email.from is required when email.smtp_server is set")
	}
	return nil
}
