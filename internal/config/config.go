package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the console and CLI need. Values come from the
// environment, optionally layered over a YAML file named by VMC_CONFIG or
// found as vmconsole.yaml in . or ./configs.
type Config struct {
	App       AppConfig
	Gateway   GatewayConfig
	Voicemail VoicemailConfig
	Project   ProjectConfig
	Journal   JournalConfig
	DB        DBConfig
	Redis     RedisConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Env  string
	Port int
}

type GatewayConfig struct {
	BaseURL string
	// Token is the optional bearer credential. Never log it.
	Token string
	// Timeout of 0 means requests never time out.
	Timeout time.Duration
}

type VoicemailConfig struct {
	RefreshInterval time.Duration
}

type ProjectConfig struct {
	SequencedUpdates bool
}

type JournalBackend string

const (
	JournalMemory   JournalBackend = "memory"
	JournalPostgres JournalBackend = "postgres"
	JournalRedis    JournalBackend = "redis"
	JournalNone     JournalBackend = "none"
)

type JournalConfig struct {
	Backend JournalBackend
	Stream  string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

type MetricsConfig struct {
	Enabled bool
}

const envConfigFile = "VMC_CONFIG"

// Load reads configuration from the environment and an optional YAML file.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	if err := readFile(v); err != nil {
		return Config{}, err
	}

	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(v.GetString("APP_ENV"))
	c.App.Port = intKey(v, "APP_PORT", &parseErrs)

	c.Gateway.BaseURL = strings.TrimRight(strings.TrimSpace(v.GetString("GATEWAY_BASE_URL")), "/")
	c.Gateway.Token = strings.TrimSpace(v.GetString("GATEWAY_TOKEN"))
	c.Gateway.Timeout = durationKey(v, "GATEWAY_TIMEOUT", &parseErrs)

	c.Voicemail.RefreshInterval = durationKey(v, "VOICEMAIL_REFRESH_INTERVAL", &parseErrs)
	c.Project.SequencedUpdates = boolKey(v, "PROJECT_SEQUENCED_UPDATES", &parseErrs)

	c.Journal.Backend = JournalBackend(strings.ToLower(strings.TrimSpace(v.GetString("JOURNAL_BACKEND"))))
	c.Journal.Stream = strings.TrimSpace(v.GetString("JOURNAL_STREAM"))

	c.DB.Host = strings.TrimSpace(v.GetString("DB_HOST"))
	c.DB.Port = intKey(v, "DB_PORT", &parseErrs)
	c.DB.User = strings.TrimSpace(v.GetString("DB_USER"))
	c.DB.Password = v.GetString("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(v.GetString("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(v.GetString("DB_SSLMODE"))

	c.Redis.Host = strings.TrimSpace(v.GetString("REDIS_HOST"))
	c.Redis.Port = intKey(v, "REDIS_PORT", &parseErrs)
	c.Redis.Password = v.GetString("REDIS_PASSWORD")

	c.Metrics.Enabled = boolKey(v, "METRICS_ENABLED", &parseErrs)

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_PORT", 8090)
	v.SetDefault("GATEWAY_BASE_URL", "http://localhost:8080")
	v.SetDefault("GATEWAY_TIMEOUT", "0s")
	v.SetDefault("VOICEMAIL_REFRESH_INTERVAL", "30s")
	v.SetDefault("PROJECT_SEQUENCED_UPDATES", false)
	v.SetDefault("JOURNAL_BACKEND", string(JournalMemory))
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("METRICS_ENABLED", true)
}

// readFile loads VMC_CONFIG when set; a missing explicit file is an error.
// Without VMC_CONFIG a missing vmconsole.yaml is fine.
func readFile(v *viper.Viper) error {
	v.SetConfigType("yaml")
	if path := strings.TrimSpace(v.GetString(envConfigFile)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("vmconsole")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read vmconsole.yaml: %w", err)
	}
	return nil
}

// Validate collects every problem and applies local-friendly defaults.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Gateway.BaseURL == "" {
		errs = append(errs, errors.New("GATEWAY_BASE_URL is required"))
	} else if u, err := url.Parse(c.Gateway.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("GATEWAY_BASE_URL must be an absolute http(s) url, got %q", c.Gateway.BaseURL))
	} else if c.IsProduction() && u.Scheme != "https" {
		errs = append(errs, errors.New("GATEWAY_BASE_URL must use https in production"))
	}
	if c.Gateway.Timeout < 0 {
		errs = append(errs, errors.New("GATEWAY_TIMEOUT must not be negative"))
	}

	if c.Voicemail.RefreshInterval <= 0 {
		errs = append(errs, errors.New("VOICEMAIL_REFRESH_INTERVAL must be positive"))
	}

	if c.Journal.Backend == "" {
		c.Journal.Backend = JournalMemory
	}
	switch c.Journal.Backend {
	case JournalMemory, JournalNone:
	case JournalPostgres:
		errs = append(errs, c.validateDB()...)
	case JournalRedis:
		if c.Redis.Host == "" {
			errs = append(errs, errors.New("REDIS_HOST is required for the redis journal"))
		}
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
	default:
		errs = append(errs, fmt.Errorf("JOURNAL_BACKEND must be one of memory, postgres, redis, none, got %q", c.Journal.Backend))
	}

	return joinErrors(errs)
}

func (c *Config) validateDB() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required for the postgres journal"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required for the postgres journal"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required for the postgres journal"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Contains secrets; do not log.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func intKey(v *viper.Viper, key string, errs *[]error) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return 0
	}
	return n
}

func durationKey(v *viper.Viper, key string, errs *[]error) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration, got %q", key, raw))
		return 0
	}
	return d
}

func boolKey(v *viper.Viper, key string, errs *[]error) bool {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean, got %q", key, raw))
		return false
	}
	return b
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
