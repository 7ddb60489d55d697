package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	Logger  LoggerConfig
	Webhook WebhookConfig

	// Relay specifics
	Delivery  DeliveryConfig
	Database  DatabaseConfig
	GitHub    GitHubConfig
	Shortener ShortenerConfig
	Bot       BotConfig
}

type EnvironmentConfig struct {
	Name string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type WebhookConfig struct {
	Enabled         bool
	Host            string
	Port            int
	Path            string
	Mode            string // gin mode
	Secret          string // empty disables signature verification
	ExternalURL     string // callback base the platform can reach
	AllowedIPs      []string
	TrustedProxies  []string // proxies allowed to set X-Forwarded-For; empty trusts none
	RateLimitPerMin int
	MaxBodyBytes    int64
	DedupWindow     time.Duration // redelivered ids inside the window are acknowledged, not reposted
	APIToken        string        // bearer token for /api/v1; empty leaves the operator API unmounted
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Address is the host:port the listener binds.
func (c WebhookConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CallbackURL is the externally reachable webhook endpoint.
func (c WebhookConfig) CallbackURL() string {
	return strings.TrimRight(c.ExternalURL, "/") + c.Path
}

type DeliveryConfig struct {
	Transport   string // log, http or redis
	SendTimeout time.Duration
	HTTP        DeliveryHTTPConfig
	Redis       DeliveryRedisConfig
}

type DeliveryHTTPConfig struct {
	URL   string
	Token string
}

type DeliveryRedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type DatabaseConfig struct {
	Driver string // sqlite or mysql
	Path   string // sqlite file
	DSN    string // mysql
}

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	Token        string
	APIURL       string // enterprise base URL, empty for github.com
}

type ShortenerConfig struct {
	URL       string
	CacheSize int
	CacheTTL  time.Duration
}

type BotConfig struct {
	HelpPrefix string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/repo-relay/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/repo-relay/")

	return load()
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	viper.SetConfigFile(path)
	return load()
}

func load() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & logger
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Webhook listener
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Host = viper.GetString("webhook.host")
	cfg.Webhook.Port = viper.GetInt("webhook.port")
	cfg.Webhook.Path = viper.GetString("webhook.path")
	cfg.Webhook.Mode = viper.GetString("webhook.mode")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.ExternalURL = viper.GetString("webhook.external_url")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.MaxBodyBytes = viper.GetInt64("webhook.max_body_bytes")
	cfg.Webhook.DedupWindow = viper.GetDuration("webhook.dedup_window")
	cfg.Webhook.APIToken = viper.GetString("webhook.api_token")
	cfg.Webhook.ReadTimeout = viper.GetDuration("webhook.read_timeout")
	cfg.Webhook.ShutdownTimeout = viper.GetDuration("webhook.shutdown_timeout")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))
	cfg.Webhook.TrustedProxies = splitList(viper.GetString("webhook.trusted_proxies"))

	// Delivery
	cfg.Delivery.Transport = viper.GetString("delivery.transport")
	cfg.Delivery.SendTimeout = viper.GetDuration("delivery.send_timeout")
	cfg.Delivery.HTTP.URL = viper.GetString("delivery.http.url")
	cfg.Delivery.HTTP.Token = viper.GetString("delivery.http.token")
	cfg.Delivery.Redis.Addr = viper.GetString("delivery.redis.addr")
	cfg.Delivery.Redis.Password = viper.GetString("delivery.redis.password")
	cfg.Delivery.Redis.DB = viper.GetInt("delivery.redis.db")
	cfg.Delivery.Redis.Channel = viper.GetString("delivery.redis.channel")

	// Database
	cfg.Database.Driver = viper.GetString("database.driver")
	cfg.Database.Path = viper.GetString("database.path")
	cfg.Database.DSN = viper.GetString("database.dsn")

	// GitHub
	cfg.GitHub.ClientID = viper.GetString("github.client_id")
	cfg.GitHub.ClientSecret = viper.GetString("github.client_secret")
	cfg.GitHub.Token = viper.GetString("github.token")
	if ghToken := viper.GetString("github_token"); ghToken != "" {
		cfg.GitHub.Token = ghToken
	}
	cfg.GitHub.APIURL = viper.GetString("github.api_url")

	// Shortener
	cfg.Shortener.URL = viper.GetString("shortener.url")
	cfg.Shortener.CacheSize = viper.GetInt("shortener.cache_size")
	cfg.Shortener.CacheTTL = viper.GetDuration("shortener.cache_ttl")

	cfg.Bot.HelpPrefix = viper.GetString("bot.help_prefix")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.host", "0.0.0.0")
	viper.SetDefault("webhook.port", 3333)
	viper.SetDefault("webhook.path", "/webhook")
	viper.SetDefault("webhook.mode", "release")
	viper.SetDefault("webhook.external_url", "http://your_ip_or_domain_here:3333")
	viper.SetDefault("webhook.rate_limit_per_min", 600)
	viper.SetDefault("webhook.max_body_bytes", 25*1024*1024)
	viper.SetDefault("webhook.dedup_window", "1h")
	viper.SetDefault("webhook.read_timeout", "10s")
	viper.SetDefault("webhook.shutdown_timeout", "5s")

	viper.SetDefault("delivery.transport", "log")
	viper.SetDefault("delivery.send_timeout", "5s")
	viper.SetDefault("delivery.redis.channel", "repo-relay:outgoing")

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "repo-relay.db")

	viper.SetDefault("shortener.cache_size", 1024)
	viper.SetDefault("shortener.cache_ttl", "24h")

	viper.SetDefault("bot.help_prefix", ".")
}

// validate rejects configurations the service cannot start with.
func validate(cfg *Config) error {
	if cfg.Webhook.Port <= 0 || cfg.Webhook.Port > 65535 {
		return fmt.Errorf("webhook.port %d out of range", cfg.Webhook.Port)
	}
	if !strings.HasPrefix(cfg.Webhook.Path, "/") {
		return fmt.Errorf("webhook.path %q must start with /", cfg.Webhook.Path)
	}
	switch cfg.Delivery.Transport {
	case "log":
	case "http":
		if cfg.Delivery.HTTP.URL == "" {
			return fmt.Errorf("delivery.http.url is required for the http transport")
		}
	case "redis":
		if cfg.Delivery.Redis.Addr == "" {
			return fmt.Errorf("delivery.redis.addr is required for the redis transport")
		}
	default:
		return fmt.Errorf("unsupported delivery.transport %q (supported: log, http, redis)", cfg.Delivery.Transport)
	}
	switch cfg.Database.Driver {
	case "sqlite", "sqlite3", "":
	case "mysql":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when driver is mysql")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (supported: sqlite, mysql)", cfg.Database.Driver)
	}
	return nil
}

// splitList splits a comma-separated value, since viper does not parse
// arrays seamlessly from env.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
