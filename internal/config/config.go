package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	AI        AIConfig        `mapstructure:"ai"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// ScoringConfig carries the calibration constants of the fusion layer.
// Zero values fall back to the defaults set by the analyzer.
type ScoringConfig struct {
	FetchedWeight    float64       `mapstructure:"fetched_weight"`
	UnfetchedWeight  float64       `mapstructure:"unfetched_weight"`
	OverrideScore    int           `mapstructure:"override_score"`
	SafeThreshold    int           `mapstructure:"safe_threshold"`
	CautionThreshold int           `mapstructure:"caution_threshold"`
	MaxReasons       int           `mapstructure:"max_reasons"`
	VerdictCacheTTL  time.Duration `mapstructure:"verdict_cache_ttl"`
	MaxImageBytes    int           `mapstructure:"max_image_bytes"`
}

type AIConfig struct {
	Judge  JudgeConfig  `mapstructure:"judge"`
	Vision VisionConfig `mapstructure:"vision"`
}

type JudgeConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type VisionConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type FetcherConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	MaxBodyChars int           `mapstructure:"max_body_chars"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scamradar")
	}

	v.SetEnvPrefix("SCAMRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("database.enabled", "SCAMRADAR_DATABASE_ENABLED")
	v.BindEnv("database.host", "SCAMRADAR_DATABASE_HOST")
	v.BindEnv("database.port", "SCAMRADAR_DATABASE_PORT")
	v.BindEnv("database.user", "SCAMRADAR_DATABASE_USER")
	v.BindEnv("database.password", "SCAMRADAR_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "SCAMRADAR_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "SCAMRADAR_DATABASE_SSLMODE")
	v.BindEnv("redis.enabled", "SCAMRADAR_REDIS_ENABLED")
	v.BindEnv("redis.host", "SCAMRADAR_REDIS_HOST")
	v.BindEnv("redis.port", "SCAMRADAR_REDIS_PORT")
	v.BindEnv("redis.password", "SCAMRADAR_REDIS_PASSWORD")
	v.BindEnv("ai.judge.enabled", "SCAMRADAR_AI_JUDGE_ENABLED")
	v.BindEnv("ai.judge.endpoint", "SCAMRADAR_AI_JUDGE_ENDPOINT")
	v.BindEnv("ai.judge.api_key", "SCAMRADAR_AI_JUDGE_API_KEY")
	v.BindEnv("ai.judge.model", "SCAMRADAR_AI_JUDGE_MODEL")
	v.BindEnv("ai.vision.enabled", "SCAMRADAR_AI_VISION_ENABLED")
	v.BindEnv("ai.vision.endpoint", "SCAMRADAR_AI_VISION_ENDPOINT")
	v.BindEnv("ai.vision.api_key", "SCAMRADAR_AI_VISION_API_KEY")
	v.BindEnv("ai.vision.model", "SCAMRADAR_AI_VISION_MODEL")
	v.BindEnv("app.environment", "SCAMRADAR_APP_ENVIRONMENT")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}
