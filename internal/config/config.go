package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OSMDB    DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Pipeline PipelineConfig
	Source   SourceConfig
	Quiz     QuizConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ProgressTTL  time.Duration
	JobStatusTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	// BuildTimeout ограничивает одно построение упражнения
	BuildTimeout time.Duration
}

// PipelineConfig - параметры конвейера построения упражнения
type PipelineConfig struct {
	MergeLimitMeters  float64
	MinEntities       int
	CategoryTablePath string
}

// SourceConfig - поставщик сырых записей: osm_db или overpass
type SourceConfig struct {
	Provider        string
	OverpassURL     string
	OverpassTimeout time.Duration
	MaxRecords      int
}

type QuizConfig struct {
	QuestionsPerEntity           int
	ExtraQuestions               int
	PassThreshold                float64
	LevelsBeforeExerciseReminder int
	MaxReminderEntities          int
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Источники сырых записей
const (
	ProviderOSMDB    = "osm_db"
	ProviderOverpass = "overpass"
)

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "geoquiz")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 20)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	viper.SetDefault("OSM_DB_PORT", 5432)
	viper.SetDefault("OSM_DB_NAME", "osm")
	viper.SetDefault("OSM_DB_SSLMODE", "disable")
	viper.SetDefault("OSM_DB_MAX_CONNS", 5)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)

	viper.SetDefault("PROGRESS_CACHE_TTL", 3600)
	viper.SetDefault("JOB_STATUS_TTL", 86400)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("WORKER_CONSUMER_GROUP", "exercise-build-workers")
	viper.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	viper.SetDefault("WORKER_BUILD_TIMEOUT", 600)

	viper.SetDefault("MERGE_LIMIT_METERS", 150)
	viper.SetDefault("MIN_ENTITIES", 2)

	viper.SetDefault("SOURCE_PROVIDER", ProviderOSMDB)
	viper.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("OVERPASS_TIMEOUT", 180)
	viper.SetDefault("SOURCE_MAX_RECORDS", 20000)

	viper.SetDefault("QUIZ_QUESTIONS_PER_ENTITY", 4)
	viper.SetDefault("QUIZ_EXTRA_QUESTIONS", 3)
	viper.SetDefault("QUIZ_PASS_THRESHOLD", 0.85)
	viper.SetDefault("QUIZ_LEVELS_BEFORE_EXERCISE_REMINDER", 4)
	viper.SetDefault("QUIZ_MAX_REMINDER_ENTITIES", 20)

	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")
}

// Load читает .env, если он есть, и переменные окружения
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: loadDatabase("DB"),
		OSMDB:    loadDatabase("OSM_DB"),
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ProgressTTL:  time.Duration(viper.GetInt("PROGRESS_CACHE_TTL")) * time.Second,
			JobStatusTTL: time.Duration(viper.GetInt("JOB_STATUS_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BuildTimeout:      time.Duration(viper.GetInt("WORKER_BUILD_TIMEOUT")) * time.Second,
		},
		Pipeline: PipelineConfig{
			MergeLimitMeters:  viper.GetFloat64("MERGE_LIMIT_METERS"),
			MinEntities:       viper.GetInt("MIN_ENTITIES"),
			CategoryTablePath: viper.GetString("CATEGORY_TABLE_PATH"),
		},
		Source: SourceConfig{
			Provider:        strings.ToLower(strings.TrimSpace(viper.GetString("SOURCE_PROVIDER"))),
			OverpassURL:     viper.GetString("OVERPASS_URL"),
			OverpassTimeout: time.Duration(viper.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			MaxRecords:      viper.GetInt("SOURCE_MAX_RECORDS"),
		},
		Quiz: QuizConfig{
			QuestionsPerEntity:           viper.GetInt("QUIZ_QUESTIONS_PER_ENTITY"),
			ExtraQuestions:               viper.GetInt("QUIZ_EXTRA_QUESTIONS"),
			PassThreshold:                viper.GetFloat64("QUIZ_PASS_THRESHOLD"),
			LevelsBeforeExerciseReminder: viper.GetInt("QUIZ_LEVELS_BEFORE_EXERCISE_REMINDER"),
			MaxReminderEntities:          viper.GetInt("QUIZ_MAX_REMINDER_ENTITIES"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Path:    viper.GetString("METRICS_PATH"),
		},
	}

	// База OSM по умолчанию на том же сервере, что и основная
	if cfg.OSMDB.Host == "" {
		cfg.OSMDB.Host = cfg.Database.Host
		cfg.OSMDB.User = cfg.Database.User
		cfg.OSMDB.Password = cfg.Database.Password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadDatabase(prefix string) DatabaseConfig {
	key := func(name string) string { return prefix + "_" + name }
	return DatabaseConfig{
		Host:            viper.GetString(key("HOST")),
		Port:            viper.GetInt(key("PORT")),
		User:            viper.GetString(key("USER")),
		Password:        viper.GetString(key("PASSWORD")),
		DBName:          viper.GetString(key("NAME")),
		SSLMode:         viper.GetString(key("SSLMODE")),
		MaxConns:        viper.GetInt(key("MAX_CONNS")),
		MaxIdleConns:    viper.GetInt(key("MAX_IDLE_CONNS")),
		ConnMaxLifetime: time.Duration(viper.GetInt(key("CONN_MAX_LIFETIME"))) * time.Second,
		ConnMaxIdleTime: time.Duration(viper.GetInt(key("CONN_MAX_IDLE_TIME"))) * time.Second,
	}
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	switch c.Source.Provider {
	case ProviderOSMDB, ProviderOverpass:
	default:
		return fmt.Errorf("unknown SOURCE_PROVIDER %q", c.Source.Provider)
	}
	if c.Quiz.PassThreshold <= 0 || c.Quiz.PassThreshold > 1 {
		return fmt.Errorf("QUIZ_PASS_THRESHOLD must be in (0, 1], got %v", c.Quiz.PassThreshold)
	}
	if c.Pipeline.MinEntities < 2 {
		return fmt.Errorf("MIN_ENTITIES must be at least 2, got %d", c.Pipeline.MinEntities)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// DSN - строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
