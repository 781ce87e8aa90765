package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, pool sizes, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Tasks  TasksConfig
	Worker WorkerConfig
	Rental RentalConfig
	CORS   CORSConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	IntentTopic string   `envconfig:"KAFKA_INTENT_TOPIC" default:"cabinet-intents"`
	EventTopic  string   `envconfig:"KAFKA_EVENT_TOPIC" default:"cabinet-events"`
	Group       string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"cabinet-keeper"`
	Enabled     bool     `envconfig:"KAFKA_ENABLED" default:"true"`
}

type TasksConfig struct {
	Concurrency      int    `envconfig:"TASKS_CONCURRENCY" default:"5"`
	Queue            string `envconfig:"TASKS_QUEUE" default:"cabinets"`
	BookmarkSyncCron string `envconfig:"TASKS_BOOKMARK_SYNC_CRON" default:"@every 5m"`
	OverdueSweepCron string `envconfig:"TASKS_OVERDUE_SWEEP_CRON" default:"@every 10m"`
}

type WorkerConfig struct {
	Size          int           `envconfig:"WORKER_POOL_SIZE" default:"5"`
	QueueCapacity int           `envconfig:"WORKER_QUEUE_CAPACITY" default:"256"`
	StopTimeout   time.Duration `envconfig:"WORKER_STOP_TIMEOUT" default:"5s"`
}

type RentalConfig struct {
	// DispatchWait bounds how long a rent request blocks on the async result.
	DispatchWait time.Duration `envconfig:"RENTAL_DISPATCH_WAIT" default:"5s"`
	PollInterval time.Duration `envconfig:"RENTAL_POLL_INTERVAL" default:"100ms"`
	// ReturnWait bounds how long a return waits for an overlapping rent to settle.
	ReturnWait       time.Duration `envconfig:"RENTAL_RETURN_WAIT" default:"5s"`
	ReturnPoll       time.Duration `envconfig:"RENTAL_RETURN_POLL" default:"500ms"`
	Period           time.Duration `envconfig:"RENTAL_PERIOD" default:"720h"`
	BookmarkCacheTTL time.Duration `envconfig:"BOOKMARK_CACHE_TTL" default:"12h"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Kafka: KafkaConfig{
			Brokers:     []string{"localhost:19092"},
			IntentTopic: "cabinet-intents",
			EventTopic:  "cabinet-events",
			Group:       "cabinet-keeper-test",
			Enabled:     false,
		},
		Tasks: TasksConfig{
			Concurrency:      2,
			Queue:            "cabinets",
			BookmarkSyncCron: "@every 1m",
			OverdueSweepCron: "@every 1m",
		},
		Worker: WorkerConfig{
			Size:          2,
			QueueCapacity: 16,
			StopTimeout:   time.Second,
		},
		Rental: RentalConfig{
			DispatchWait:     500 * time.Millisecond,
			PollInterval:     10 * time.Millisecond,
			ReturnWait:       500 * time.Millisecond,
			ReturnPoll:       50 * time.Millisecond,
			Period:           720 * time.Hour,
			BookmarkCacheTTL: 12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
	}
}
