package config

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 存储驱动
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// EnvDevelopment 本地开发环境
const EnvDevelopment = "development"

// ErrJWTSecretMissing 非开发环境未配置JWT_SECRET
var ErrJWTSecretMissing = errors.New("JWT_SECRET must be set outside development")

// Config 应用配置
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Static    StaticConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	LogLevel    string
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPConfig
}

// HTTPConfig HTTP服务配置
type HTTPConfig struct {
	Network     string
	Addr        string
	Timeout     time.Duration
	CORSOrigins []string
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver     string
	MongoDB    MongoDBConfig
	PostgreSQL PostgreSQLConfig
}

// MongoDBConfig MongoDB配置
type MongoDBConfig struct {
	URI    string
	DBName string
}

// PostgreSQLConfig PostgreSQL配置，DSN为空时不启用审计日志
type PostgreSQLConfig struct {
	DSN    string
	DBName string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig Kafka配置，Brokers为空时不发布内容事件
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AuthConfig 鉴权配置
type AuthConfig struct {
	JWTSecret string
	JWTExpire time.Duration
}

// TelemetryConfig 链路追踪配置
type TelemetryConfig struct {
	Enabled    bool
	SampleRate float64
}

// StaticConfig 静态文件目录
type StaticConfig struct {
	UploadsDir string
	PublicDir  string
}

// CacheConfig 缓存失效通知配置
type CacheConfig struct {
	PollInterval time.Duration
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	PerMinute int
}

// SeedConfig 初始化数据配置
type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper, serviceName string) {
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "5000")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STORE_DRIVER", StoreDriverMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DB", "nightlife")
	v.SetDefault("POSTGRESQL_DSN", "")
	v.SetDefault("POSTGRESQL_DB", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "portal.content.events")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRE", "720h")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SAMPLE_RATE", 1.0)
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("CACHE_POLL_INTERVAL", "30s")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	v.SetDefault("SEED_ADMIN_USERNAME", "NightlifeAdmin")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@aau-nightlife.com")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
	v.SetDefault("SERVICE_NAME", serviceName)
}

// LoadConfig 从 .env、config.yaml 和环境变量加载配置
func LoadConfig(serviceName string) *Config {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, serviceName)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper 从viper实例构造配置
func FromViper(v *viper.Viper) *Config {
	port := v.GetString("PORT")
	if httpPort := v.GetString("HTTP_PORT"); httpPort != "" {
		port = httpPort
	}

	return &Config{
		App: AppConfig{
			Name:        v.GetString("SERVICE_NAME"),
			Version:     v.GetString("APP_VERSION"),
			Environment: v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			HTTP: HTTPConfig{
				Network:     "tcp",
				Addr:        ":" + port,
				Timeout:     durationOrDefault(v.GetString("HTTP_TIMEOUT"), 30*time.Second),
				CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
			},
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
			MongoDB: MongoDBConfig{
				URI:    v.GetString("MONGODB_URI"),
				DBName: v.GetString("MONGODB_DB"),
			},
			PostgreSQL: PostgreSQLConfig{
				DSN:    v.GetString("POSTGRESQL_DSN"),
				DBName: v.GetString("POSTGRESQL_DB"),
			},
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			JWTExpire: durationOrDefault(v.GetString("JWT_EXPIRE"), 30*24*time.Hour),
		},
		Telemetry: TelemetryConfig{
			Enabled:    v.GetBool("TRACING_ENABLED"),
			SampleRate: v.GetFloat64("TRACING_SAMPLE_RATE"),
		},
		Static: StaticConfig{
			UploadsDir: v.GetString("UPLOADS_DIR"),
			PublicDir:  v.GetString("PUBLIC_DIR"),
		},
		Cache: CacheConfig{
			PollInterval: durationOrDefault(v.GetString("CACHE_POLL_INTERVAL"), 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Seed: SeedConfig{
			AdminUsername: v.GetString("SEED_ADMIN_USERNAME"),
			AdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		},
	}
}

// Validate 校验启动必需的配置。
// 开发环境未配置JWT_SECRET时生成进程内随机密钥，重启后旧令牌失效。
func (c *Config) Validate() error {
	if c.Auth.JWTSecret != "" {
		return nil
	}
	if c.App.Environment != EnvDevelopment {
		return ErrJWTSecretMissing
	}
	c.Auth.JWTSecret = uuid.NewString()
	return nil
}

// UseMemoryStore 是否使用进程内存储
func (c *Config) UseMemoryStore() bool {
	return c.Database.Driver == StoreDriverMemory
}

// durationOrDefault 解析时间字符串
func durationOrDefault(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

// splitList 解析逗号分隔的列表
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
