package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"APP_ENV" env-default:"production"`
	HTTPServer HTTPServer `yaml:"http_server"`
	PGSQL      PQSQL      `yaml:"pgsql"`
	Admin      Admin      `yaml:"admin"`
	Session    Session    `yaml:"session"`
	MinIO      MinIO      `yaml:"minio"`
	Media      Media      `yaml:"media"`
	Redis      Redis      `yaml:"redis"`
	SMTP       SMTP       `yaml:"smtp"`
	Site       Site       `yaml:"site"`
	Content    Content    `yaml:"content"`
	Sweeper    Sweeper    `yaml:"sweeper"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
	// TrustProxyHeaders takes the client IP from X-Forwarded-For. Enable only behind a proxy.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" env:"HTTP_TRUST_PROXY_HEADERS"`
}

type PQSQL struct {
	Host     string `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"PG_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"PG_PASSWORD" env-default:"password"`
	DBName   string `yaml:"dbname" env:"PG_DBNAME" env-default:"umerfilms"`
	SSLMode  string `yaml:"sslmode" env:"PG_SSLMODE" env-default:"disable"`
	MaxConns int    `yaml:"max_conns" env:"PG_MAX_CONNS" env-default:"10"`
}

// DSN returns the lib/pq connection string.
func (p PQSQL) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Admin identifies the single operator allowed into the admin panel.
type Admin struct {
	Email           string `yaml:"email" env:"ADMIN_EMAIL" env-required:"true"`
	InitialPassword string `yaml:"initial_password" env:"ADMIN_INITIAL_PASSWORD"`
}

type Session struct {
	Secret         string        `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
	CookieName     string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"umerfilms_session"`
	TTL            time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	RefreshWindow  time.Duration `yaml:"refresh_window" env:"SESSION_REFRESH_WINDOW" env-default:"1h"`
	InsecureCookie bool          `yaml:"insecure_cookie" env:"SESSION_INSECURE_COOKIE"` // plain-http local setups only
}

type MinIO struct {
	Endpoint        string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	BucketName      string `yaml:"bucket_name" env:"MINIO_BUCKET" env-default:"media"`
	UseSSL          bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
	// PublicBaseURL is the origin media URLs are served from, e.g. a CDN.
	// Defaults to the MinIO endpoint itself.
	PublicBaseURL string `yaml:"public_base_url" env:"MINIO_PUBLIC_BASE_URL"`
}

type Media struct {
	MaxFileSize      int64    `yaml:"max_file_size" env:"MEDIA_MAX_FILE_SIZE" env-default:"524288000"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types" env:"MEDIA_ALLOWED_MIME_TYPES" env-default:"image/jpeg,image/png,image/webp,image/gif,video/mp4,video/quicktime,video/webm"`
	PresignedURLTTL  int      `yaml:"presigned_url_ttl" env:"MEDIA_PRESIGNED_URL_TTL" env-default:"900"`
}

type Redis struct {
	Disabled bool          `yaml:"disabled" env:"REDIS_DISABLED"`
	Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"60s"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User     string `yaml:"user" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
	// To defaults to the admin email.
	To string `yaml:"to" env:"SMTP_TO"`
}

type Site struct {
	PortraitFallback string `yaml:"portrait_fallback" env:"SITE_PORTRAIT_FALLBACK" env-default:"/images/portrait.jpg"`
	AdminDir         string `yaml:"admin_dir" env:"SITE_ADMIN_DIR" env-default:"./web/admin"`
}

type Content struct {
	// AtomicVideoWrites wraps a video write and its tag replacement in one transaction.
	AtomicVideoWrites bool `yaml:"atomic_video_writes" env:"CONTENT_ATOMIC_VIDEO_WRITES" env-default:"false"`
}

type Sweeper struct {
	Interval    time.Duration `yaml:"interval" env:"SWEEPER_INTERVAL" env-default:"6h"`
	GracePeriod time.Duration `yaml:"grace_period" env:"SWEEPER_GRACE_PERIOD" env-default:"24h"`
	DryRun      bool          `yaml:"dry_run" env:"SWEEPER_DRY_RUN" env-default:"false"`
}

// RateLimit sets the per-minute budget per client IP for the public write endpoints.
type RateLimit struct {
	Login   int64 `yaml:"login" env:"RATE_LIMIT_LOGIN" env-default:"5"`
	Contact int64 `yaml:"contact" env:"RATE_LIMIT_CONTACT" env-default:"3"`
}

// Load reads the YAML file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist at path: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.SMTP.To == "" {
		cfg.SMTP.To = cfg.Admin.Email
	}

	return &cfg, nil
}

func MustLoad() *Config {
	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to config file")
		flag.Parse()
		configPath = *flags

		if configPath == "" {
			log.Fatal("config path must be provided")
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
