package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// RecaptchaTestSiteKey is Google's published reCAPTCHA v2 test key. It
	// always validates and must never reach a production deployment.
	RecaptchaTestSiteKey = "6LeIxAcTAAAAAJcZVRqyHh71UMIEGNQ_MXjiZKhI"
	// RecaptchaTestSecretKey pairs with RecaptchaTestSiteKey.
	RecaptchaTestSecretKey = "6LeIxAcTAAAAAGG-vFI1TnRWxMZNFuojJ4WifJWe"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string `yaml:"listen_addr" env:"LISTEN_ADDR"`
	Port              string `yaml:"port" env:"PORT" env-default:"8080"`
	GinMode           string `yaml:"gin_mode" env:"GIN_MODE" env-default:"release"`
	LogLevel          string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	DatabaseDriver    string `yaml:"database_driver" env:"DATABASE_DRIVER" env-default:"sqlite"`
	DatabasePath      string `yaml:"database_path" env:"DATABASE_PATH" env-default:"advisorsite.db"`
	DatabaseURL       string `yaml:"database_url" env:"DATABASE_URL"`
	SessionSecret     string `yaml:"session_secret" env:"SESSION_SECRET" env-default:"advisorsite-dev-secret"`
	SuperRootUserName string `yaml:"super_root_user_name" env:"SUPER_ROOT_USER_NAME"`
	SuperRootPassword string `yaml:"super_root_password" env:"SUPER_ROOT_PASSWORD"`
	SiteBaseURL       string `yaml:"site_base_url" env:"SITE_BASE_URL" env-default:"http://localhost:8080"`

	Storage StorageConfig `yaml:"storage"`
	Captcha CaptchaConfig `yaml:"captcha"`

	DefaultContentPath     string        `yaml:"default_content_path" env:"DEFAULT_CONTENT_PATH"`
	ContentRefreshInterval time.Duration `yaml:"content_refresh_interval" env:"CONTENT_REFRESH_INTERVAL" env-default:"30s"`
	RedisURL               string        `yaml:"redis_url" env:"REDIS_URL"`
	SnapshotTTL            time.Duration `yaml:"snapshot_ttl" env:"SNAPSHOT_TTL" env-default:"30s"`
	MetricsEnabled         bool          `yaml:"metrics_enabled" env:"METRICS_ENABLED" env-default:"true"`
	LoginRateLimit         float64       `yaml:"login_rate_limit" env:"LOGIN_RATE_LIMIT" env-default:"0.2"`
	LoginBurst             int           `yaml:"login_burst" env:"LOGIN_BURST" env-default:"5"`
}

// StorageConfig selects where uploaded images live.
type StorageConfig struct {
	Backend       string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"local"`
	UploadDir     string `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"web/static/uploads"`
	UploadURLPath string `yaml:"upload_url_path" env:"UPLOAD_URL_PATH" env-default:"/static/uploads"`

	S3Bucket          string `yaml:"s3_bucket" env:"S3_BUCKET"`
	S3Region          string `yaml:"s3_region" env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint        string `yaml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3AccessKeyID     string `yaml:"s3_access_key_id" env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `yaml:"s3_secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL   string `yaml:"s3_public_base_url" env:"S3_PUBLIC_BASE_URL"`
	S3UsePathStyle    bool   `yaml:"s3_use_path_style" env:"S3_USE_PATH_STYLE"`
}

// CaptchaConfig controls the reCAPTCHA check on the admin login form.
type CaptchaConfig struct {
	Enabled   bool   `yaml:"enabled" env:"CAPTCHA_ENABLED"`
	SiteKey   string `yaml:"site_key" env:"CAPTCHA_SITE_KEY"`
	SecretKey string `yaml:"secret_key" env:"CAPTCHA_SECRET_KEY"`
	// UsingTestKeys is set by Load when either key fell back to Google's
	// development keys.
	UsingTestKeys bool `yaml:"-" env:"-"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 如果设置了 CONFIG_FILE，则先读取该文件，再由环境变量覆盖。
func Load() (AppConfig, error) {
	var cfg AppConfig

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("read config from env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = "8080"
	}

	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}

	c.GinMode = strings.TrimSpace(c.GinMode)
	if c.GinMode == "" {
		c.GinMode = "release"
	}

	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = "sqlite"
	}
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	if c.DatabasePath == "" {
		c.DatabasePath = "advisorsite.db"
	}
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)

	c.SessionSecret = strings.TrimSpace(c.SessionSecret)
	if c.SessionSecret == "" {
		c.SessionSecret = "advisorsite-dev-secret"
	}

	c.SuperRootUserName = strings.TrimSpace(c.SuperRootUserName)
	c.SuperRootPassword = strings.TrimSpace(c.SuperRootPassword)
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	c.DefaultContentPath = strings.TrimSpace(c.DefaultContentPath)
	c.RedisURL = strings.TrimSpace(c.RedisURL)

	if c.ContentRefreshInterval <= 0 {
		c.ContentRefreshInterval = 30 * time.Second
	}
	if c.SnapshotTTL <= 0 {
		c.SnapshotTTL = c.ContentRefreshInterval
	}
	if c.LoginBurst <= 0 {
		c.LoginBurst = 5
	}

	s := &c.Storage
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if s.Backend == "" {
		s.Backend = "local"
	}
	s.UploadDir = strings.TrimSpace(s.UploadDir)
	if s.UploadDir == "" {
		s.UploadDir = "web/static/uploads"
	}
	s.UploadURLPath = strings.TrimRight(strings.TrimSpace(s.UploadURLPath), "/")
	if s.UploadURLPath == "" {
		s.UploadURLPath = "/static/uploads"
	}

	cp := &c.Captcha
	cp.SiteKey = strings.TrimSpace(cp.SiteKey)
	cp.SecretKey = strings.TrimSpace(cp.SecretKey)
	if cp.SiteKey == "" {
		cp.SiteKey = RecaptchaTestSiteKey
		cp.UsingTestKeys = true
	}
	if cp.SecretKey == "" {
		cp.SecretKey = RecaptchaTestSecretKey
		cp.UsingTestKeys = true
	}
}

// Validate rejects combinations the server cannot start with.
func (c AppConfig) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.Storage.Backend {
	case "local":
	case "s3":
		if strings.TrimSpace(c.Storage.S3Bucket) == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	return nil
}
