package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram
	BotToken      string `env:"TELEGRAM_BOT_TOKEN"`
	AllowedUserID int64  `env:"ALLOWED_USER_ID"`

	// Storage
	DatabaseDSN string `env:"DATABASE_URI"`
	MediaDir    string `env:"MEDIA_DIR"`
	PublicDir   string `env:"PUBLIC_DIR"`

	// Web
	BaseURL    string `env:"BASE_URL"`
	AuthSecret string `env:"AUTH_SECRET"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.BotToken, "bot-token", cfg.BotToken, "telegram bot token (empty disables the bot)")
	flag.Int64Var(&cfg.AllowedUserID, "allowed-user", cfg.AllowedUserID, "telegram user id allowed to use the vault")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (файл SQLite или postgres://)")
	flag.StringVar(&cfg.MediaDir, "media-dir", cfg.MediaDir, "каталог медиахранилища")
	flag.StringVar(&cfg.PublicDir, "public-dir", cfg.PublicDir, "каталог статики веб-галереи")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес веб-сервера (host:port)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи auth-cookie и входа в веб-интерфейс")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "laniakea.db"
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = "media"
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:3000"
	}

	return cfg
}
