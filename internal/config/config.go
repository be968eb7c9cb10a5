package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"bitget-margin-info/internal/model"
)

const (
	DefaultBaseURL = "https://api.bitget.com"
	DefaultLocale  = "zh-CN"
	DefaultSymbol  = "BTCUSDT"
	DefaultLogFile = "logs/app.log"
)

type Config struct {
	Symbol string

	// Bitget API
	BitgetBaseURL string
	BitgetLocale  string
	Credentials   model.Credentials

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Optional cron spec; empty means a single run.
	RefreshSchedule string

	// Report every isolated-borrowable USDT pair instead of Symbol.
	AllBorrowable bool

	// False when no env file was found and only the process environment was used.
	EnvFileLoaded bool
}

// Load reads the given env files (".env" when none are passed) into the process
// environment and builds the Config from it. A missing env file is not an error.
func Load(files ...string) (*Config, error) {
	cfg := &Config{EnvFileLoaded: true}

	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
		cfg.EnvFileLoaded = false
	}

	cfg.Symbol = getEnv("SYMBOL", DefaultSymbol)
	cfg.BitgetBaseURL = strings.TrimRight(getEnv("BITGET_BASE_URL", DefaultBaseURL), "/")
	cfg.BitgetLocale = getEnv("BITGET_LOCALE", DefaultLocale)

	// Credentials are passed through as-is; bad values surface as a signature rejection.
	cfg.Credentials = model.Credentials{
		APIKey:     os.Getenv("BITGET_API_KEY"),
		SecretKey:  os.Getenv("BITGET_API_SECRET"),
		Passphrase: os.Getenv("BITGET_PASSPHRASE"),
	}

	cfg.LogFile = getEnv("LOG_FILE", DefaultLogFile)

	var err error
	cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info"), "LOG_LEVEL")
	if err != nil {
		return nil, err
	}

	cfg.RefreshSchedule = strings.TrimSpace(os.Getenv("REFRESH_SCHEDULE"))
	if cfg.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", "REFRESH_SCHEDULE", err)
		}
	}

	if v := os.Getenv("ALL_BORROWABLE"); v != "" {
		cfg.AllBorrowable, err = parseBool(v, "ALL_BORROWABLE")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func parseBool(value, name string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return b, nil
}

func parseLevel(value, name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return level, nil
}
