package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"parcelmybox/internal/adapters/out/postgres"
	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-required:"true"`
	DBPassword string `env:"DB_PASSWORD" env-required:"true"`
	DBName     string `env:"DB_NAME" env-required:"true"`
	DBSslMode  string `env:"DB_SSLMODE" env-default:"disable"`

	JWTSecret     string        `env:"JWT_SECRET" env-required:"true"`
	JWTIssuer     string        `env:"JWT_ISSUER" env-default:"parcelmybox"`
	JWTAccessTTL  time.Duration `env:"JWT_ACCESS_TTL" env-default:"15m"`
	JWTRefreshTTL time.Duration `env:"JWT_REFRESH_TTL" env-default:"168h"`

	// RedisAddr is optional; without it tracking lookups always read the database.
	RedisAddr        string        `env:"REDIS_ADDR" env-default:""`
	RedisTrackingTTL time.Duration `env:"REDIS_TRACKING_TTL" env-default:"60s"`

	BillDueDays          int    `env:"BILL_DUE_DAYS" env-default:"14"`
	OverdueSweepSchedule string `env:"OVERDUE_SWEEP_SCHEDULE" env-default:"*/10 * * * *"`
	Currency             string `env:"CURRENCY" env-default:"USD"`
	CompanyName          string `env:"COMPANY_NAME" env-default:"ParcelMyBox"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.JWTAccessTTL <= 0 || c.JWTRefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive"))
	}
	if c.RedisAddr != "" && c.RedisTrackingTTL <= 0 {
		errs = append(errs, errors.New("REDIS_TRACKING_TTL must be positive"))
	}
	if c.BillDueDays < 0 {
		errs = append(errs, errors.New("BILL_DUE_DAYS must not be negative"))
	}
	if _, err := kernel.ZeroMoney(c.Currency); err != nil || c.Currency != strings.ToUpper(c.Currency) {
		errs = append(errs, fmt.Errorf("CURRENCY %q is not an ISO 4217 code", c.Currency))
	}
	return errors.Join(errs...)
}

func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
