package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port string
	Env  string

	// Storage. DataDir backs the default file store; a non-empty RedisURL
	// switches persistence to Redis.
	DataDir   string
	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret string
	JWTTTL    time.Duration

	AdminUser string
	AdminPass string

	// Wallet and game limits, in NPR.
	MinBet      decimal.Decimal
	MinDeposit  decimal.Decimal
	MaxDeposit  decimal.Decimal
	MinWithdraw decimal.Decimal
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		DataDir:   getEnv("DATA_DIR", "data"),
		RedisURL:  os.Getenv("REDIS_URL"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    24 * time.Hour,
		AdminUser: getEnv("ADMIN_USER", "admin"),
		AdminPass: os.Getenv("ADMIN_PASS"),

		MinBet:      decimal.NewFromInt(30),
		MinDeposit:  decimal.NewFromInt(200),
		MaxDeposit:  decimal.NewFromInt(2000),
		MinWithdraw: decimal.NewFromInt(400),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminPass == "" {
		return nil, fmt.Errorf("ADMIN_PASS is required")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %v", err)
		}
		cfg.JWTTTL = ttl
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
