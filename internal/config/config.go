package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	Mail        MailConfig       `json:"mail"`
	OTP         OTPConfig        `json:"otp"`
	Razorpay    RazorpayConfig   `json:"razorpay"`
	CORSOrigins []string         `json:"cors_origins"`
	// Browser redirect target for the payment callback. The callback always
	// lands here regardless of outcome.
	PaymentRedirectURL string `json:"payment_redirect_url"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

type OTPConfig struct {
	TTLSeconds            int `json:"ttl_seconds"`
	ResetTTLSeconds       int `json:"reset_ttl_seconds"`
	ResendCooldownSeconds int `json:"resend_cooldown_seconds"`
}

type RazorpayConfig struct {
	KeyID     string `json:"key_id"`
	KeySecret string `json:"key_secret"`
	Currency  string `json:"currency"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		return nil, fmt.Errorf("razorpay.key_id and razorpay.key_secret are required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.OTP.TTLSeconds == 0 {
		cfg.OTP.TTLSeconds = 300
	}
	if cfg.OTP.ResetTTLSeconds == 0 {
		cfg.OTP.ResetTTLSeconds = 300
	}
	if cfg.OTP.ResendCooldownSeconds == 0 {
		cfg.OTP.ResendCooldownSeconds = 30
	}
	if cfg.Razorpay.Currency == "" {
		cfg.Razorpay.Currency = "INR"
	}
	if cfg.PaymentRedirectURL == "" {
		cfg.PaymentRedirectURL = "/"
	}
	return &cfg, nil
}
