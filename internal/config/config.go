package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type OTPConfig struct {
	TTLMinutes     int `yaml:"ttl_minutes"`
	MaxSends       int `yaml:"max_sends"`
	SendWindowMins int `yaml:"send_window_minutes"`
	SessionTTLMins int `yaml:"session_ttl_minutes"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	OTP      OTPConfig      `yaml:"otp"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.OTP.TTLMinutes <= 0 {
		cfg.OTP.TTLMinutes = 10
	}
	if cfg.OTP.MaxSends <= 0 {
		cfg.OTP.MaxSends = 3
	}
	if cfg.OTP.SendWindowMins <= 0 {
		cfg.OTP.SendWindowMins = 10
	}
	if cfg.OTP.SessionTTLMins <= 0 {
		cfg.OTP.SessionTTLMins = 45
	}
	return &cfg
}

func (c *OTPConfig) TTL() time.Duration        { return time.Duration(c.TTLMinutes) * time.Minute }
func (c *OTPConfig) SendWindow() time.Duration { return time.Duration(c.SendWindowMins) * time.Minute }
func (c *OTPConfig) SessionTTL() time.Duration { return time.Duration(c.SessionTTLMins) * time.Minute }
