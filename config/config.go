// Initializing common application configuration
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Email    EmailConfig    `mapstructure:"email"`
	App      AppConfig      `mapstructure:"app"`
}

type ServerConfig struct {
	AppVersion   string `mapstructure:"appVersion"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `mapstructure:"environment"`
	Mode         string `mapstructure:"mode"`
	// Serverless reports whether the process runs behind a serverless
	// platform; in that mode the platform owns the listening socket.
	Serverless bool `mapstructure:"serverless"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type FirebaseConfig struct {
	// ServiceAccountKey holds the raw service-account JSON. When empty the
	// client falls back to CredentialsFile.
	ServiceAccountKey string `mapstructure:"service_account_key"`
	CredentialsFile   string `mapstructure:"credentials_file"`

	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

type EmailConfig struct {
	From     string `mapstructure:"from"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type AppConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	// Environment overrides for secrets and platform flags
	c.Firebase.ServiceAccountKey = GetEnv("FIREBASE_SERVICE_ACCOUNT_KEY", c.Firebase.ServiceAccountKey)
	c.Email.Username = GetEnv("EMAIL_USER", c.Email.Username)
	c.Email.Password = GetEnv("EMAIL_PASS", c.Email.Password)
	c.Server.Port = GetEnv("PORT", c.Server.Port)
	c.Server.Env = GetEnv("NODE_ENV", c.Server.Env)
	if GetEnvBool("VERCEL", false) {
		c.Server.Serverless = true
	}

	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
