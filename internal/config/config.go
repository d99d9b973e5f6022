package config

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config 全部运行配置，config.yaml 可被环境变量覆盖
type Config struct {
	ServerAddr string `mapstructure:"SERVER_ADDR"`

	MySQLDSN string `mapstructure:"MYSQL_DSN"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"` // 逗号分隔，留空则事件只打日志
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	SMTPHost     string `mapstructure:"SMTP_HOST"` // 留空则不发通知邮件
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	JWTAccessSecret  string `mapstructure:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret string `mapstructure:"JWT_REFRESH_SECRET"`

	UploadDir string `mapstructure:"UPLOAD_DIR"`
}

func Load() *Config {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			log.Println("config file not found; using environment variables and defaults")
		} else {
			log.Fatalf("read config: %s", err)
		}
	}

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("MYSQL_DSN", "whome:whome@tcp(127.0.0.1:3306)/whome?charset=utf8mb4&parseTime=True")
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "whome.events")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("JWT_ACCESS_SECRET", "")
	viper.SetDefault("JWT_REFRESH_SECRET", "")
	viper.SetDefault("UPLOAD_DIR", "static")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("decode config: %v", err)
	}
	return &cfg
}

// BrokerList 拆出 kafka broker 列表
func (c *Config) BrokerList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
