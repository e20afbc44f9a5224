package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	JWTExpiration  time.Duration

	UploadDir      string
	UploadMaxBytes int64
	StorageBackend string
	HDFSNamenode   string
	HDFSUser       string
	HDFSDir        string

	NATSURL       string
	RedisAddr     string
	AuthRateLimit int
	CORSOrigins   []string

	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from an optional app.env file in the working
// directory, with environment variables taking precedence.
func Load() *Config {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("could not read app.env, using environment only", slog.Any("error", err))
		}
	}

	return &Config{
		ServerPort:     v.GetString("SERVER_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiration:  v.GetDuration("JWT_EXPIRATION"),

		UploadDir:      v.GetString("UPLOAD_DIR"),
		UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		StorageBackend: strings.ToLower(v.GetString("STORAGE_BACKEND")),
		HDFSNamenode:   v.GetString("HDFS_NAMENODE"),
		HDFSUser:       v.GetString("HDFS_USER"),
		HDFSDir:        v.GetString("HDFS_DIR"),

		NATSURL:       v.GetString("NATS_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		AuthRateLimit: v.GetInt("AUTH_RATE_LIMIT"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),

		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "postgresql://postgres@localhost:5432/freelancehub")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRATION", 24*time.Hour)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 50<<20)
	v.SetDefault("STORAGE_BACKEND", "local")
	v.SetDefault("HDFS_NAMENODE", "namenode:9000")
	v.SetDefault("HDFS_USER", "root")
	v.SetDefault("HDFS_DIR", "/freelancehub/uploads")
	v.SetDefault("AUTH_RATE_LIMIT", 20)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("ADMIN_EMAIL", "admin@freelancehub.local")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
