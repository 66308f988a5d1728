package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

const devJWTSecret = "lexideck-dev-secret"

// Environment is the resolved runtime configuration. Values come from an
// optional config.yaml, overridden by environment variables.
type Environment struct {
	IsDevelopment  bool
	Port           string
	DatabaseURL    string
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	AllowedOrigins []string
	LogLevel       string
	SeedFile       string
}

func Load() (Environment, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Environment, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "sqlite:lexideck.db")
	v.SetDefault("jwt_issuer", "lexideck-api")
	v.SetDefault("jwt_audience", "lexideck-app")
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("seed_file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Environment{}, err
		}
	}

	env := Environment{
		IsDevelopment:  v.GetString("app_env") != "production",
		Port:           v.GetString("port"),
		DatabaseURL:    v.GetString("database_url"),
		JWTSecret:      v.GetString("jwt_secret"),
		JWTIssuer:      v.GetString("jwt_issuer"),
		JWTAudience:    v.GetString("jwt_audience"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		LogLevel:       v.GetString("log_level"),
		SeedFile:       v.GetString("seed_file"),
	}
	if env.JWTSecret == "" {
		if !env.IsDevelopment {
			return Environment{}, errors.New("config: JWT_SECRET must be set in production")
		}
		env.JWTSecret = devJWTSecret
	}
	return env, nil
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
