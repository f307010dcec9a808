package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Mode           string        `mapstructure:"MODE"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	AccessSecret   string        `mapstructure:"ACCESS_SECRET"`
	AuthSvcUrl     string        `mapstructure:"AUTH_SVC_URL"`
	CourseSvcUrl   string        `mapstructure:"COURSE_SVC_URL"`
	CatalogSvcUrl  string        `mapstructure:"CATALOG_SVC_URL"`
	PreviewDir     string        `mapstructure:"PREVIEW_DIR"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("MODE", "dev")
	viper.SetDefault("SESSION_TTL", "45m")

	// Bind explicitly so viper picks the vars up without a config file.
	viper.BindEnv("PORT")
	viper.BindEnv("MODE")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("ACCESS_SECRET")
	viper.BindEnv("AUTH_SVC_URL")
	viper.BindEnv("COURSE_SVC_URL")
	viper.BindEnv("CATALOG_SVC_URL")
	viper.BindEnv("PREVIEW_DIR")
	viper.BindEnv("SESSION_TTL")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
