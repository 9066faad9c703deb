package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Schedule ScheduleConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ScheduleConfig struct {
	CacheTTL        time.Duration // how long the roster/override snapshot stays valid
	OverrideLockTTL time.Duration // redis lock held around override writes
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("SCHEDULE_CACHE_TTL"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	lockTTL, err := time.ParseDuration(viper.GetString("SCHEDULE_OVERRIDE_LOCK_TTL"))
	if err != nil {
		lockTTL = 10 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Schedule: ScheduleConfig{
			CacheTTL:        cacheTTL,
			OverrideLockTTL: lockTTL,
		},
	}

	return config, nil
}
