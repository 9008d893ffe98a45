package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Port            string `mapstructure:"PORT"`
	AuthSvcUrl      string `mapstructure:"AUTH_SVC_URL"`
	UserSvcUrl      string `mapstructure:"USER_SVC_URL"`
	ProgressSvcUrl  string `mapstructure:"PROGRESS_SVC_URL"`
	AnalyticsSvcUrl string `mapstructure:"ANALYTICS_SVC_URL"`
	AllowedOrigins  string `mapstructure:"ALLOWED_ORIGINS"`
	REDIS_ADDR      string `mapstructure:"REDIS_ADDR"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// ВАЖНО: Явно биндим
	viper.BindEnv("PORT")
	viper.BindEnv("AUTH_SVC_URL")
	viper.BindEnv("USER_SVC_URL")
	viper.BindEnv("PROGRESS_SVC_URL")
	viper.BindEnv("ANALYTICS_SVC_URL")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("REDIS_ADDR")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
