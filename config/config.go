package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port             string   `mapstructure:"port"`
	CORSAllowOrigins []string `mapstructure:"corsAllowOrigins"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type NotifyConfig struct {
	DriverWebhookURL string `mapstructure:"driverWebhookURL"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Notify NotifyConfig `mapstructure:"notify"`
}

// LoadConfig reads configuration from config.yaml and overrides it with
// environment variables. A missing file is fine; env vars alone work.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("notify.driverWebhookURL", "DRIVER_WEBHOOK_URL")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.dbName", "sit_logistics")
	viper.SetDefault("jwt.expiration", "24h")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
