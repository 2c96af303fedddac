package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           string `mapstructure:"PORT"`
	FileUploadPath string `mapstructure:"FILE_UPLOAD_PATH"`
	MaxFileUpload  int64  `mapstructure:"MAX_FILE_UPLOAD"`
}

// Load reads configuration from a .env file and environment variables.
func Load() *Config {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("FILE_UPLOAD_PATH", "./public/uploads")
	viper.SetDefault("MAX_FILE_UPLOAD", 1000000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return cfg
}
