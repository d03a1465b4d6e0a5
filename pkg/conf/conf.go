package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	PostgresDSN    string   `mapstructure:"postgres_dsn"`
	RedisAddr      string   `mapstructure:"redis_addr"`
	RedisPassword  string   `mapstructure:"redis_password"`
	RedisDB        int      `mapstructure:"redis_db"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads conf.yaml from path. A missing file is not an error; defaults
// apply.
func Load(path string) (*Config, error) {
	viper.SetConfigName("conf")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("postgres_dsn", "host=localhost user=postgres password=postgres dbname=sybsa port=5432 sslmode=disable")
	viper.SetDefault("redis_addr", "")
	viper.SetDefault("allowed_origins", []string{"http://localhost:5173"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
