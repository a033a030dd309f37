package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig holds the match tuning knobs.
type GameConfig struct {
	TerritorySize    int `mapstructure:"territory_size"`
	RoomCodeLength   int `mapstructure:"room_code_length"`
	FeedbackDelayMs  int `mapstructure:"feedback_delay_ms"`
	NextRoundDelayMs int `mapstructure:"next_round_delay_ms"`
}

func (g GameConfig) FeedbackDelay() time.Duration {
	return time.Duration(g.FeedbackDelayMs) * time.Millisecond
}

func (g GameConfig) NextRoundDelay() time.Duration {
	return time.Duration(g.NextRoundDelayMs) * time.Millisecond
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.metrics_address", ":9090")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.user", "postgres")
	viper.SetDefault("database.postgres.dbname", "stroopy")
	viper.SetDefault("game.territory_size", 14)
	viper.SetDefault("game.room_code_length", 6)
	viper.SetDefault("game.feedback_delay_ms", 2000)
	viper.SetDefault("game.next_round_delay_ms", 1000)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// Missing config file is fine, the defaults above cover a local run.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
