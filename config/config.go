// config/config.go
package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Redis         RedisConfiguration
	Database      DatabaseConfiguration
	Elasticsearch ElasticsearchConfiguration
	Expiry        ExpiryConfiguration
	Log           LogConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port      string
	RateLimit float64
	RateBurst int
}

// RedisConfiguration stores data for Redis connection. URL wins over Addr when set.
type RedisConfiguration struct {
	URL       string
	Addr      string
	Password  string
	DB        int
	ScanCount int64
}

// DatabaseConfiguration stores the MySQL DSN of the subscriber table
type DatabaseConfiguration struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// ElasticsearchConfiguration stores data for the audit trail. Empty URL disables it.
type ElasticsearchConfiguration struct {
	URL   string
	Index string
}

// ExpiryConfiguration drives the reconciliation pass
type ExpiryConfiguration struct {
	Sentinel           string
	Schedule           string
	RecheckBeforeApply bool
	ApplyConcurrency   int
	Location           string
}

type LogConfiguration struct {
	Dir string
}

var config *Configuration

func InitConfig() error {
	// A missing .env is the normal case outside local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using process environment.")
	}

	viper.AddConfigPath("config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Deployment environments still export the plain names
	_ = viper.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = viper.BindEnv("redis.url", "REDIS_URL")
	_ = viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", "3000")
	viper.SetDefault("server.rateLimit", 5.0)
	viper.SetDefault("server.rateBurst", 10)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.scanCount", 100)
	viper.SetDefault("database.url", "root:root@tcp(localhost:3306)/subscriptions?parseTime=true")
	viper.SetDefault("database.maxOpenConns", 10)
	viper.SetDefault("database.maxIdleConns", 5)
	viper.SetDefault("elasticsearch.url", "")
	viper.SetDefault("elasticsearch.index", "subscription-expirations")
	viper.SetDefault("expiry.sentinel", "E")
	viper.SetDefault("expiry.schedule", "@every 1m")
	viper.SetDefault("expiry.recheckBeforeApply", true)
	viper.SetDefault("expiry.applyConcurrency", 16)
	viper.SetDefault("expiry.location", "Local")
	viper.SetDefault("log.dir", "logging")
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}
