package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vsinha/ropfeed/pkg/application/services/replenishment"
	"github.com/vsinha/ropfeed/pkg/domain/services"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Catalog   DatabaseConfig  `mapstructure:"catalog"`
	Logo      LogoConfig      `mapstructure:"logo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
	UserNo    int             `mapstructure:"user_no"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// NodeID seeds the snowflake ids of the fiche journal (0-1023)
	NodeID int64 `mapstructure:"node_id"`
}

// DatabaseConfig describes one SQL connection. Driver is "postgres" or "sqlserver".
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN renders the connection string for the configured driver
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlserver" {
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			RawQuery: url.Values{"database": {c.DBName}}.Encode(),
		}
		return u.String()
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogoConfig configures the ERP REST API the demand fiche is posted to
type LogoConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port, or "" when Redis is not configured
func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WarehouseConfig holds the source warehouse index per card type
type WarehouseConfig struct {
	Finished     int `mapstructure:"finished"`
	SemiFinished int `mapstructure:"semi_finished"`
	RawMaterial  int `mapstructure:"raw_material"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Pipeline resolves the settings the replenishment service consumes
func (c *Config) Pipeline() replenishment.Config {
	return replenishment.Config{
		Warehouses: services.WarehouseIndices{
			Finished:     c.Warehouse.Finished,
			SemiFinished: c.Warehouse.SemiFinished,
			RawMaterial:  c.Warehouse.RawMaterial,
		},
		UserNo: c.UserNo,
	}
}

// Load reads config.yaml from ./configs or the working directory, then
// applies environment overrides
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile reads the given config file, then applies environment overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if !isConfigNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file, environment and defaults only
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func isConfigNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.node_id", 1)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("catalog.driver", "sqlserver")
	v.SetDefault("catalog.port", 1433)
	v.SetDefault("catalog.max_open_conns", 10)
	v.SetDefault("catalog.max_idle_conns", 5)
	v.SetDefault("catalog.conn_max_lifetime", time.Hour)

	v.SetDefault("logo.timeout", 60*time.Second)
	v.SetDefault("redis.port", 6379)

	v.SetDefault("warehouse.finished", 3)
	v.SetDefault("warehouse.semi_finished", 2)
	v.SetDefault("warehouse.raw_material", 1)
	v.SetDefault("user_no", 1)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.node_id", "NODE_ID")

	// Parameter store
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")

	// Catalog
	v.BindEnv("catalog.driver", "CATALOG_DRIVER")
	v.BindEnv("catalog.host", "CATALOG_HOST")
	v.BindEnv("catalog.port", "CATALOG_PORT")
	v.BindEnv("catalog.user", "CATALOG_USER")
	v.BindEnv("catalog.password", "CATALOG_PASSWORD")
	v.BindEnv("catalog.dbname", "CATALOG_NAME")

	// Logo REST
	v.BindEnv("logo.base_url", "LOGO_BASE_URL")
	v.BindEnv("logo.username", "LOGO_USERNAME")
	v.BindEnv("logo.password", "LOGO_PASSWORD")
	v.BindEnv("logo.client_id", "LOGO_CLIENT_ID")
	v.BindEnv("logo.client_secret", "LOGO_CLIENT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Warehouses and acting user
	v.BindEnv("warehouse.finished", "MM_AMBAR")
	v.BindEnv("warehouse.semi_finished", "YM_AMBAR")
	v.BindEnv("warehouse.raw_material", "HM_AMBAR")
	v.BindEnv("user_no", "LOGO_USER_NUMBER")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")
}
