package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/DanRulev/flashbot.git/pkg/validator"
	playground "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig     `mapstructure:"app" validate:"required"`
	BotToken string        `mapstructure:"bot_token"`
	Env      string        `mapstructure:"env" validate:"oneof=development production staging"`
	HTTP     HTTPConfig    `mapstructure:"http"`
	Storage  StorageConfig `mapstructure:"storage"`
	Cache    CacheConfig   `mapstructure:"cache"`
	Weather  WeatherConfig `mapstructure:"weather"`
}

type AppConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type StorageConfig struct {
	Driver string   `mapstructure:"driver" validate:"oneof=memory postgres sqlite"`
	DB     DBConfig `mapstructure:"db"`
	SQLite string   `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

type DBConfig struct {
	Conn DBConn `mapstructure:"conn"`
	Cfg  DBCfg  `mapstructure:"cfg"`
}

type DBConn struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSL      string `mapstructure:"ssl" validate:"omitempty,oneof=disable require verify-full"`
}

type DBCfg struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=1,max=1000"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0,max=100"`
	ConnMaxLifeTime time.Duration `mapstructure:"conn_max_life_time" validate:"min=0"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"min=0"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver" validate:"oneof=memory redis"`
	TTL    time.Duration `mapstructure:"ttl" validate:"min=0"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0,max=15"`
}

type WeatherConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	APIKey  string        `mapstructure:"api_key"`
	Units   string        `mapstructure:"units" validate:"oneof=standard metric imperial"`
	Lang    string        `mapstructure:"lang"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1"`
}

func init() {
	validator.RegisterStructValidation(storageValidation, StorageConfig{})
	validator.RegisterStructValidation(cacheValidation, CacheConfig{})
}

// storageValidation is required_if across nesting levels: the tag alone
// cannot see Driver from inside DBConn.
func storageValidation(sl playground.StructLevel) {
	s := sl.Current().Interface().(StorageConfig)
	if s.Driver != "postgres" {
		return
	}
	if s.DB.Conn.Host == "" {
		sl.ReportError(s.DB.Conn.Host, "Host", "Host", "required_if", "Driver postgres")
	}
	if s.DB.Conn.Name == "" {
		sl.ReportError(s.DB.Conn.Name, "Name", "Name", "required_if", "Driver postgres")
	}
}

func cacheValidation(sl playground.StructLevel) {
	c := sl.Current().Interface().(CacheConfig)
	if c.Driver == "redis" && c.Redis.Addr == "" {
		sl.ReportError(c.Redis.Addr, "Addr", "Addr", "required_if", "Driver redis")
	}
}

// Validate checks what only the bot front end needs, the rest is checked on
// load.
func (c *Config) Validate(bot bool) error {
	if bot && c.BotToken == "" {
		return errors.New("bot_token is required to run the telegram bot")
	}
	return nil
}

func Init() (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	v := viper.New()

	v.AutomaticEnv()

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}

	v.AddConfigPath("configs")
	v.SetConfigName(configName)

	setDefaults(v)

	binds := map[string]string{
		"bot_token":                "BOT_TOKEN",
		"env":                      "ENV",
		"http.addr":                "HTTP_ADDR",
		"storage.driver":           "STORAGE_DRIVER",
		"storage.sqlite_path":      "SQLITE_PATH",
		"storage.db.conn.host":     "DB_HOST",
		"storage.db.conn.port":     "DB_PORT",
		"storage.db.conn.user":     "DB_USER",
		"storage.db.conn.password": "DB_PASSWORD",
		"storage.db.conn.name":     "DB_NAME",
		"storage.db.conn.ssl":      "DB_SSL",
		"cache.driver":             "CACHE_DRIVER",
		"cache.redis.addr":         "REDIS_ADDR",
		"cache.redis.password":     "REDIS_PASSWORD",
		"weather.api_key":          "WEATHER_API_KEY",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("app.timeout", 10*time.Second)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.sqlite_path", "flashbot.db")
	v.SetDefault("storage.db.cfg.max_open_conns", 10)
	v.SetDefault("storage.db.cfg.max_idle_conns", 5)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("weather.base_url", "https://api.openweathermap.org")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.lang", "uk")
	v.SetDefault("weather.timeout", 10*time.Second)
}
