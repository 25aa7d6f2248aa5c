package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Store  StoreConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Engine EngineConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// StoreConfig selects the persistent key-value driver.
// Driver is one of "file", "redis" or "memory".
type StoreConfig struct {
	Driver string
	Path   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AuthConfig carries the seeded demo credential pair used by the stub
// authenticator. There is no real account backend behind it.
type AuthConfig struct {
	DemoEmail    string
	DemoPassword string
	LoginDelay   time.Duration
}

// EngineConfig tunes the stub analysis engine.
type EngineConfig struct {
	Delay         time.Duration
	LinkToHistory bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine, the environment alone can carry everything.
	_ = viper.ReadInConfig()

	setDefaults()

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	loginDelay, err := time.ParseDuration(viper.GetString("AUTH_LOGIN_DELAY"))
	if err != nil {
		loginDelay = 1500 * time.Millisecond
	}

	engineDelay, err := time.ParseDuration(viper.GetString("ENGINE_DELAY"))
	if err != nil {
		engineDelay = 3 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Store: StoreConfig{
			Driver: viper.GetString("STORE_DRIVER"),
			Path:   viper.GetString("STORE_PATH"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Auth: AuthConfig{
			DemoEmail:    viper.GetString("AUTH_DEMO_EMAIL"),
			DemoPassword: viper.GetString("AUTH_DEMO_PASSWORD"),
			LoginDelay:   loginDelay,
		},
		Engine: EngineConfig{
			Delay:         engineDelay,
			LinkToHistory: viper.GetBool("ENGINE_LINK_HISTORY"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "demo")
	viper.SetDefault("STORE_DRIVER", "file")
	viper.SetDefault("STORE_PATH", "./data")
	viper.SetDefault("AUTH_DEMO_EMAIL", "admin@colpoview.com")
	viper.SetDefault("AUTH_DEMO_PASSWORD", "123456")
	viper.SetDefault("JWT_SECRET", "colpoview-demo-secret")
}
