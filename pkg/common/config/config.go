package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type ServerConfig struct {
	Address string `json:"address"`
}

type SecurityConfig struct {
	MaxBodySize int64 `json:"maxBodySize"` // bytes
}

type CORSConfig struct {
	AllowOrigins     []string `json:"allowOrigins"`
	AllowMethods     []string `json:"allowMethods"`
	AllowHeaders     []string `json:"allowHeaders"`
	ExposeHeaders    []string `json:"exposeHeaders"`
	AllowCredentials bool     `json:"allowCredentials"`
	MaxAge           int      `json:"maxAge"` // seconds
	TrustedDomains   []string `json:"trustedDomains"`
}

type MiddlewareConfig struct {
	Security SecurityConfig `json:"security"`
	CORS     CORSConfig     `json:"cors"`
}

type PasswordConfig struct {
	BcryptCost int `json:"bcryptCost"`
}

type DatabaseConfig struct {
	Driver      string `json:"driver"`      // mysql | postgres | sqlite
	Host        string `json:"host"`        // host, or socket path when UseUnixSock is set
	Port        int    `json:"port"`        //
	Username    string `json:"username"`    //
	Password    string `json:"password"`    //
	DBName      string `json:"dbname"`      //
	SSLMode     string `json:"sslmode"`     // postgres only
	Path        string `json:"path"`        // sqlite file or DSN
	UseUnixSock bool   `json:"useUnixSock"` // mysql only
	MinPoolSize int    `json:"minPoolSize"` // idle connections kept
	MaxPoolSize int    `json:"maxPoolSize"` // open connections cap
	LogLevel    string `json:"logLevel"`    // GORM log level
}

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Middleware MiddlewareConfig `json:"middleware"`
	Password   PasswordConfig   `json:"password"`
	Env        string           `json:"env"`
	LogLevel   string           `json:"logLevel"`
}

var defaultConfig = Config{
	Server: ServerConfig{
		Address: ":8080",
	},
	Database: DatabaseConfig{
		Driver:      DriverPostgres,
		Host:        "localhost",
		Port:        5432,
		Username:    "postgres",
		Password:    "postgres",
		DBName:      "users",
		SSLMode:     "disable",
		Path:        "users.db",
		UseUnixSock: false,
		MinPoolSize: 5,
		MaxPoolSize: 50,
		LogLevel:    "warn",
	},
	Middleware: MiddlewareConfig{
		Security: SecurityConfig{
			MaxBodySize: 1 << 20, // 1MB
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "Location", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           int((12 * time.Hour).Seconds()),
		},
	},
	Password: PasswordConfig{
		BcryptCost: 10,
	},
	Env:      "development",
	LogLevel: "info",
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaultConfig
	c.Middleware.CORS.AllowOrigins = append([]string(nil), defaultConfig.Middleware.CORS.AllowOrigins...)
	c.Middleware.CORS.AllowMethods = append([]string(nil), defaultConfig.Middleware.CORS.AllowMethods...)
	c.Middleware.CORS.AllowHeaders = append([]string(nil), defaultConfig.Middleware.CORS.AllowHeaders...)
	c.Middleware.CORS.ExposeHeaders = append([]string(nil), defaultConfig.Middleware.CORS.ExposeHeaders...)
	return &c
}

// IsProd reports whether the service runs in production.
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// Load builds the configuration (priority: env > config file > defaults).
// A .env file in the working directory is applied to the environment first.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		hlog.Infof("loaded .env file")
	}

	config := Default()

	if configPath := getConfigPath(); configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			hlog.Warnf("Failed to load config file: %v", err)
		}
	}

	loadFromEnv(config)

	return config
}

// getConfigPath returns the first config file found
func getConfigPath() string {
	if path := os.Getenv("APP_CONFIG"); path != "" {
		return path
	}

	searchPaths := []string{
		"./config.json",
		"../config.json",
		"/etc/user-api/config.json",
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, config)
}

func loadFromEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.Server.Address = v
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		config.Env = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Middleware.Security.MaxBodySize = size
		}
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		config.Middleware.CORS.AllowOrigins = splitEnvList(v)
	}

	if v := os.Getenv("CORS_MAX_AGE"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			config.Middleware.CORS.MaxAge = secs
		} else {
			hlog.Warnf("Invalid CORS_MAX_AGE: %v", err)
		}
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			config.Password.BcryptCost = cost
		} else {
			hlog.Warnf("Invalid BCRYPT_COST: %v", err)
		}
	}

	// database
	if v := os.Getenv("DB_DRIVER"); v != "" {
		config.Database.Driver = strings.ToLower(v)
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.Host = v
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Database.Port = port
		}
	}

	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.Username = v
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}

	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.DBName = v
	}

	if v := os.Getenv("DB_SSLMODE"); v != "" {
		config.Database.SSLMode = v
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		config.Database.Path = v
	}

	if v := os.Getenv("DB_SOCKET"); v != "" {
		config.Database.UseUnixSock = parseBool(v)
	}

	if v := os.Getenv("DB_MIN_POOL"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			config.Database.MinPoolSize = size
		}
	}

	if v := os.Getenv("DB_MAX_POOL"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			config.Database.MaxPoolSize = size
		}
	}

	if v := os.Getenv("DB_LOG_LEVEL"); v != "" {
		config.Database.LogLevel = strings.ToLower(v)
	}
}

// splitEnvList splits a comma separated env value
func splitEnvList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(value string) bool {
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

// HlogLevel maps LogLevel to the hertz logger level.
func (c *Config) HlogLevel() hlog.Level {
	switch c.LogLevel {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}

// DSN builds the driver specific connection string.
func (c *Config) DSN() (string, error) {
	d := c.Database
	switch d.Driver {
	case DriverMySQL:
		charsetParam := "charset=utf8mb4&parseTime=True&loc=Local"
		if d.UseUnixSock {
			return fmt.Sprintf("%s:%s@unix(%s)/%s?%s",
				d.Username, d.Password, d.Host, d.DBName, charsetParam), nil
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			d.Username, d.Password, d.Host, d.Port, d.DBName, charsetParam), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.DBName, d.SSLMode), nil
	case DriverSQLite:
		if d.Path == "" {
			return "", fmt.Errorf("sqlite driver requires database.path")
		}
		return d.Path, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

func (c *Config) dialector() (gorm.Dialector, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}
	switch c.Database.Driver {
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

func (c *Config) InitDB() (*gorm.DB, error) {
	dialector, err := c.dialector()
	if err != nil {
		return nil, err
	}

	// unique violations surface as gorm.ErrDuplicatedKey
	gormConfig := &gorm.Config{TranslateError: true}
	switch c.Database.LogLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	case "warn":
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(c.Database.MinPoolSize)
	sqlDB.SetMaxOpenConns(c.Database.MaxPoolSize)

	return db, nil
}

// String masks credentials.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Server: %s, DB: %s@%s:%d/%s, DBPassword: ***}",
		c.Env, c.Server.Address, c.Database.Driver, c.Database.Host, c.Database.Port, c.Database.DBName)
}
