package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
	assert.Equal(t, 43200, cfg.Middleware.CORS.MaxAge)
	assert.False(t, cfg.IsProd())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server":{"address":":9000"},"env":"production","database":{"driver":"mysql","port":3307}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("APP_CONFIG", path)
	t.Setenv("DB_PORT", "3308")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3308, cfg.Database.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Middleware.CORS.AllowOrigins)
}

func TestLoad_CORSMaxAgeIsSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"middleware":{"cors":{"maxAge":600}}}`), 0o644))
	t.Setenv("APP_CONFIG", path)

	assert.Equal(t, 600, Load().Middleware.CORS.MaxAge)

	t.Setenv("CORS_MAX_AGE", "120")
	assert.Equal(t, 120, Load().Middleware.CORS.MaxAge)
}

func TestDefault_IsACopy(t *testing.T) {
	a := Default()
	a.Middleware.CORS.AllowOrigins[0] = "https://changed.example.com"
	a.Server.Address = ":1"

	b := Default()
	assert.Equal(t, "http://localhost:3000", b.Middleware.CORS.AllowOrigins[0])
	assert.Equal(t, ":8080", b.Server.Address)
}

func TestDSN(t *testing.T) {
	cfg := Default()

	cfg.Database.Driver = DriverMySQL
	cfg.Database.Username, cfg.Database.Password = "root", "secret"
	cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName = "db", 3306, "app"
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "root:secret@tcp(db:3306)/app?charset=utf8mb4&parseTime=True&loc=Local", dsn)

	cfg.Database.UseUnixSock = true
	cfg.Database.Host = "/var/run/mysqld/mysqld.sock"
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "root:secret@unix(/var/run/mysqld/mysqld.sock)/app?charset=utf8mb4&parseTime=True&loc=Local", dsn)

	cfg.Database.Driver = DriverPostgres
	cfg.Database.Host, cfg.Database.Port, cfg.Database.SSLMode = "pg", 5432, "disable"
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=pg port=5432 user=root password=secret dbname=app sslmode=disable TimeZone=UTC", dsn)

	cfg.Database.Driver = DriverSQLite
	cfg.Database.Path = ""
	_, err = cfg.DSN()
	assert.Error(t, err)

	cfg.Database.Driver = "oracle"
	_, err = cfg.DSN()
	assert.Error(t, err)
}

func TestInitDB_SQLite(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = DriverSQLite
	cfg.Database.Path = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.Database.LogLevel = "silent"

	db, err := cfg.InitDB()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, sqlDB.Ping())
}

func TestHlogLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, hlog.LevelInfo, cfg.HlogLevel())
	cfg.LogLevel = "debug"
	assert.Equal(t, hlog.LevelDebug, cfg.HlogLevel())
	cfg.LogLevel = "error"
	assert.Equal(t, hlog.LevelError, cfg.HlogLevel())
}

func TestString_MasksPassword(t *testing.T) {
	cfg := Default()
	cfg.Database.Password = "super-secret"
	assert.NotContains(t, cfg.String(), "super-secret")
}
