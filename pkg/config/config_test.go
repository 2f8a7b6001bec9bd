package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/login")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "login", cfg.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "login-backend", cfg.JWTIssuer)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "redis")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: DriverMongo, MongoURI: "mongodb://x", JWTSecret: "s", JWTTTL: time.Hour}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badTTL := base
	badTTL.JWTTTL = 0
	assert.Error(t, badTTL.Validate())

	withPath := base
	withPath.FrontendURL = "https://example.com/app"
	assert.NoError(t, withPath.Validate())

	bareHost := base
	bareHost.FrontendURL = "example.com"
	assert.Error(t, bareHost.Validate())

	badOrigin := base
	badOrigin.AllowedOrigins = []string{"https://ok.example", "ftp://files.example"}
	assert.Error(t, badOrigin.Validate())
}

func TestOrigins(t *testing.T) {
	cfg := Config{
		FrontendURL:    "https://app.example/",
		AllowedOrigins: []string{" https://other.example ", "", "http://localhost:3000"},
	}
	assert.Equal(t, []string{
		"http://localhost:3000",
		"https://sms-gateway-demo.onrender.com",
		"https://app.example",
		"https://other.example",
	}, cfg.Origins())
}

func TestOrigins_StripsPath(t *testing.T) {
	cfg := Config{
		FrontendURL:    "https://Example.com/app?x=1#top",
		AllowedOrigins: []string{"http://localhost:5173/login", "not a url"},
	}
	assert.Equal(t, []string{
		"http://localhost:3000",
		"https://sms-gateway-demo.onrender.com",
		"https://example.com",
		"http://localhost:5173",
	}, cfg.Origins())
}

func TestSlogLevel_Fallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warn"}.SlogLevel())
}
