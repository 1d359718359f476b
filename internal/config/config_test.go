package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, _ := Load()

	assert.Equal(t, "salesdesk-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 30*time.Minute, cfg.SaleForm.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.SaleForm.CleanupInterval)
	assert.False(t, cfg.SaleForm.ResetOnCancel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SALE_FORM_SESSION_TTL_MINUTES", "10")
	t.Setenv("SALE_FORM_RESET_ON_CANCEL", "true")

	cfg, _ := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.SaleForm.SessionTTL)
	assert.True(t, cfg.SaleForm.ResetOnCancel)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
