package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, "branches.xlsx", cfg.Transfer.ExportFileName)
	assert.Equal(t, "Branches", cfg.Transfer.ExportSheetName)
	assert.Equal(t, time.Duration(0), cfg.Transfer.ImportReadTimeout)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TABLE_PAGE_SIZE", "25")
	t.Setenv("IMPORT_READ_TIMEOUT", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.tj, ,http://b.tj")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Table.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Transfer.ImportReadTimeout)
	assert.Equal(t, []string{"http://a.tj", "http://b.tj"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TABLE_PAGE_SIZE", "-5")
	t.Setenv("IMPORT_READ_TIMEOUT", "скоро")

	cfg := New()

	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, time.Duration(0), cfg.Transfer.ImportReadTimeout)
}
