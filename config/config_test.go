package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "DB_DRIVER", "GATEWAY_TOKEN", "IDENTITY_SYNC_URL", "ARTIFACT_INDEX_REFRESH", "CLOUDFLARE_ACCOUNT_ID", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "5200", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Empty(t, cfg.GatewayToken)
	assert.Zero(t, cfg.ArtifactIndexRefresh)
	assert.Equal(t, time.Minute, cfg.IdentitySyncEvery)
	assert.False(t, cfg.R2.Enabled())
	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "runs.db")
	t.Setenv("ARTIFACT_INDEX_REFRESH", "5m")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_ACCESS_KEY_SECRET", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("COMPANY_NAME", "Бегом")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "runs.db", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.ArtifactIndexRefresh)
	assert.Equal(t, "https://a.example,https://b.example", cfg.AllowedOrigins)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "Бегом", cfg.Company.CompanyName)
}
