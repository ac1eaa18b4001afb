// Package config loads process-wide settings once at startup.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	DBDriver       string
	DatabaseURL    string
	AllowedOrigins string
	GatewayToken   string

	IdentitySyncURL   string
	IdentitySyncToken string
	IdentitySyncEvery time.Duration

	// ArtifactIndexRefresh > 0 enables the latitude-band index for the
	// artifact checker and rebuilds it on that period.
	ArtifactIndexRefresh time.Duration

	R2 R2Config

	Company CompanyDetails
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

// Enabled reports whether picture uploads can be served.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.AccessKeySecret != "" && c.Bucket != ""
}

type CompanyDetails struct {
	CompanyName string `json:"company_name"`
	Slogan      string `json:"slogan"`
	Contacts    string `json:"contacts"`
}

// Load reads .env (if any) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := &Config{
		Port:              getenv("PORT", "5200"),
		Env:               getenv("APP_ENV", "development"),
		DBDriver:          getenv("DB_DRIVER", "postgres"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GatewayToken:      os.Getenv("GATEWAY_TOKEN"),
		IdentitySyncURL:   os.Getenv("IDENTITY_SYNC_URL"),
		IdentitySyncToken: os.Getenv("IDENTITY_SYNC_TOKEN"),
		IdentitySyncEvery: duration("IDENTITY_SYNC_INTERVAL", time.Minute),

		ArtifactIndexRefresh: duration("ARTIFACT_INDEX_REFRESH", 0),

		R2: R2Config{
			AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("R2_BUCKET_NAME"),
			CDNBaseURL:      os.Getenv("CDN_BASE_URL"),
		},

		Company: CompanyDetails{
			CompanyName: os.Getenv("COMPANY_NAME"),
			Slogan:      os.Getenv("SLOGAN"),
			Contacts:    os.Getenv("CONTACTS"),
		},
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	list := strings.Split(origins, ",")
	for i, origin := range list {
		list[i] = strings.TrimSpace(origin)
	}
	cfg.AllowedOrigins = strings.Join(list, ",")

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
