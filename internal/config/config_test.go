package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOSMDB, cfg.Source.Provider)
	assert.Equal(t, 150.0, cfg.Pipeline.MergeLimitMeters)
	assert.Equal(t, 0.85, cfg.Quiz.PassThreshold)
	assert.Equal(t, time.Hour, cfg.Cache.ProgressTTL)
	assert.Equal(t, 5*time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, cfg.Database.Host, cfg.OSMDB.Host)
	assert.Equal(t, "osm", cfg.OSMDB.DBName)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SOURCE_PROVIDER", " Overpass ")
	t.Setenv("MERGE_LIMIT_METERS", "120")
	t.Setenv("OSM_DB_HOST", "osm.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOverpass, cfg.Source.Provider)
	assert.Equal(t, 120.0, cfg.Pipeline.MergeLimitMeters)
	assert.Equal(t, "osm.internal", cfg.OSMDB.Host)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SOURCE_PROVIDER", "shapefile")

	_, err := Load()
	assert.ErrorContains(t, err, "SOURCE_PROVIDER")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "geoquiz", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=geoquiz sslmode=disable", c.DSN())
}
