package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"1h30m"`)))
	assert.Equal(t, 90*time.Minute, d.Duration)

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, d.Duration)

	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`"not a duration"`)))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":8080",
		"mode": "development",
		"postgres": {
			"host": "localhost",
			"port": 5432,
			"user": "sweeper",
			"password": "secret",
			"db_name": "sweeper"
		},
		"jwt": { "token_lifetime": "24h" }
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.Development())
	assert.Equal(t, 24*time.Hour, cfg.Jwt.TokenLifetime.Duration)
	assert.Contains(t, cfg.Postgres.DbUrl(), "host=localhost")
	assert.Contains(t, cfg.Postgres.MigrateUrl(), "postgres://sweeper:secret@")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.json")
	assert.Error(t, err)
}
