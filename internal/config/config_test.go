package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.Invites.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Invites.StaleAfter)
	assert.Equal(t, 5*time.Second, cfg.Push.Timeout)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.False(t, cfg.Push.Enabled())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsStaleBoundBelowTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("INVITE_CACHE_TTL", "5m")
	t.Setenv("INVITE_CACHE_STALE_AFTER", "1m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVITE_CACHE_STALE_AFTER")
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())
}
