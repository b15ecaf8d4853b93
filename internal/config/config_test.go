package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "mongo", cfg.DatastoreType)
	require.Equal(t, "0 * * * *", cfg.SweepSpec)
	require.Equal(t, "Asia/Tokyo", cfg.SweepTimezone)
	require.Equal(t, 24*time.Hour, cfg.SweepWindow)
	require.True(t, cfg.DatastoreMigrateAtStart)
}

func TestSweepLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.SweepLocation()
	require.NoError(t, err)
	require.Equal(t, "Asia/Tokyo", loc.String())

	cfg.SweepTimezone = "Not/AZone"
	_, err = cfg.SweepLocation()
	require.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	ctx := WithContext(context.Background(), &cfg)
	require.Same(t, &cfg, FromContext(ctx))
	require.Nil(t, FromContext(context.Background()))
}
