package database

import (
	"testing"

	"offerdesk/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutCache(t *testing.T) {
	db, err := New(config.Config{})
	require.NoError(t, err)

	assert.False(t, db.HasCache())
	assert.NoError(t, db.Close())
}

func TestNew_UnreachableCache(t *testing.T) {
	// Port 1 is reserved and never serves valkey.
	testConfig := config.Config{
		CacheAddress: "127.0.0.1",
		CachePort:    1,
	}

	_, err := New(testConfig)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize cache database")
}
