package config_test

import (
	"testing"

	"github.com/alexandre-normand/votescot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := config.NewViperWithDefaults()

	assert.Equal(t, false, v.GetBool(config.DebugKey))
	assert.Equal(t, "leveldb", v.GetString(config.BrainKey))
	assert.Equal(t, "~/.votescot", v.GetString(config.StoragePathKey))
	assert.Equal(t, "localhost:6379", v.GetString(config.RedisAddressKey))
	assert.Equal(t, 24, v.GetInt(config.RosterRefreshIntervalHoursKey))
	assert.Equal(t, 100, v.GetInt(config.LibrarianCacheSizeKey))
}

func TestGetTimeLocationWithDefault(t *testing.T) {
	v := config.NewViperWithDefaults()

	timeLoc, err := config.GetTimeLocation(v)
	require.NoError(t, err)
	assert.NotNil(t, timeLoc)
}

func TestGetTimeLocationWithTimezoneID(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.TimeLocationKey, "America/Los_Angeles")

	timeLoc, err := config.GetTimeLocation(v)
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", timeLoc.String())
}

func TestGetTimeLocationWithInvalidID(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.TimeLocationKey, "invalid timezone")

	_, err := config.GetTimeLocation(v)
	assert.Error(t, err)
}
