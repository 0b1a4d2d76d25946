// Package config holds the configuration keys and defaults of a votescot
// instance along with helpers to interpret them
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// TokenKey holds the slack token, string value
	TokenKey = "token"

	// DebugKey enables debug logging, bool value
	DebugKey = "debug"

	// BrainKey selects the persistence backend, one of "leveldb", "redis" or
	// "datastore"
	BrainKey = "brain"

	// StoragePathKey is the directory holding the leveldb database ('~' is
	// expanded), string value
	StoragePathKey = "storagePath"

	// RedisAddressKey is the host:port of the redis server backing the brain,
	// string value
	RedisAddressKey = "redisAddress"

	// GCloudProjectIDKey is the gcloud project id of the datastore backing
	// the brain, string value
	GCloudProjectIDKey = "gcloudProjectId"

	// TimeLocationKey holds the time location of the roster refresh
	// scheduler, string value (e.g. "America/Los_Angeles" or "Local")
	TimeLocationKey = "timeLocation"

	// RosterRefreshIntervalHoursKey is the interval between scheduled roster
	// re-syncs, int value, 0 disables scheduling
	RosterRefreshIntervalHoursKey = "rosterRefreshIntervalHours"

	// LibrariesIOAPIKeyKey holds the libraries.io api key used by the
	// librarian, string value
	LibrariesIOAPIKeyKey = "librariesIoApiKey"

	// LibrarianCacheSizeKey is the number of search results kept in the
	// librarian's cache, int value
	LibrarianCacheSizeKey = "librarianCacheSize"
)

const (
	timeLocationLocal = "Local"
)

// NewViperWithDefaults creates a new viper instance with the default values
// set for all optional keys
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	v.SetDefault(DebugKey, false)
	v.SetDefault(BrainKey, "leveldb")
	v.SetDefault(StoragePathKey, "~/.votescot")
	v.SetDefault(RedisAddressKey, "localhost:6379")
	v.SetDefault(TimeLocationKey, timeLocationLocal)
	v.SetDefault(RosterRefreshIntervalHoursKey, 24)
	v.SetDefault(LibrarianCacheSizeKey, 100)

	return v
}

// GetTimeLocation reads the TimeLocationKey value and loads the matching
// time.Location
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	locationID := cast.ToString(v.Get(TimeLocationKey))
	if locationID == "" {
		locationID = timeLocationLocal
	}

	timeLoc, err = time.LoadLocation(locationID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load time location [%s]", locationID)
	}

	return timeLoc, nil
}
