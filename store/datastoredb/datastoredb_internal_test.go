package datastoredb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryKeyEncoding(t *testing.T) {
	dsdb := &DatastoreDB{kind: "votescot"}

	k := dsdb.entryKey("users", "U1")
	assert.Equal(t, "votescot", k.Kind)
	assert.Equal(t, "users\x1fU1", k.Name)
}

func TestSplitEntryName(t *testing.T) {
	silo, key := splitEntryName("users\x1fU1")
	assert.Equal(t, "users", silo)
	assert.Equal(t, "U1", key)

	silo, key = splitEntryName("\x1ftestConnectivity")
	assert.Equal(t, "", silo)
	assert.Equal(t, "testConnectivity", key)

	silo, key = splitEntryName("legacyKey")
	assert.Equal(t, "", silo)
	assert.Equal(t, "legacyKey", key)
}
