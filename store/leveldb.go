package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// siloSeparator joins the silo name and the entry key to form the physical
// leveldb key. The unit separator can't appear in slack identifiers or silo
// names so prefix scans stay unambiguous.
const siloSeparator = "\x1f"

// LevelDB is a GlobalSiloStringStorer backed by a local leveldb database
type LevelDB struct {
	Name     string
	database *leveldb.DB
}

// NewLevelDB opens (and creates, if necessary) a leveldb database stored
// under storagePath/name
func NewLevelDB(name string, storagePath string) (ldb *LevelDB, err error) {
	// Expand '~' as the full home directory path if appropriate
	path, err := homedir.Expand(storagePath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(path, name)
	db, err := leveldb.OpenFile(fullPath, nil)

	if _, ok := err.(*leveldberrors.ErrCorrupted); ok {
		return nil, errors.Wrap(err, fmt.Sprintf("leveldb corrupted. Consider deleting [%s] and restarting if you don't mind losing data", fullPath))
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open file with path [%s]", fullPath))
	}

	return &LevelDB{Name: name, database: db}, nil
}

// Close closes the underlying leveldb database
func (ldb *LevelDB) Close() (err error) {
	return ldb.database.Close()
}

// GetString retrieves the value associated to the key in the default silo
func (ldb *LevelDB) GetString(key string) (value string, err error) {
	return ldb.GetSiloString("", key)
}

// GetSiloString retrieves the value associated to the key in the given silo
func (ldb *LevelDB) GetSiloString(silo string, key string) (value string, err error) {
	data, err := ldb.database.Get(siloKey(silo, key), nil)
	if err == leveldb.ErrNotFound {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}

	return string(data), nil
}

// PutString adds or updates the value associated to the key in the default silo
func (ldb *LevelDB) PutString(key string, value string) (err error) {
	return ldb.PutSiloString("", key, value)
}

// PutSiloString adds or updates the value associated to the key in the given silo
func (ldb *LevelDB) PutSiloString(silo string, key string, value string) (err error) {
	return ldb.database.Put(siloKey(silo, key), []byte(value), nil)
}

// DeleteString deletes the default silo entry for the given key
func (ldb *LevelDB) DeleteString(key string) (err error) {
	return ldb.DeleteSiloString("", key)
}

// DeleteSiloString deletes the silo entry for the given key
func (ldb *LevelDB) DeleteSiloString(silo string, key string) (err error) {
	return ldb.database.Delete(siloKey(silo, key), nil)
}

// Scan returns all key/values from the default silo
func (ldb *LevelDB) Scan() (entries map[string]string, err error) {
	return ldb.ScanSilo("")
}

// ScanSilo returns all key/values of a silo
func (ldb *LevelDB) ScanSilo(silo string) (entries map[string]string, err error) {
	entries = map[string]string{}

	iter := ldb.database.NewIterator(util.BytesPrefix([]byte(silo+siloSeparator)), nil)
	for iter.Next() {
		_, key := splitSiloKey(iter.Key())
		entries[key] = string(iter.Value())
	}

	iter.Release()
	err = iter.Error()

	return entries, err
}

// GlobalScan returns all key/values keyed by silo
func (ldb *LevelDB) GlobalScan() (entries map[string]map[string]string, err error) {
	entries = map[string]map[string]string{}

	iter := ldb.database.NewIterator(nil, nil)
	for iter.Next() {
		silo, key := splitSiloKey(iter.Key())

		if _, ok := entries[silo]; !ok {
			entries[silo] = map[string]string{}
		}

		entries[silo][key] = string(iter.Value())
	}

	iter.Release()
	err = iter.Error()

	return entries, err
}

func siloKey(silo string, key string) []byte {
	return []byte(silo + siloSeparator + key)
}

func splitSiloKey(physicalKey []byte) (silo string, key string) {
	parts := strings.SplitN(string(physicalKey), siloSeparator, 2)
	if len(parts) < 2 {
		return "", parts[0]
	}

	return parts[0], parts[1]
}
