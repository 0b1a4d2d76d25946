// Package datastoredb provides an implementation of the votescot
// GlobalSiloStringStorer backed by Google Cloud Datastore so a bot can run on
// serverless infrastructure without a persistent disk.
package datastoredb

import (
	"context"
	"strings"

	"cloud.google.com/go/datastore"
	"github.com/alexandre-normand/votescot/store"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// siloSeparator joins the silo name and the entry key to form the datastore
// key name, mirroring the leveldb encoding
const siloSeparator = "\x1f"

// DatastoreDB implements the store.GlobalSiloStringStorer interface on top of
// a datastore Kind named after the storer
type DatastoreDB struct {
	client *datastore.Client
	kind   string
}

// EntryValue is the entity stored for every key
type EntryValue struct {
	Value string `datastore:",noindex"`
}

// New returns a new DatastoreDB for the given name (mapped to the datastore
// entity Kind). It requires a gcloud project id along with client options
// carrying the credentials and validates connectivity before returning
func New(name string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	ctx := context.Background()
	client, err := datastore.NewClient(ctx, gcloudProjectID, gcloudClientOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create datastore client for project [%s]", gcloudProjectID)
	}

	dsdb = &DatastoreDB{client: client, kind: name}

	if err = dsdb.testConnectivity(ctx); err != nil {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// testConnectivity makes a lightweight get to validate connectivity and credentials
func (dsdb *DatastoreDB) testConnectivity(ctx context.Context) (err error) {
	_, err = dsdb.GetString("testConnectivity")

	if err != nil && err != store.ErrNotFound {
		return err
	}

	return nil
}

// Close closes the underlying datastore client
func (dsdb *DatastoreDB) Close() (err error) {
	return dsdb.client.Close()
}

// GetString retrieves the value associated to the key in the default silo
func (dsdb *DatastoreDB) GetString(key string) (value string, err error) {
	return dsdb.GetSiloString("", key)
}

// GetSiloString retrieves the value associated to the key in the given silo
func (dsdb *DatastoreDB) GetSiloString(silo string, key string) (value string, err error) {
	ctx := context.Background()

	var e EntryValue
	k := dsdb.entryKey(silo, key)
	if err := dsdb.client.Get(ctx, k, &e); err != nil {
		if err == datastore.ErrNoSuchEntity {
			return "", store.ErrNotFound
		}

		return "", errors.Wrapf(err, "failed to get [%s] from datastore", k.Name)
	}

	return e.Value, nil
}

// PutString adds or updates the value associated to the key in the default silo
func (dsdb *DatastoreDB) PutString(key string, value string) (err error) {
	return dsdb.PutSiloString("", key, value)
}

// PutSiloString adds or updates the value associated to the key in the given silo
func (dsdb *DatastoreDB) PutSiloString(silo string, key string, value string) (err error) {
	ctx := context.Background()
	k := dsdb.entryKey(silo, key)

	_, err = dsdb.client.Put(ctx, k, &EntryValue{Value: value})
	return errors.Wrapf(err, "failed to put [%s] to datastore", k.Name)
}

// DeleteString deletes the default silo entry for the given key
func (dsdb *DatastoreDB) DeleteString(key string) (err error) {
	return dsdb.DeleteSiloString("", key)
}

// DeleteSiloString deletes the silo entry for the given key
func (dsdb *DatastoreDB) DeleteSiloString(silo string, key string) (err error) {
	ctx := context.Background()

	return dsdb.client.Delete(ctx, dsdb.entryKey(silo, key))
}

// Scan returns all key/values from the default silo
func (dsdb *DatastoreDB) Scan() (entries map[string]string, err error) {
	return dsdb.ScanSilo("")
}

// ScanSilo returns all key/values of a silo
func (dsdb *DatastoreDB) ScanSilo(silo string) (entries map[string]string, err error) {
	all, err := dsdb.GlobalScan()
	if err != nil {
		return nil, err
	}

	entries = all[silo]
	if entries == nil {
		entries = map[string]string{}
	}

	return entries, nil
}

// GlobalScan returns all key/values keyed by silo. The rosters and score sets
// a bot accumulates are small enough that a full kind scan is fine
func (dsdb *DatastoreDB) GlobalScan() (entries map[string]map[string]string, err error) {
	entries = map[string]map[string]string{}

	ctx := context.Background()
	var vals []*EntryValue

	keys, err := dsdb.client.GetAll(ctx, datastore.NewQuery(dsdb.kind), &vals)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan datastore kind [%s]", dsdb.kind)
	}

	for i, k := range keys {
		silo, key := splitEntryName(k.Name)

		if _, ok := entries[silo]; !ok {
			entries[silo] = map[string]string{}
		}

		entries[silo][key] = vals[i].Value
	}

	return entries, nil
}

func (dsdb *DatastoreDB) entryKey(silo string, key string) (k *datastore.Key) {
	return datastore.NameKey(dsdb.kind, silo+siloSeparator+key, nil)
}

func splitEntryName(name string) (silo string, key string) {
	parts := strings.SplitN(name, siloSeparator, 2)
	if len(parts) < 2 {
		return "", parts[0]
	}

	return parts[0], parts[1]
}
