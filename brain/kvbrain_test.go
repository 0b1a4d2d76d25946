package brain_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alexandre-normand/votescot/brain"
	"github.com/alexandre-normand/votescot/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStorer is an in-memory GlobalSiloStringStorer for tests
type mapStorer struct {
	mutex sync.Mutex
	data  map[string]map[string]string
}

func newMapStorer() (ms *mapStorer) {
	return &mapStorer{data: map[string]map[string]string{}}
}

func (ms *mapStorer) GetString(key string) (value string, err error) {
	return ms.GetSiloString("", key)
}

func (ms *mapStorer) GetSiloString(silo string, key string) (value string, err error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	v, ok := ms.data[silo][key]
	if !ok {
		return "", store.ErrNotFound
	}

	return v, nil
}

func (ms *mapStorer) PutString(key string, value string) (err error) {
	return ms.PutSiloString("", key, value)
}

func (ms *mapStorer) PutSiloString(silo string, key string, value string) (err error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if _, ok := ms.data[silo]; !ok {
		ms.data[silo] = map[string]string{}
	}

	ms.data[silo][key] = value
	return nil
}

func (ms *mapStorer) DeleteString(key string) (err error) {
	return ms.DeleteSiloString("", key)
}

func (ms *mapStorer) DeleteSiloString(silo string, key string) (err error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	delete(ms.data[silo], key)
	return nil
}

func (ms *mapStorer) Scan() (entries map[string]string, err error) {
	return ms.ScanSilo("")
}

func (ms *mapStorer) ScanSilo(silo string) (entries map[string]string, err error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	entries = map[string]string{}
	for k, v := range ms.data[silo] {
		entries[k] = v
	}

	return entries, nil
}

func (ms *mapStorer) GlobalScan() (entries map[string]map[string]string, err error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	entries = map[string]map[string]string{}
	for silo, sc := range ms.data {
		entries[silo] = map[string]string{}
		for k, v := range sc {
			entries[silo][k] = v
		}
	}

	return entries, nil
}

func (ms *mapStorer) Close() (err error) {
	return nil
}

func TestGetUserOnMissReturnsNil(t *testing.T) {
	b := brain.New(newMapStorer())

	u, err := b.GetUser(context.Background(), "U1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSaveUsersOverwritesRoster(t *testing.T) {
	b := brain.New(newMapStorer())
	ctx := context.Background()

	err := b.SaveUsers(ctx, []brain.User{{ID: "U1", Name: "alice"}, {ID: "U2", Name: "bob"}})
	require.NoError(t, err)

	// a second save drops users gone from the fresh roster
	err = b.SaveUsers(ctx, []brain.User{{ID: "U2", Name: "bob", RealName: "Bob Builder"}})
	require.NoError(t, err)

	u, err := b.GetUser(ctx, "U1")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = b.GetUser(ctx, "U2")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Bob Builder", u.RealName)

	users, err := b.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSaveChannelsAndGetChannel(t *testing.T) {
	b := brain.New(newMapStorer())
	ctx := context.Background()

	err := b.SaveChannels(ctx, []brain.Channel{{ID: "C1", Name: "general"}})
	require.NoError(t, err)

	c, err := b.GetChannel(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "general", c.Name)

	c, err = b.GetChannel(ctx, "C2")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestScoresStartAtZero(t *testing.T) {
	b := brain.New(newMapStorer())

	score, err := b.GetUserScore(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestIncrementUserScore(t *testing.T) {
	b := brain.New(newMapStorer())
	ctx := context.Background()

	score, err := b.IncrementUserScore(ctx, "U1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	score, err = b.IncrementUserScore(ctx, "U1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	score, err = b.IncrementUserScore(ctx, "U1", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	scores, err := b.GetUserScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"U1": 1}, scores)
}

func TestConcurrentIncrementsDontLoseVotes(t *testing.T) {
	b := brain.New(newMapStorer())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := b.IncrementUserScore(ctx, "U1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	score, err := b.GetUserScore(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 50, score)
}

func TestLastVotedUser(t *testing.T) {
	b := brain.New(newMapStorer())
	ctx := context.Background()

	userID, err := b.GetLastVotedUser(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "", userID)

	require.NoError(t, b.SetLastVotedUser(ctx, "C1", "U2"))

	userID, err = b.GetLastVotedUser(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "U2", userID)
}

func TestUserRecordOmitsEmptyOptionalFields(t *testing.T) {
	ms := newMapStorer()
	b := brain.New(ms)
	ctx := context.Background()

	err := b.SaveUsers(ctx, []brain.User{{ID: "U1", Name: "alice"}})
	require.NoError(t, err)

	raw, err := ms.GetSiloString("users", "U1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"U1","name":"alice"}`, raw)
}
