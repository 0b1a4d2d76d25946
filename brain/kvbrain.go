package brain

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/alexandre-normand/votescot/store"
	"github.com/pkg/errors"
)

const (
	usersSilo          = "users"
	channelsSilo       = "channels"
	scoresSilo         = "scores"
	lastVotedUsersSilo = "lastVotedUsers"
)

// kvBrain implements Brain on top of a silo'd key/value storer. Users and
// channels are stored as one json record per id; scores and last-voted
// pointers as plain strings.
type kvBrain struct {
	storer store.GlobalSiloStringStorer

	// serializes score increments since the storer only offers get/put
	scoreMutex sync.Mutex
}

// New returns a Brain persisting to the given storer
func New(storer store.GlobalSiloStringStorer) (b Brain) {
	return &kvBrain{storer: storer}
}

// GetUser returns the cached user for the id or nil when not cached
func (b *kvBrain) GetUser(ctx context.Context, id string) (u *User, err error) {
	raw, err := b.storer.GetSiloString(usersSilo, id)
	if err == store.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get user [%s]", id)
	}

	u = new(User)
	if err = json.Unmarshal([]byte(raw), u); err != nil {
		return nil, errors.Wrapf(err, "failed to decode user record [%s]", id)
	}

	return u, nil
}

// GetUsers returns the full cached user roster
func (b *kvBrain) GetUsers(ctx context.Context) (users []User, err error) {
	entries, err := b.storer.ScanSilo(usersSilo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan users")
	}

	users = make([]User, 0, len(entries))
	for id, raw := range entries {
		var u User
		if err = json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, errors.Wrapf(err, "failed to decode user record [%s]", id)
		}

		users = append(users, u)
	}

	return users, nil
}

// SaveUsers overwrites the cached user roster
func (b *kvBrain) SaveUsers(ctx context.Context, users []User) (err error) {
	return b.overwriteSilo(usersSilo, len(users), func(put func(key string, value interface{}) error) error {
		for _, u := range users {
			if err := put(u.ID, u); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetChannel returns the cached channel for the id or nil when not cached
func (b *kvBrain) GetChannel(ctx context.Context, id string) (c *Channel, err error) {
	raw, err := b.storer.GetSiloString(channelsSilo, id)
	if err == store.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get channel [%s]", id)
	}

	c = new(Channel)
	if err = json.Unmarshal([]byte(raw), c); err != nil {
		return nil, errors.Wrapf(err, "failed to decode channel record [%s]", id)
	}

	return c, nil
}

// GetChannels returns the full cached channel roster
func (b *kvBrain) GetChannels(ctx context.Context) (channels []Channel, err error) {
	entries, err := b.storer.ScanSilo(channelsSilo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan channels")
	}

	channels = make([]Channel, 0, len(entries))
	for id, raw := range entries {
		var c Channel
		if err = json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, errors.Wrapf(err, "failed to decode channel record [%s]", id)
		}

		channels = append(channels, c)
	}

	return channels, nil
}

// SaveChannels overwrites the cached channel roster
func (b *kvBrain) SaveChannels(ctx context.Context, channels []Channel) (err error) {
	return b.overwriteSilo(channelsSilo, len(channels), func(put func(key string, value interface{}) error) error {
		for _, c := range channels {
			if err := put(c.ID, c); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetUserScore returns the user's score, 0 when the user was never voted on
func (b *kvBrain) GetUserScore(ctx context.Context, userID string) (score int, err error) {
	raw, err := b.storer.GetSiloString(scoresSilo, userID)
	if err == store.ErrNotFound {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrapf(err, "failed to get score for user [%s]", userID)
	}

	score, err = strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid score value [%s] for user [%s]", raw, userID)
	}

	return score, nil
}

// GetUserScores returns all scores keyed by user id
func (b *kvBrain) GetUserScores(ctx context.Context) (scores map[string]int, err error) {
	entries, err := b.storer.ScanSilo(scoresSilo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan scores")
	}

	scores = make(map[string]int, len(entries))
	for userID, raw := range entries {
		scores[userID], err = strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid score value [%s] for user [%s]", raw, userID)
		}
	}

	return scores, nil
}

// IncrementUserScore adds delta to a user's score and returns the new total.
// Increments are serialized so concurrent votes can't lose updates.
func (b *kvBrain) IncrementUserScore(ctx context.Context, userID string, delta int) (score int, err error) {
	b.scoreMutex.Lock()
	defer b.scoreMutex.Unlock()

	score, err = b.GetUserScore(ctx, userID)
	if err != nil {
		return 0, err
	}

	score += delta
	if err = b.storer.PutSiloString(scoresSilo, userID, strconv.Itoa(score)); err != nil {
		return 0, errors.Wrapf(err, "failed to save score for user [%s]", userID)
	}

	return score, nil
}

// GetLastVotedUser returns the id of the user last voted on in the channel,
// empty when no vote was recorded there yet
func (b *kvBrain) GetLastVotedUser(ctx context.Context, channelID string) (userID string, err error) {
	userID, err = b.storer.GetSiloString(lastVotedUsersSilo, channelID)
	if err == store.ErrNotFound {
		return "", nil
	} else if err != nil {
		return "", errors.Wrapf(err, "failed to get last voted user for channel [%s]", channelID)
	}

	return userID, nil
}

// SetLastVotedUser records the user last voted on in the channel
func (b *kvBrain) SetLastVotedUser(ctx context.Context, channelID string, userID string) (err error) {
	err = b.storer.PutSiloString(lastVotedUsersSilo, channelID, userID)

	return errors.Wrapf(err, "failed to save last voted user for channel [%s]", channelID)
}

// Close closes the underlying storer
func (b *kvBrain) Close() (err error) {
	return b.storer.Close()
}

// overwriteSilo deletes all current entries of a silo and fills it back via
// the write callback. Refreshes are full overwrites so roster entries gone
// from slack get discarded.
func (b *kvBrain) overwriteSilo(silo string, size int, write func(put func(key string, value interface{}) error) error) (err error) {
	current, err := b.storer.ScanSilo(silo)
	if err != nil {
		return errors.Wrapf(err, "failed to scan silo [%s] for overwrite", silo)
	}

	for key := range current {
		if err = b.storer.DeleteSiloString(silo, key); err != nil {
			return errors.Wrapf(err, "failed to clear [%s] from silo [%s]", key, silo)
		}
	}

	return write(func(key string, value interface{}) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return errors.Wrapf(err, "failed to encode record [%s] for silo [%s]", key, silo)
		}

		if err = b.storer.PutSiloString(silo, key, string(raw)); err != nil {
			return errors.Wrapf(err, "failed to save record [%s] to silo [%s]", key, silo)
		}

		return nil
	})
}
