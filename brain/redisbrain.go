package brain

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	usersKey          = "votescot:users"
	channelsKey       = "votescot:channels"
	scoresKey         = "votescot:scores"
	lastVotedUsersKey = "votescot:lastVotedUsers"
)

// redisBrain implements Brain on redis hashes. Scores ride on HINCRBY so the
// increment is atomic server-side and concurrent votes can't lose updates.
type redisBrain struct {
	client *redis.Client
}

// NewRedis returns a Brain persisting to the given redis client
func NewRedis(client *redis.Client) (b Brain) {
	return &redisBrain{client: client}
}

// GetUser returns the cached user for the id or nil when not cached
func (b *redisBrain) GetUser(ctx context.Context, id string) (u *User, err error) {
	raw, err := b.client.HGet(ctx, usersKey, id).Result()
	if err == redis.Nil {
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
func (b *redisBrain) GetUsers(ctx context.Context) (users []User, err error) {
	entries, err := b.client.HGetAll(ctx, usersKey).Result()
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
func (b *redisBrain) SaveUsers(ctx context.Context, users []User) (err error) {
	records := make(map[string]interface{}, len(users))
	for _, u := range users {
		raw, err := json.Marshal(u)
		if err != nil {
			return errors.Wrapf(err, "failed to encode user record [%s]", u.ID)
		}

		records[u.ID] = string(raw)
	}

	return b.overwriteHash(ctx, usersKey, records)
}

// GetChannel returns the cached channel for the id or nil when not cached
func (b *redisBrain) GetChannel(ctx context.Context, id string) (c *Channel, err error) {
	raw, err := b.client.HGet(ctx, channelsKey, id).Result()
	if err == redis.Nil {
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
func (b *redisBrain) GetChannels(ctx context.Context) (channels []Channel, err error) {
	entries, err := b.client.HGetAll(ctx, channelsKey).Result()
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
func (b *redisBrain) SaveChannels(ctx context.Context, channels []Channel) (err error) {
	records := make(map[string]interface{}, len(channels))
	for _, c := range channels {
		raw, err := json.Marshal(c)
		if err != nil {
			return errors.Wrapf(err, "failed to encode channel record [%s]", c.ID)
		}

		records[c.ID] = string(raw)
	}

	return b.overwriteHash(ctx, channelsKey, records)
}

// GetUserScore returns the user's score, 0 when the user was never voted on
func (b *redisBrain) GetUserScore(ctx context.Context, userID string) (score int, err error) {
	raw, err := b.client.HGet(ctx, scoresKey, userID).Result()
	if err == redis.Nil {
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
func (b *redisBrain) GetUserScores(ctx context.Context) (scores map[string]int, err error) {
	entries, err := b.client.HGetAll(ctx, scoresKey).Result()
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

// IncrementUserScore atomically adds delta to a user's score via HINCRBY
func (b *redisBrain) IncrementUserScore(ctx context.Context, userID string, delta int) (score int, err error) {
	total, err := b.client.HIncrBy(ctx, scoresKey, userID, int64(delta)).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to increment score for user [%s]", userID)
	}

	return int(total), nil
}

// GetLastVotedUser returns the id of the user last voted on in the channel,
// empty when no vote was recorded there yet
func (b *redisBrain) GetLastVotedUser(ctx context.Context, channelID string) (userID string, err error) {
	userID, err = b.client.HGet(ctx, lastVotedUsersKey, channelID).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", errors.Wrapf(err, "failed to get last voted user for channel [%s]", channelID)
	}

	return userID, nil
}

// SetLastVotedUser records the user last voted on in the channel
func (b *redisBrain) SetLastVotedUser(ctx context.Context, channelID string, userID string) (err error) {
	err = b.client.HSet(ctx, lastVotedUsersKey, channelID, userID).Err()

	return errors.Wrapf(err, "failed to save last voted user for channel [%s]", channelID)
}

// Close closes the underlying redis client
func (b *redisBrain) Close() (err error) {
	return b.client.Close()
}

// overwriteHash replaces a hash's content in a single transaction so readers
// never observe a half-written roster
func (b *redisBrain) overwriteHash(ctx context.Context, key string, records map[string]interface{}) (err error) {
	pipe := b.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(records) > 0 {
		pipe.HSet(ctx, key, records)
	}

	_, err = pipe.Exec(ctx)

	return errors.Wrapf(err, "failed to overwrite [%s]", key)
}
