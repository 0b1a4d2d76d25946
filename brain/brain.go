// Package brain holds votescot's persistent memory: the cached slack rosters,
// the per-user vote totals and the last voted user of each channel. The Brain
// interface is the full set of operations the bot needs; implementations map
// them onto a generic key/value Storer or directly onto redis.
package brain

import (
	"context"
)

// User is a cached slack user. Optional profile fields are omitted from the
// stored record when empty, never kept as empty strings.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	RealName  string `json:"realName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Channel is a cached slack channel. Direct message and private channel
// records are synthesized from their id prefix and never stored.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Brain is the interface to votescot's persistence. Lookups for records that
// don't exist return zero values without an error; errors are reserved for
// connectivity/storage failures.
//
// IncrementUserScore must be safe under concurrent voting: two simultaneous
// votes for the same user must both land (implementations either use a native
// atomic increment or serialize the read-modify-write).
type Brain interface {
	GetUser(ctx context.Context, id string) (u *User, err error)

	GetUsers(ctx context.Context) (users []User, err error)

	// SaveUsers overwrites the full cached user roster. Entries absent from
	// the new roster are discarded.
	SaveUsers(ctx context.Context, users []User) (err error)

	GetChannel(ctx context.Context, id string) (c *Channel, err error)

	GetChannels(ctx context.Context) (channels []Channel, err error)

	// SaveChannels overwrites the full cached channel roster
	SaveChannels(ctx context.Context, channels []Channel) (err error)

	GetUserScore(ctx context.Context, userID string) (score int, err error)

	GetUserScores(ctx context.Context) (scores map[string]int, err error)

	// IncrementUserScore atomically adds delta to a user's score and returns
	// the new total
	IncrementUserScore(ctx context.Context, userID string, delta int) (score int, err error)

	GetLastVotedUser(ctx context.Context, channelID string) (userID string, err error)

	SetLastVotedUser(ctx context.Context, channelID string, userID string) (err error)

	Close() (err error)
}
