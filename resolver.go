package votescot

import (
	"context"

	"github.com/alexandre-normand/votescot/brain"
)

const (
	// Slack encodes the conversation type in the identifier prefix. Direct
	// message and private group channels never show up in the public roster
	// so their records are synthesized and never persisted
	directMessageIDPrefix = 'D'
	privateChannelIDPrefix = 'G'

	directMessageChannelName = "direct message"
	privateChannelName       = "private channel"
)

// Resolver is the entity cache: it resolves opaque slack identifiers (or
// display names) to cached records, falling back to a full roster refresh
// from the gateway on a cache miss
type Resolver struct {
	brain  brain.Brain
	roster RosterFetcher
	log    SLogger
}

// NewResolver creates a resolver reading through the brain to the gateway
func NewResolver(b brain.Brain, roster RosterFetcher, logger SLogger) (r *Resolver) {
	return &Resolver{brain: b, roster: roster, log: logger}
}

// ResolveUser resolves a user id to its record. An empty id resolves to nil
// without error; a cache miss triggers exactly one roster refresh before
// giving up
func (r *Resolver) ResolveUser(ctx context.Context, id string) (u *brain.User, err error) {
	if id == "" {
		return nil, nil
	}

	u, err = r.brain.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if u != nil {
		return u, nil
	}

	users, err := r.RefreshUsers(ctx)
	if err != nil {
		return nil, err
	}

	return findUserByID(users, id), nil
}

// ResolveUserByName resolves a display name to a user record, searching the
// cached roster first and falling back to a refresh-and-search on a miss
func (r *Resolver) ResolveUserByName(ctx context.Context, name string) (u *brain.User, err error) {
	if name == "" {
		return nil, nil
	}

	users, err := r.brain.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	if u = findUserByName(users, name); u != nil {
		return u, nil
	}

	users, err = r.RefreshUsers(ctx)
	if err != nil {
		return nil, err
	}

	return findUserByName(users, name), nil
}

// ResolveChannel resolves a channel id to its record. Direct message and
// private channel ids resolve to synthesized records without touching the
// brain or the gateway
func (r *Resolver) ResolveChannel(ctx context.Context, id string) (c *brain.Channel, err error) {
	if id == "" {
		return nil, nil
	}

	switch id[0] {
	case directMessageIDPrefix:
		return &brain.Channel{ID: id, Name: directMessageChannelName}, nil
	case privateChannelIDPrefix:
		return &brain.Channel{ID: id, Name: privateChannelName}, nil
	}

	c, err = r.brain.GetChannel(ctx, id)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	channels, err := r.RefreshChannels(ctx)
	if err != nil {
		return nil, err
	}

	return findChannelByID(channels, id), nil
}

// RefreshUsers fetches the full user roster from the gateway and overwrites
// the cached collection with it. Concurrent refreshes aren't deduplicated;
// they converge to the most recent roster
func (r *Resolver) RefreshUsers(ctx context.Context) (users []brain.User, err error) {
	users, err = r.roster.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	if err = r.brain.SaveUsers(ctx, users); err != nil {
		return nil, err
	}

	r.log.Debugf("Refreshed user roster with [%d] users", len(users))

	return users, nil
}

// RefreshChannels fetches the full channel roster from the gateway and
// overwrites the cached collection with it
func (r *Resolver) RefreshChannels(ctx context.Context) (channels []brain.Channel, err error) {
	channels, err = r.roster.GetChannels(ctx)
	if err != nil {
		return nil, err
	}

	if err = r.brain.SaveChannels(ctx, channels); err != nil {
		return nil, err
	}

	r.log.Debugf("Refreshed channel roster with [%d] channels", len(channels))

	return channels, nil
}

func findUserByID(users []brain.User, id string) (u *brain.User) {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}

	return nil
}

func findUserByName(users []brain.User, name string) (u *brain.User) {
	for i := range users {
		if users[i].Name == name {
			return &users[i]
		}
	}

	return nil
}

func findChannelByID(channels []brain.Channel, id string) (c *brain.Channel) {
	for i := range channels {
		if channels[i].ID == id {
			return &channels[i]
		}
	}

	return nil
}
