// Package mocks contains a mock of the brain package interfaces
package mocks

import (
	"context"

	"github.com/alexandre-normand/votescot/brain"
	"github.com/stretchr/testify/mock"
)

// Brain holds a mock implementing brain.Brain
type Brain struct {
	mock.Mock
}

// GetUser mocks an implementation of GetUser
func (mb *Brain) GetUser(ctx context.Context, id string) (u *brain.User, err error) {
	args := mb.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*brain.User), args.Error(1)
}

// GetUsers mocks an implementation of GetUsers
func (mb *Brain) GetUsers(ctx context.Context) (users []brain.User, err error) {
	args := mb.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]brain.User), args.Error(1)
}

// SaveUsers mocks an implementation of SaveUsers
func (mb *Brain) SaveUsers(ctx context.Context, users []brain.User) (err error) {
	args := mb.Called(ctx, users)

	return args.Error(0)
}

// GetChannel mocks an implementation of GetChannel
func (mb *Brain) GetChannel(ctx context.Context, id string) (c *brain.Channel, err error) {
	args := mb.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*brain.Channel), args.Error(1)
}

// GetChannels mocks an implementation of GetChannels
func (mb *Brain) GetChannels(ctx context.Context) (channels []brain.Channel, err error) {
	args := mb.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]brain.Channel), args.Error(1)
}

// SaveChannels mocks an implementation of SaveChannels
func (mb *Brain) SaveChannels(ctx context.Context, channels []brain.Channel) (err error) {
	args := mb.Called(ctx, channels)

	return args.Error(0)
}

// GetUserScore mocks an implementation of GetUserScore
func (mb *Brain) GetUserScore(ctx context.Context, userID string) (score int, err error) {
	args := mb.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

// GetUserScores mocks an implementation of GetUserScores
func (mb *Brain) GetUserScores(ctx context.Context) (scores map[string]int, err error) {
	args := mb.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]int), args.Error(1)
}

// IncrementUserScore mocks an implementation of IncrementUserScore
func (mb *Brain) IncrementUserScore(ctx context.Context, userID string, delta int) (score int, err error) {
	args := mb.Called(ctx, userID, delta)

	return args.Int(0), args.Error(1)
}

// GetLastVotedUser mocks an implementation of GetLastVotedUser
func (mb *Brain) GetLastVotedUser(ctx context.Context, channelID string) (userID string, err error) {
	args := mb.Called(ctx, channelID)

	return args.String(0), args.Error(1)
}

// SetLastVotedUser mocks an implementation of SetLastVotedUser
func (mb *Brain) SetLastVotedUser(ctx context.Context, channelID string, userID string) (err error) {
	args := mb.Called(ctx, channelID, userID)

	return args.Error(0)
}

// Close mocks an implementation of Close
func (mb *Brain) Close() (err error) {
	args := mb.Called()

	return args.Error(0)
}
