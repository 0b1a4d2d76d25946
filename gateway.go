package votescot

import (
	"context"

	"github.com/alexandre-normand/votescot/brain"
	"github.com/slack-go/slack"
)

// Message holds an outbound message to a channel. Attachments are optional
// rich content (library search results render as attachments)
type Message struct {
	ChannelID   string
	Text        string
	Attachments []slack.Attachment
}

// Messenger is implemented by any value that can deliver a message to a
// channel. The decoupling from the slack client keeps command actions easy to
// test with a capturing fake
type Messenger interface {
	// Say delivers the message to its channel
	Say(ctx context.Context, m Message) (err error)
}

// RosterFetcher is implemented by any value that can fetch the full user and
// channel rosters from the chat platform
type RosterFetcher interface {
	// GetUsers fetches the full, normalized user roster
	GetUsers(ctx context.Context) (users []brain.User, err error)

	// GetChannels fetches the full channel roster
	GetChannels(ctx context.Context) (channels []brain.Channel, err error)
}

// Gateway combines the outbound surfaces of the chat platform the bot needs
type Gateway interface {
	Messenger
	RosterFetcher
}
