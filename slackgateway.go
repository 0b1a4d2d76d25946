package votescot

import (
	"context"

	"github.com/alexandre-normand/votescot/brain"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// slackGateway adapts the slack web api to the Gateway interface and
// normalizes roster records to brain types
type slackGateway struct {
	api *slack.Client
}

// NewSlackGateway creates a Gateway backed by the slack web api
func NewSlackGateway(api *slack.Client) (g Gateway) {
	return &slackGateway{api: api}
}

// Say delivers a message to its channel
func (g *slackGateway) Say(ctx context.Context, m Message) (err error) {
	options := []slack.MsgOption{slack.MsgOptionText(m.Text, false), slack.MsgOptionAsUser(true)}
	if len(m.Attachments) > 0 {
		options = append(options, slack.MsgOptionAttachments(m.Attachments...))
	}

	_, _, err = g.api.PostMessageContext(ctx, m.ChannelID, options...)

	return errors.Wrapf(err, "failed to send message to channel [%s]", m.ChannelID)
}

// GetUsers fetches the full user roster and normalizes each record. Empty
// optional profile fields are dropped on marshaling via omitempty so they're
// omitted from storage, never kept as empty values
func (g *slackGateway) GetUsers(ctx context.Context) (users []brain.User, err error) {
	slackUsers, err := g.api.GetUsersContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user roster")
	}

	users = make([]brain.User, 0, len(slackUsers))
	for _, su := range slackUsers {
		users = append(users, brain.User{
			ID:        su.ID,
			Name:      su.Name,
			IsAdmin:   su.IsAdmin,
			FirstName: su.Profile.FirstName,
			LastName:  su.Profile.LastName,
			RealName:  su.Profile.RealName,
			Email:     su.Profile.Email,
		})
	}

	return users, nil
}

// GetChannels fetches the full public channel roster, paging through the
// conversations api
func (g *slackGateway) GetChannels(ctx context.Context) (channels []brain.Channel, err error) {
	params := &slack.GetConversationsParameters{
		Types: []string{"public_channel"},
		Limit: 200,
	}

	channels = make([]brain.Channel, 0)
	for {
		page, cursor, err := g.api.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch channel roster")
		}

		for _, c := range page {
			channels = append(channels, brain.Channel{ID: c.ID, Name: c.Name})
		}

		if cursor == "" {
			return channels, nil
		}

		params.Cursor = cursor
	}
}
