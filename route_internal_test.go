package votescot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteMessage(t *testing.T) {
	tests := map[string]struct {
		text         string
		directed     bool
		expectedName CommandName
		expectedOpts CommandOptions
		matched      bool
	}{
		"voteByID": {
			text:         "<@U12345>++",
			expectedName: CommandVote,
			expectedOpts: CommandOptions{VotedUser: &UserRef{ID: "U12345"}, Operator: "++"},
			matched:      true,
		},
		"voteByIDWithLabelAndColon": {
			text:         "<@U12345|alex>: --",
			expectedName: CommandVote,
			expectedOpts: CommandOptions{VotedUser: &UserRef{ID: "U12345"}, Operator: "--"},
			matched:      true,
		},
		"voteByName": {
			text:         "@Bob++",
			expectedName: CommandVote,
			expectedOpts: CommandOptions{VotedUser: &UserRef{Name: "bob"}, Operator: "++"},
			matched:      true,
		},
		"voteByNameWithColon": {
			text:         "bob: ++",
			expectedName: CommandVote,
			expectedOpts: CommandOptions{VotedUser: &UserRef{Name: "bob"}, Operator: "++"},
			matched:      true,
		},
		"voteWithElidedTarget": {
			text:         "++",
			expectedName: CommandVote,
			expectedOpts: CommandOptions{VotedUser: &UserRef{}, Operator: "++"},
			matched:      true,
		},
		"scoreSelfWhenDirected": {
			text:         "score",
			directed:     true,
			expectedName: CommandUserScore,
			expectedOpts: CommandOptions{RequestedUser: &UserRef{ID: "U1"}},
			matched:      true,
		},
		"scoreSelfIgnoredWhenNotDirected": {
			text:    "score",
			matched: false,
		},
		"scoreByID": {
			text:         "score for <@U12345>",
			expectedName: CommandUserScore,
			expectedOpts: CommandOptions{RequestedUser: &UserRef{ID: "U12345"}},
			matched:      true,
		},
		"scoreByName": {
			text:         "score for Bob",
			expectedName: CommandUserScore,
			expectedOpts: CommandOptions{RequestedUser: &UserRef{Name: "bob"}},
			matched:      true,
		},
		"scoreByNameWithoutFor": {
			text:         "score bob",
			expectedName: CommandUserScore,
			expectedOpts: CommandOptions{RequestedUser: &UserRef{Name: "bob"}},
			matched:      true,
		},
		"leaderboard": {
			text:         "leaderboard",
			expectedName: CommandLeaderboard,
			expectedOpts: CommandOptions{},
			matched:      true,
		},
		"libraries": {
			text:         "libraries iOS networking library",
			expectedName: CommandGetLibraries,
			expectedOpts: CommandOptions{Platform: "ios", Query: "networking library"},
			matched:      true,
		},
		"helpWhenDirected": {
			text:         "help",
			directed:     true,
			expectedName: CommandHelp,
			expectedOpts: CommandOptions{},
			matched:      true,
		},
		"helpIgnoredWhenNotDirected": {
			text:    "help",
			matched: false,
		},
		"greetingWhenDirected": {
			text:         "hello there",
			directed:     true,
			expectedName: CommandGreet,
			expectedOpts: CommandOptions{},
			matched:      true,
		},
		"greetingIgnoredWhenNotDirected": {
			text:    "hello there",
			matched: false,
		},
		"conversationIgnored": {
			text:    "has anyone seen the deploy checklist?",
			matched: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ci, ok := routeMessage(tc.text, "C1", "U1", tc.directed)

			require.Equal(t, tc.matched, ok)
			if !tc.matched {
				return
			}

			tc.expectedOpts.ChannelID = "C1"
			tc.expectedOpts.UserID = "U1"
			assert.Equal(t, tc.expectedName, ci.name)
			assert.Equal(t, tc.expectedOpts, ci.opts)
		})
	}
}

func TestRouteReaction(t *testing.T) {
	tests := map[string]struct {
		reaction         string
		expectedOperator string
	}{
		"thumbsUp":   {reaction: "+1", expectedOperator: "++"},
		"thumbsDown": {reaction: "-1", expectedOperator: "--"},
		// unmapped reactions flow through and get dropped by validation
		"unmapped": {reaction: "taco", expectedOperator: "taco"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ci := routeReaction(tc.reaction, "C1", "U2", "U1")

			assert.Equal(t, CommandVote, ci.name)
			assert.Equal(t, CommandOptions{
				ChannelID: "C1",
				UserID:    "U1",
				VotedUser: &UserRef{ID: "U2"},
				Operator:  tc.expectedOperator,
			}, ci.opts)
		})
	}
}
