package votescot

import (
	"context"

	"github.com/alexandre-normand/votescot/brain"
)

// CommandName identifies one of the closed set of commands the bot handles.
// The set is fixed at startup; there is no dynamic registration
type CommandName string

const (
	// CommandGreet answers a greeting
	CommandGreet CommandName = "greet"
	// CommandVote processes a ++/-- vote on a user
	CommandVote CommandName = "vote"
	// CommandUserScore answers a user's current score
	CommandUserScore CommandName = "userScore"
	// CommandLeaderboard renders the ranked score report
	CommandLeaderboard CommandName = "leaderboard"
	// CommandGetLibraries searches the library providers
	CommandGetLibraries CommandName = "getLibraries"
	// CommandHelp lists what the bot can do
	CommandHelp CommandName = "help"
)

// UserRef is an unresolved reference to a user, by id or by display name.
// A zero UserRef means "whoever was voted on last in this channel"
type UserRef struct {
	ID   string
	Name string
}

// CommandOptions carries the arguments of one command invocation. ChannelID
// and UserID are the raw identifiers from the event; the pipeline replaces
// them with the resolved User and Channel before validation
type CommandOptions struct {
	ChannelID string
	UserID    string

	// Resolved actor and channel, set by the pipeline
	User    *brain.User
	Channel *brain.Channel

	// Vote arguments
	VotedUser *UserRef
	Operator  string

	// Score query argument
	RequestedUser *UserRef

	// Library search arguments
	Platform string
	Query    string
}

// Command couples a command's validation, behavior and description. Commands
// are immutable and registered once per process lifetime
type Command struct {
	Name CommandName

	// Usage example, shown by the help command
	Usage string

	// Description doubles as the intent log line prefix
	Description string

	// Validate is an optional precondition on the merged options. A false
	// return drops the invocation silently
	Validate func(opts CommandOptions) bool

	// Action performs the command and sends its own outbound message
	Action func(ctx context.Context, opts CommandOptions) error
}
