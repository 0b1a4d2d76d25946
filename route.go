package votescot

import (
	"regexp"
	"strings"
)

// The free-text surface of the bot, compiled once. The vote-by-name pattern
// also matches a bare "++"/"--" (empty name), which votes on the user last
// voted on in the channel
var (
	greetRegex       = regexp.MustCompile(`(?i)^\s*(?:hi|hello|whatsup|howdy|greetings|privet|salem)(?:\s+.*)?$`)
	voteIDRegex      = regexp.MustCompile(`^\s*<@(U[A-Z0-9]+)(?:\|[^>]*)?>\s*:?\s*([-+]{2})\s*$`)
	voteNameRegex    = regexp.MustCompile(`^\s*@?([\w.'-]*)\s*:?\s*([-+]{2})\s*$`)
	scoreSelfRegex   = regexp.MustCompile(`(?i)^\s*score\s*$`)
	scoreIDRegex     = regexp.MustCompile(`(?i)^\s*score\s+(?:for\s+)?<@(U[A-Z0-9]+)(?:\|[^>]*)?>\s*$`)
	scoreNameRegex   = regexp.MustCompile(`(?i)^\s*score\s+(?:for\s+)?@?([\w.'-]+)\s*$`)
	leaderboardRegex = regexp.MustCompile(`(?i)^\s*leaderboard\s*$`)
	librariesRegex   = regexp.MustCompile(`(?i)^\s*libraries\s+(\S+)\s+(.+?)\s*$`)
	helpRegex        = regexp.MustCompile(`(?i)^\s*help\s*$`)
)

// commandInvocation pairs a command name with the options parsed from an
// inbound event
type commandInvocation struct {
	name CommandName
	opts CommandOptions
}

// routeMessage matches free text against the command surface. directed is
// true for direct messages and messages mentioning the bot; conversational
// patterns (greetings, help, bare "score") only trigger when directed at us.
// A false ok means the text isn't a command and is ignored
func routeMessage(text string, channelID string, userID string, directed bool) (ci commandInvocation, ok bool) {
	base := CommandOptions{ChannelID: channelID, UserID: userID}

	if directed {
		switch {
		case helpRegex.MatchString(text):
			return commandInvocation{name: CommandHelp, opts: base}, true
		case scoreSelfRegex.MatchString(text):
			base.RequestedUser = &UserRef{ID: userID}
			return commandInvocation{name: CommandUserScore, opts: base}, true
		case greetRegex.MatchString(text):
			return commandInvocation{name: CommandGreet, opts: base}, true
		}
	}

	if m := voteIDRegex.FindStringSubmatch(text); m != nil {
		base.VotedUser = &UserRef{ID: m[1]}
		base.Operator = m[2]
		return commandInvocation{name: CommandVote, opts: base}, true
	}

	if m := voteNameRegex.FindStringSubmatch(text); m != nil {
		base.VotedUser = &UserRef{Name: strings.ToLower(m[1])}
		base.Operator = m[2]
		return commandInvocation{name: CommandVote, opts: base}, true
	}

	if m := scoreIDRegex.FindStringSubmatch(text); m != nil {
		base.RequestedUser = &UserRef{ID: m[1]}
		return commandInvocation{name: CommandUserScore, opts: base}, true
	}

	// names never carry slack's <...> escapes; that form is handled above
	if m := scoreNameRegex.FindStringSubmatch(text); m != nil && !strings.Contains(text, "<") {
		base.RequestedUser = &UserRef{Name: strings.ToLower(m[1])}
		return commandInvocation{name: CommandUserScore, opts: base}, true
	}

	if leaderboardRegex.MatchString(text) {
		return commandInvocation{name: CommandLeaderboard, opts: base}, true
	}

	if m := librariesRegex.FindStringSubmatch(text); m != nil {
		base.Platform = strings.ToLower(m[1])
		base.Query = m[2]
		return commandInvocation{name: CommandGetLibraries, opts: base}, true
	}

	return commandInvocation{}, false
}

// routeReaction maps an emoji reaction on a user's message to a vote
// invocation. Only the +1/-1 family maps to vote operators; anything else
// flows through unmapped and gets dropped by the vote command's validation
func routeReaction(reaction string, channelID string, itemUserID string, userID string) (ci commandInvocation) {
	operator := reaction
	switch reaction {
	case "+1":
		operator = OperatorUpvote
	case "-1":
		operator = OperatorDownvote
	}

	return commandInvocation{
		name: CommandVote,
		opts: CommandOptions{
			ChannelID: channelID,
			UserID:    userID,
			VotedUser: &UserRef{ID: itemUserID},
			Operator:  operator,
		},
	}
}
