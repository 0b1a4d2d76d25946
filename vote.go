package votescot

import (
	"context"
	"fmt"

	"github.com/alexandre-normand/votescot/brain"
)

const (
	// OperatorUpvote increments the target's score
	OperatorUpvote = "++"
	// OperatorDownvote decrements the target's score
	OperatorDownvote = "--"
)

// voteOutcome is the terminal decision for one vote intent: the message sent
// to the channel and the score delta to persist (0 means nothing is persisted)
type voteOutcome struct {
	message string
	points  int
}

// voteAction runs the vote state machine: resolve the target, decide the
// outcome, notify the channel and only then persist the delta. A persistence
// failure after a successful notification propagates to the pipeline error
// handler, it is never swallowed
func (d *Dispatcher) voteAction(ctx context.Context, opts CommandOptions) (err error) {
	votedUser, err := d.resolveVoteTarget(ctx, opts)
	if err != nil {
		return err
	}

	outcome := decideVote(opts.User, votedUser, opts.Operator)

	if err = d.messenger.Say(ctx, Message{ChannelID: opts.Channel.ID, Text: outcome.message}); err != nil {
		return err
	}

	if outcome.points == 0 {
		return nil
	}

	if err = d.brain.SetLastVotedUser(ctx, opts.Channel.ID, votedUser.ID); err != nil {
		return err
	}

	if _, err = d.brain.IncrementUserScore(ctx, votedUser.ID, outcome.points); err != nil {
		return err
	}

	direction := "upvoted"
	if opts.Operator == OperatorDownvote {
		direction = "downvoted"
	}
	d.log.Printf("User %s %s user %s", opts.User.Name, direction, votedUser.Name)

	return nil
}

// resolveVoteTarget picks the vote target: an explicit id wins, then an
// explicit name, then the user last voted on in the channel
func (d *Dispatcher) resolveVoteTarget(ctx context.Context, opts CommandOptions) (votedUser *brain.User, err error) {
	switch {
	case opts.VotedUser.ID != "":
		return d.resolver.ResolveUser(ctx, opts.VotedUser.ID)
	case opts.VotedUser.Name != "":
		return d.resolver.ResolveUserByName(ctx, opts.VotedUser.Name)
	default:
		lastVotedID, err := d.brain.GetLastVotedUser(ctx, opts.Channel.ID)
		if err != nil {
			return nil, err
		}

		return d.resolver.ResolveUser(ctx, lastVotedID)
	}
}

// decideVote maps a vote intent to its outcome. The voting user and a valid
// operator are preconditions guaranteed by command validation; their absence
// is a contract violation, not a user error
func decideVote(votingUser *brain.User, votedUser *brain.User, operator string) (outcome voteOutcome) {
	if votingUser == nil {
		panic("decideVote invoked without a voting user")
	}

	if operator != OperatorUpvote && operator != OperatorDownvote {
		panic(fmt.Sprintf("decideVote invoked with invalid operator [%s]", operator))
	}

	if votedUser == nil {
		return voteOutcome{message: "Please specify the username", points: 0}
	}

	if votingUser.ID == votedUser.ID {
		return voteOutcome{message: fmt.Sprintf("@%s: No cheating 😏", votingUser.Name), points: 0}
	}

	if operator == OperatorUpvote {
		return voteOutcome{message: fmt.Sprintf("Upvoted @%s 😃", votedUser.Name), points: 1}
	}

	return voteOutcome{message: fmt.Sprintf("Downvoted @%s 😔", votedUser.Name), points: -1}
}
