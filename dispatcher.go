package votescot

import (
	"context"
	"math/rand"

	"github.com/alexandre-normand/votescot/brain"
	"github.com/alexandre-normand/votescot/librarian"
	"golang.org/x/sync/errgroup"
)

const errorNotice = "Oops, something went wrong processing that :sweat:"

// LibrarySearcher is implemented by the librarian collaborator
type LibrarySearcher interface {
	// GetLibraries returns libraries matching the query for the platform,
	// highest relevance first, deduplicated by link
	GetLibraries(ctx context.Context, platform string, query string) (libraries []librarian.Library, err error)
}

// Dispatcher is the command pipeline: it resolves the actor and channel of an
// invocation, validates it and runs the command's action. Unknown actors,
// unresolvable channels and failed validations are dropped silently (logged
// at debug level only)
type Dispatcher struct {
	commands  map[CommandName]Command
	resolver  *Resolver
	brain     brain.Brain
	messenger Messenger
	librarian LibrarySearcher
	log       SLogger

	// pickGreeting indexes into the greetings list, swapped out in tests
	pickGreeting func(n int) int
}

// NewDispatcher creates a dispatcher wired to its collaborators and registers
// the command set
func NewDispatcher(b brain.Brain, gateway Gateway, searcher LibrarySearcher, logger SLogger) (d *Dispatcher) {
	d = &Dispatcher{
		resolver:     NewResolver(b, gateway, logger),
		brain:        b,
		messenger:    gateway,
		librarian:    searcher,
		log:          logger,
		pickGreeting: rand.Intn,
	}

	d.commands = d.newCommandSet()

	return d
}

// RunCommand resolves, validates and executes a single command invocation.
// Invocations for different events may run concurrently; no ordering is
// guaranteed between them
func (d *Dispatcher) RunCommand(ctx context.Context, name CommandName, opts CommandOptions) {
	cmd, registered := d.commands[name]
	if !registered || opts.ChannelID == "" || opts.UserID == "" {
		d.log.Debugf("Dropping invocation [%s]: unregistered command or missing identifiers", name)
		return
	}

	// Kept aside so errors can still be reported if channel resolution failed
	rawChannelID := opts.ChannelID

	var user *brain.User
	var channel *brain.Channel

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = d.resolver.ResolveUser(gctx, opts.UserID)
		return err
	})
	g.Go(func() (err error) {
		channel, err = d.resolver.ResolveChannel(gctx, opts.ChannelID)
		return err
	})

	if err := g.Wait(); err != nil {
		d.handleCommandError(ctx, cmd, rawChannelID, err)
		return
	}

	if user == nil || channel == nil {
		d.log.Debugf("Dropping invocation [%s]: actor or channel unresolved (user [%s], channel [%s])", name, opts.UserID, opts.ChannelID)
		return
	}

	opts.User = user
	opts.Channel = channel
	opts.UserID = ""
	opts.ChannelID = ""

	if cmd.Validate != nil && !cmd.Validate(opts) {
		d.log.Debugf("Dropping invocation [%s]: validation failed", name)
		return
	}

	d.log.Printf("%s for user %s in %s", cmd.Description, user.Name, describeChannel(channel))

	if err := cmd.Action(ctx, opts); err != nil {
		d.handleCommandError(ctx, cmd, channel.ID, err)
	}
}

// RefreshRosters re-syncs the cached user and channel rosters from the
// gateway. Used by the periodic refresh schedule to keep the cache warm
func (d *Dispatcher) RefreshRosters(ctx context.Context) {
	if _, err := d.resolver.RefreshUsers(ctx); err != nil {
		d.log.Printf("Failed to refresh user roster: %v", err)
	}

	if _, err := d.resolver.RefreshChannels(ctx); err != nil {
		d.log.Printf("Failed to refresh channel roster: %v", err)
	}
}

// handleCommandError logs a collaborator failure and sends a best-effort
// error notice to the requesting channel. A failed notice is logged, never
// retried
func (d *Dispatcher) handleCommandError(ctx context.Context, cmd Command, channelID string, err error) {
	d.log.Printf("Failed to process command [%s]: %v", cmd.Name, err)

	if sayErr := d.messenger.Say(ctx, Message{ChannelID: channelID, Text: errorNotice}); sayErr != nil {
		d.log.Printf("Failed to notify channel [%s] of the error for command [%s]: %v", channelID, cmd.Name, sayErr)
	}
}

// describeChannel renders the channel part of the intent log line. The
// synthetic DM/private names read naturally without the "channel" prefix
func describeChannel(c *brain.Channel) string {
	if c.Name == directMessageChannelName || c.Name == privateChannelName {
		return c.Name
	}

	return "channel " + c.Name
}
