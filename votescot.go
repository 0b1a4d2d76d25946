package votescot

import (
	"context"
	"log"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/alexandre-normand/votescot/config"
	"github.com/marcsantiago/gocron"
	"github.com/slack-go/slack"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Bot ties the slack real-time connection to the dispatcher: it routes
// inbound message and reaction events to command invocations and keeps the
// roster cache warm on a schedule
type Bot struct {
	name       string
	config     *viper.Viper
	dispatcher *Dispatcher
	log        SLogger

	selfID   string
	selfName string
}

// New creates a new bot with the given name, configuration and dispatcher
func New(name string, v *viper.Viper, dispatcher *Dispatcher, logger SLogger) (b *Bot) {
	return &Bot{name: name, config: v, dispatcher: dispatcher, log: logger}
}

// Run connects to slack and loops over real-time events until the process is
// interrupted. Each matched command runs on its own goroutine; no ordering is
// guaranteed between invocations
func (b *Bot) Run() (err error) {
	api := slack.New(
		b.config.GetString(config.TokenKey),
		slack.OptionDebug(b.config.GetBool(config.DebugKey)),
		slack.OptionLog(log.New(os.Stdout, "slack: ", log.Lshortfile|log.LstdFlags)),
	)

	rtm := api.NewRTM()

	go rtm.ManageConnection()
	go b.watchForTerminationSignalToAbort(rtm)

	timeLoc, err := config.GetTimeLocation(b.config)
	if err != nil {
		return err
	}
	go b.startRosterRefreshScheduler(timeLoc)

	for msg := range rtm.IncomingEvents {
		switch e := msg.Data.(type) {
		case *slack.ConnectedEvent:
			b.cacheSelfIdentity(rtm)

		case *slack.MessageEvent:
			b.processMessageEvent(e)

		case *slack.ReactionAddedEvent:
			b.processReactionEvent(e)

		case *slack.LatencyReport:
			b.log.Debugf("Current latency: %v", e.Value)

		case *slack.RTMError:
			b.log.Printf("RTM error: %s", e.Error())

		case *slack.InvalidAuthEvent:
			b.log.Printf("Invalid credentials")
			return nil

		default:
			// Ignoring other events
		}
	}

	return nil
}

// watchForTerminationSignalToAbort waits for a SIGTERM or SIGINT and closes
// the rtm's IncomingEvents channel to finish the main Run() loop and
// terminate cleanly. Meant to run in a goroutine given that this is blocking
func (b *Bot) watchForTerminationSignalToAbort(rtm *slack.RTM) {
	tSignals := make(chan os.Signal, 1)
	signal.Notify(tSignals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-tSignals

	b.log.Debugf("Received termination signal [%s], closing RTM's incoming events channel to terminate processing", sig)
	close(rtm.IncomingEvents)
}

// startRosterRefreshScheduler periodically re-syncs the cached rosters so
// renames and new members show up without waiting for a cache miss. Meant to
// run in a goroutine; it starts the scheduler and never returns
func (b *Bot) startRosterRefreshScheduler(timeLoc *time.Location) {
	interval := cast.ToUint64(b.config.Get(config.RosterRefreshIntervalHoursKey))
	if interval == 0 {
		b.log.Debugf("Roster refresh scheduling disabled")
		return
	}

	gocron.ChangeLoc(timeLoc)
	sc := gocron.NewScheduler()
	sc.Every(interval).Hours().Do(func() {
		b.dispatcher.RefreshRosters(context.Background())
	})

	_, t := sc.NextRun()
	b.log.Debugf("Starting roster refresh scheduler with first run at [%s]", t)

	<-sc.Start()
}

// cacheSelfIdentity keeps our user id and name so mention detection doesn't
// have to look it up on every message
func (b *Bot) cacheSelfIdentity(rtm *slack.RTM) {
	b.selfID = rtm.GetInfo().User.ID
	b.selfName = rtm.GetInfo().User.Name

	b.log.Debugf("Caching self id [%s] and self name [%s]", b.selfID, b.selfName)
}

// processMessageEvent routes a message to a command invocation if it matches
// the command surface. Messages from "us", acknowledgement replies and
// non-plain subtypes (edits, deletions) are ignored
func (b *Bot) processMessageEvent(e *slack.MessageEvent) {
	if e.ReplyTo > 0 || e.SubType != "" || e.User == b.selfID || e.BotID != "" {
		return
	}

	text, directed := b.stripSelfMention(e.Text)
	if !directed {
		directed = strings.HasPrefix(e.Channel, string(directMessageIDPrefix))
	}

	if ci, ok := routeMessage(text, e.Channel, e.User, directed); ok {
		go b.dispatcher.RunCommand(context.Background(), ci.name, ci.opts)
	}
}

// processReactionEvent maps a reaction added on a user's message to a vote on
// that user
func (b *Bot) processReactionEvent(e *slack.ReactionAddedEvent) {
	if e.User == b.selfID || e.ItemUser == "" {
		return
	}

	ci := routeReaction(e.Reaction, e.Item.Channel, e.ItemUser, e.User)
	go b.dispatcher.RunCommand(context.Background(), ci.name, ci.opts)
}

// stripSelfMention detects a message directed at "us" (<@selfID> or @name
// prefix) and strips the mention, leaving the command text
func (b *Bot) stripSelfMention(text string) (stripped string, directed bool) {
	r, err := regexp.Compile("^(<@" + b.selfID + ">|@?" + regexp.QuoteMeta(b.selfName) + "):? (.+)")
	if err != nil {
		return text, false
	}

	matches := r.FindStringSubmatch(text)
	if len(matches) == 3 {
		return matches[2], true
	}

	return text, false
}
