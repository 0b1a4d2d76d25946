package votescot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/alexandre-normand/votescot/brain"
	"github.com/alexandre-normand/votescot/librarian"
	"github.com/slack-go/slack"
)

var greetings = []string{
	"Hey there!",
	"Greetings, human!",
	"Yo!",
	"Salem!",
	"Privet!",
}

// newCommandSet builds the closed set of command descriptors, coupled with
// their validation and behavior. Called once at dispatcher construction
func (d *Dispatcher) newCommandSet() (commands map[CommandName]Command) {
	return map[CommandName]Command{
		CommandGreet: {
			Name:        CommandGreet,
			Usage:       "hello",
			Description: "Greeting",
			Action:      d.greetAction,
		},
		CommandVote: {
			Name:        CommandVote,
			Usage:       "<username>++ or <username>--",
			Description: "Processing vote",
			Validate: func(opts CommandOptions) bool {
				return opts.VotedUser != nil && (opts.Operator == OperatorUpvote || opts.Operator == OperatorDownvote)
			},
			Action: d.voteAction,
		},
		CommandUserScore: {
			Name:        CommandUserScore,
			Usage:       "score [for <username>]",
			Description: "Getting score",
			Validate: func(opts CommandOptions) bool {
				return opts.RequestedUser != nil && (opts.RequestedUser.ID != "" || opts.RequestedUser.Name != "")
			},
			Action: d.userScoreAction,
		},
		CommandLeaderboard: {
			Name:        CommandLeaderboard,
			Usage:       "leaderboard",
			Description: "Getting leaderboard",
			Action:      d.leaderboardAction,
		},
		CommandGetLibraries: {
			Name:        CommandGetLibraries,
			Usage:       "libraries <ios|android> <query>",
			Description: "Getting libraries",
			Validate: func(opts CommandOptions) bool {
				return opts.Platform != "" && opts.Query != ""
			},
			Action: d.getLibrariesAction,
		},
		CommandHelp: {
			Name:        CommandHelp,
			Usage:       "help",
			Description: "Getting help",
			Action:      d.helpAction,
		},
	}
}

func (d *Dispatcher) greetAction(ctx context.Context, opts CommandOptions) (err error) {
	greeting := fmt.Sprintf("@%s: %s", opts.User.Name, greetings[d.pickGreeting(len(greetings))])

	return d.messenger.Say(ctx, Message{ChannelID: opts.Channel.ID, Text: greeting})
}

func (d *Dispatcher) userScoreAction(ctx context.Context, opts CommandOptions) (err error) {
	var requestedUser *brain.User
	if opts.RequestedUser.ID != "" {
		requestedUser, err = d.resolver.ResolveUser(ctx, opts.RequestedUser.ID)
	} else {
		requestedUser, err = d.resolver.ResolveUserByName(ctx, opts.RequestedUser.Name)
	}

	if err != nil {
		return err
	}

	if requestedUser == nil {
		d.log.Debugf("Dropping score request: user [%s%s] unresolved", opts.RequestedUser.ID, opts.RequestedUser.Name)
		return nil
	}

	score, err := d.brain.GetUserScore(ctx, requestedUser.ID)
	if err != nil {
		return err
	}

	return d.messenger.Say(ctx, Message{
		ChannelID: opts.Channel.ID,
		Text:      fmt.Sprintf("@%s: your score is: %d", requestedUser.Name, score),
	})
}

func (d *Dispatcher) leaderboardAction(ctx context.Context, opts CommandOptions) (err error) {
	report, err := d.leaderboardReport(ctx)
	if err != nil {
		return err
	}

	return d.messenger.Say(ctx, Message{ChannelID: opts.Channel.ID, Text: report})
}

func (d *Dispatcher) getLibrariesAction(ctx context.Context, opts CommandOptions) (err error) {
	libraries, err := d.librarian.GetLibraries(ctx, opts.Platform, opts.Query)
	if err != nil {
		return err
	}

	message := Message{
		ChannelID: opts.Channel.ID,
		Text:      fmt.Sprintf("Unfortunately, no libraries were found for %q", opts.Query),
	}

	if len(libraries) > 0 {
		message.Text = fmt.Sprintf("These are some %s libraries I found for %q:", librarian.FormattedPlatform(opts.Platform), opts.Query)
		message.Attachments = libraryAttachments(libraries)
	}

	return d.messenger.Say(ctx, message)
}

func (d *Dispatcher) helpAction(ctx context.Context, opts CommandOptions) (err error) {
	var buffer bytes.Buffer
	buffer.WriteString("🤝 You can ask me any of these things:\n")

	// stable order, vote first since that's what everyone's here for
	for _, name := range []CommandName{CommandVote, CommandUserScore, CommandLeaderboard, CommandGetLibraries, CommandGreet, CommandHelp} {
		cmd := d.commands[name]
		buffer.WriteString(fmt.Sprintf("\t• `%s` - %s\n", cmd.Usage, cmd.Description))
	}

	return d.messenger.Say(ctx, Message{ChannelID: opts.Channel.ID, Text: buffer.String()})
}

// libraryAttachments maps search results to slack attachments, skipping
// fields a result doesn't carry
func libraryAttachments(libraries []librarian.Library) (attachments []slack.Attachment) {
	attachments = make([]slack.Attachment, 0, len(libraries))

	for _, library := range libraries {
		attachment := slack.Attachment{
			Fallback:  library.Title,
			Title:     library.Title,
			TitleLink: library.Link,
			Text:      library.Description,
		}

		if library.Stars > 0 {
			attachment.Fields = append(attachment.Fields, slack.AttachmentField{Title: "Stars", Value: strconv.Itoa(library.Stars), Short: true})
		}
		if library.PackageManager != "" {
			attachment.Fields = append(attachment.Fields, slack.AttachmentField{Title: "Package Manager", Value: library.PackageManager, Short: true})
		}
		if library.Source != "" {
			attachment.Fields = append(attachment.Fields, slack.AttachmentField{Title: "Source", Value: library.Source, Short: true})
		}
		if library.Category != "" {
			attachment.Fields = append(attachment.Fields, slack.AttachmentField{Title: "Category", Value: library.Category, Short: true})
		}

		attachments = append(attachments, attachment)
	}

	return attachments
}
