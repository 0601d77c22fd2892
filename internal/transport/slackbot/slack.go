// Package slackbot connects the bot to Slack over Socket Mode.
package slackbot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// Handler answers one inbound message.
type Handler interface {
	Handle(ctx context.Context, msg model.InboundMessage) (string, error)
}

// Poster posts a message to a channel.
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Listener receives app mentions and replies in their thread.
type Listener struct {
	client *socketmode.Client
	poster Poster
	bot    Handler
}

func NewListener(botToken, appToken string, bot Handler) (*Listener, error) {
	if botToken == "" || appToken == "" {
		return nil, fmt.Errorf("slack bot and app tokens are required")
	}
	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	return &Listener{
		client: socketmode.New(api),
		poster: api,
		bot:    bot,
	}, nil
}

// Run processes events until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	go l.consume(ctx)
	return l.client.RunContext(ctx)
}

func (l *Listener) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-l.client.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				logx.Info().Msg("connecting to Slack")
			case socketmode.EventTypeConnected:
				logx.Info().Msg("connected to Slack")
			case socketmode.EventTypeConnectionError:
				logx.Warn().Msg("Slack connection failed, retrying")
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					l.client.Ack(*evt.Request)
				}
				if mention, ok := apiEvent.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
					go l.HandleMention(ctx, mention)
				}
			}
		}
	}
}

// HandleMention answers one app mention in its thread.
func (l *Listener) HandleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	if ev == nil || ev.BotID != "" {
		return
	}
	msg := model.InboundMessage{
		Text:     StripMentions(ev.Text),
		Channel:  ev.Channel,
		TS:       ev.TimeStamp,
		ThreadTS: ev.ThreadTimeStamp,
	}
	reply, err := l.bot.Handle(ctx, msg)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", msg.ThreadID()).Msg("failed to handle mention")
		return
	}
	if reply == "" {
		return
	}

	threadTS := msg.ThreadTS
	if threadTS == "" {
		threadTS = msg.TS
	}
	if _, _, err := l.poster.PostMessageContext(ctx, msg.Channel,
		slack.MsgOptionText(reply, false),
		slack.MsgOptionTS(threadTS),
	); err != nil {
		logx.Error().Err(err).Str("thread_id", msg.ThreadID()).Msg("failed to post reply")
	}
}

var mentionPattern = regexp.MustCompile(`<@[A-Z0-9]+(\|[^>]*)?>`)

// StripMentions removes user mentions and collapses whitespace.
func StripMentions(text string) string {
	return strings.Join(strings.Fields(mentionPattern.ReplaceAllString(text, " ")), " ")
}
