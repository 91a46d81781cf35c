package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"outage-bot/internal/outage"
)

// captionLimit is Telegram's maximum photo caption length.
const captionLimit = 1024

// produceTimeout bounds one whole reply: both retry budgets plus rendering.
const produceTimeout = 60 * time.Second

var htmlOpts = &tele.SendOptions{ParseMode: tele.ModeHTML}

// ReplyProducer builds one finished reply per command.
type ReplyProducer interface {
	Produce(ctx context.Context) (*outage.Reply, error)
}

// Bot handles the /dtek command. It carries no poller: updates arrive from
// the webhook handler via ProcessUpdate.
type Bot struct {
	bot *tele.Bot
	svc ReplyProducer
}

// New creates and configures the Telegram bot.
func New(token string, svc ReplyProducer) (*Bot, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:       token,
		Synchronous: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := &Bot{bot: b, svc: svc}
	b.Handle("/dtek", bot.handleDtek)

	if err := b.SetCommands([]tele.Command{
		{Text: "dtek", Description: "Графік відключень та стан світла"},
	}); err != nil {
		log.Printf("[bot] failed to set commands: %v", err)
	}

	return bot, nil
}

// ProcessUpdate feeds one webhook update into the handler chain.
func (b *Bot) ProcessUpdate(u tele.Update) {
	b.bot.ProcessUpdate(u)
}

func (b *Bot) handleDtek(c tele.Context) error {
	log.Printf("[bot] /dtek from user %d (@%s)", c.Sender().ID, c.Sender().Username)

	if err := c.Notify(tele.Typing); err != nil {
		log.Printf("[bot] typing notify failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), produceTimeout)
	defer cancel()

	reply, err := b.svc.Produce(ctx)
	if err != nil {
		log.Printf("[bot] /dtek failed: %v", err)
		return c.Send(msgError)
	}

	// Photo captions cap at 1024 characters; longer texts go as a separate
	// message after the photo.
	if reply.Image != nil && utf8.RuneCountInString(reply.Text) < captionLimit {
		photo := &tele.Photo{
			File:    tele.FromReader(bytes.NewReader(reply.Image)),
			Caption: reply.Text,
		}
		return c.Send(photo, htmlOpts)
	}

	if reply.Image != nil {
		if err := c.Send(&tele.Photo{File: tele.FromReader(bytes.NewReader(reply.Image))}); err != nil {
			log.Printf("[bot] photo send failed, continuing with text: %v", err)
		}
	}
	return c.Send(reply.Text, htmlOpts)
}
