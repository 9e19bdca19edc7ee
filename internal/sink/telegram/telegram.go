// Package telegram pushes a chat notification for each lead through the
// Telegram Bot API.
package telegram

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"leadgate/internal/lead"
	logx "leadgate/pkg/logx"
)

const name = "telegram"

// Config holds the bot credentials. ChatID accepts a numeric chat id or
// an @channel username; the sink is inert when either field is empty.
type Config struct {
	Token    string
	ChatID   string
	Timezone string
}

type Sink struct {
	cfg     Config
	log     logx.Logger
	loc     *time.Location
	limiter *rate.Limiter

	mu  sync.Mutex
	bot *tele.Bot
}

// recipient adapts the configured chat id to telebot's Recipient
// interface without forcing it through an int64 parse.
type recipient string

func (r recipient) Recipient() string { return string(r) }

func New(cfg Config, log logx.Logger) *Sink {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Sink{
		cfg: cfg,
		log: log,
		loc: loadLocation(cfg.Timezone, log),
		// Telegram allows roughly one message per second per chat.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (s *Sink) Name() string { return name }

func (s *Sink) Attempt(ctx context.Context, rec lead.Record) bool {
	if strings.TrimSpace(s.cfg.Token) == "" || strings.TrimSpace(s.cfg.ChatID) == "" {
		s.log.Debug("telegram sink not configured, skipping")
		return false
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.log.Warn("telegram send cancelled while pacing", logx.Err(err))
		return false
	}

	b, err := s.client()
	if err != nil {
		s.log.Error("telegram bot init failed", logx.Err(err))
		return false
	}

	_, err = b.Send(recipient(s.cfg.ChatID), Message(rec, s.loc), &tele.SendOptions{
		ParseMode:             tele.ModeMarkdown,
		DisableWebPagePreview: true,
	})
	if err != nil {
		s.log.Error("telegram send failed", logx.Err(err))
		return false
	}

	s.log.Info("lead notification sent", logx.String("lead_id", rec.ID))
	return true
}

// client builds the bot once. Construction performs a getMe call, so it
// runs lazily on the first lead rather than at startup.
func (s *Sink) client() (*tele.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bot != nil {
		return s.bot, nil
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  s.cfg.Token,
		Client: &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	s.bot = b
	return b, nil
}

func loadLocation(tz string, log logx.Logger) *time.Location {
	if strings.TrimSpace(tz) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn("unknown timezone, falling back to UTC", logx.String("tz", tz), logx.Err(err))
		return time.UTC
	}
	return loc
}
