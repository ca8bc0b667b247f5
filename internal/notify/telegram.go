// Package notify delivers analyzer findings to Telegram subscribers.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/betform/betform/internal/config"
)

// sender is the slice of the bot API the notifier needs; the real client and
// test fakes both satisfy it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends recommendation digests to a fixed set of chats. Sends are
// paced to respect Telegram rate limits and wrapped in a circuit breaker so
// a dead bot token cannot stall a worker run.
type Notifier struct {
	bot     sender
	chatIDs []int64
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New connects to the Telegram bot API. Returns nil when no token is
// configured, which disables delivery.
func New(cfg config.TelegramConfig) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	log.Info().Str("bot", bot.Self.UserName).Int("chats", len(cfg.ChatIDs)).
		Msg("Telegram notifier ready")
	return newNotifier(bot, cfg.ChatIDs), nil
}

func newNotifier(bot sender, chatIDs []int64) *Notifier {
	settings := gobreaker.Settings{Name: "telegram"}
	settings.Interval = 60 * time.Second
	settings.Timeout = 60 * time.Second
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}

	return &Notifier{
		bot:     bot,
		chatIDs: chatIDs,
		// One send per 100ms, the pacing the bot layer uses for
		// opportunity notifications.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// SendRecommendations delivers one digest message per chat. Failures are
// logged per chat and the first one is returned; the caller treats delivery
// as best-effort.
func (n *Notifier) SendRecommendations(ctx context.Context, recs []string) error {
	text := FormatRecommendations(recs)

	var firstErr error
	for _, chatID := range n.chatIDs {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}
		_, err := n.breaker.Execute(func() (any, error) {
			msg := tgbotapi.NewMessage(chatID, text)
			return n.bot.Send(msg)
		})
		if err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send recommendations")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// FormatRecommendations renders the digest message body.
func FormatRecommendations(recs []string) string {
	var sb strings.Builder
	sb.WriteString("Betting rule review\n")
	if len(recs) == 0 {
		sb.WriteString("\nNo specific recommendations based on current data patterns.")
		return sb.String()
	}
	for _, rec := range recs {
		sb.WriteString("\n")
		sb.WriteString(rec)
		sb.WriteString("\n")
	}
	return sb.String()
}
