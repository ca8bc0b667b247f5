package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable type")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{}, nil
}

func TestSendRecommendations_OnePerChat(t *testing.T) {
	fake := &fakeSender{}
	n := newNotifier(fake, []int64{42, -100123})

	recs := []string{
		"1. Consider stopping bets on teams ranked in the bottom 3 (current win rate: 33.3%)",
	}
	require.NoError(t, n.SendRecommendations(context.Background(), recs))

	require.Len(t, fake.sent, 2)
	assert.Equal(t, int64(42), fake.sent[0].ChatID)
	assert.Equal(t, int64(-100123), fake.sent[1].ChatID)
	assert.Equal(t, fake.sent[0].Text, fake.sent[1].Text)
	assert.Contains(t, fake.sent[0].Text, "Betting rule review")
	assert.Contains(t, fake.sent[0].Text, recs[0])
}

func TestSendRecommendations_ReturnsFirstError(t *testing.T) {
	sendErr := errors.New("bad gateway")
	fake := &fakeSender{err: sendErr}
	n := newNotifier(fake, []int64{1, 2})

	err := n.SendRecommendations(context.Background(), nil)
	assert.ErrorIs(t, err, sendErr)
}

func TestSendRecommendations_CanceledContext(t *testing.T) {
	fake := &fakeSender{}
	n := newNotifier(fake, []int64{1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.SendRecommendations(ctx, nil)
	require.Error(t, err)
	assert.Empty(t, fake.sent)
}

func TestFormatRecommendations(t *testing.T) {
	recs := []string{
		"1. Consider stopping bets on teams ranked in the bottom 3",
		"3. Review bets against much stronger opponents",
	}
	text := FormatRecommendations(recs)
	assert.Equal(t, "Betting rule review\n\n"+recs[0]+"\n\n"+recs[1]+"\n", text)
}

func TestFormatRecommendations_Empty(t *testing.T) {
	text := FormatRecommendations(nil)
	assert.Equal(t, "Betting rule review\n\nNo specific recommendations based on current data patterns.", text)
}
