package delivery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"repo-relay/internal/model"
	"repo-relay/pkg/chat"
	"repo-relay/pkg/log"
)

type fakeSender struct {
	fail  map[string]error
	block map[string]bool
	sent  []model.RenderedMessage
}

func (f *fakeSender) Send(ctx context.Context, channel, text string) error {
	if f.block[channel] {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := f.fail[channel]; err != nil {
		return err
	}
	f.sent = append(f.sent, model.RenderedMessage{Channel: channel, Text: text})
	return nil
}

func TestDeliverAllSwallowsFailures(t *testing.T) {
	sender := &fakeSender{
		fail: map[string]error{
			"#gone":   fmt.Errorf("%w: not joined", chat.ErrUnreachable),
			"#broken": errors.New("connection reset"),
		},
		block: map[string]bool{"#slow": true},
	}
	sink := New(sender, 20*time.Millisecond, log.NewNop())

	msgs := []model.RenderedMessage{
		{Channel: "#a", Text: "one"},
		{Channel: "#gone", Text: "two"},
		{Channel: "#slow", Text: "three"},
		{Channel: "#broken", Text: "four"},
		{Channel: "#b", Text: "five"},
	}

	start := time.Now()
	sent := sink.DeliverAll(context.Background(), msgs)

	assert.Equal(t, 2, sent)
	assert.Equal(t, []model.RenderedMessage{{Channel: "#a", Text: "one"}, {Channel: "#b", Text: "five"}}, sender.sent)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewDefaultsTimeout(t *testing.T) {
	sink := New(&fakeSender{}, 0, log.NewNop())
	assert.Equal(t, defaultSendTimeout, sink.timeout)
}
