// Cinescope - Movie Discovery and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package watchlist

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinescope/internal/logging"
)

// TopicUpdated carries one Event per watchlist change.
const TopicUpdated = "watchlist.updated"

// Event describes a watchlist change.
type Event struct {
	UserID  int       `json:"user_id"`
	MovieID int       `json:"movie_id"`
	Added   bool      `json:"added"`
	IDs     []int     `json:"ids"`
	At      time.Time `json:"at"`
}

// Events is an in-process pub/sub for watchlist changes.
type Events struct {
	pubsub *gochannel.GoChannel
}

// NewEvents creates the event bus. Messages published while nobody is
// subscribed are dropped. Publish waits for subscribers to ack, which keeps
// per-user events in order.
func NewEvents() *Events {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger("watchlist-events"))
	return &Events{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		}, logger),
	}
}

// Publish sends ev on TopicUpdated.
func (e *Events) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal watchlist event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("user_id", strconv.Itoa(ev.UserID))
	return e.pubsub.Publish(TopicUpdated, msg)
}

// Subscribe streams decoded events until ctx is done. Every message is
// acked, including ones that fail to decode.
func (e *Events) Subscribe(ctx context.Context) (<-chan Event, error) {
	msgs, err := e.pubsub.Subscribe(ctx, TopicUpdated)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", TopicUpdated, err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for msg := range msgs {
			var ev Event
			decodeErr := json.Unmarshal(msg.Payload, &ev)
			msg.Ack()
			if decodeErr != nil {
				logging.Warn().Err(decodeErr).Str("message_uuid", msg.UUID).Msg("dropping malformed watchlist event")
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close shuts the bus down and closes every subscription.
func (e *Events) Close() error {
	return e.pubsub.Close()
}
