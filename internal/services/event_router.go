package services

import (
	"context"
	"encoding/json"
	"time"

	"peerchat/internal/models"
	"peerchat/pkg/logger"
)

const pipelineTimeout = 30 * time.Second

// EventRouter turns inbound frames into pipeline runs. It is stateless: the
// discriminator is decoded first and the full payload only once the kind is
// recognized. Anything malformed or unknown is dropped without a reply and
// without closing the sender's connection.
//
// Persisting kinds run on their own goroutine so the sender's read loop can
// take the next frame; the semaphore caps how many such runs are in flight
// at once, and a sender that saturates it waits in Dispatch.
type EventRouter struct {
	messages  *MessageService
	reactions *ReactionService
	users     Broadcaster
	inflight  chan struct{}
}

func NewEventRouter(messages *MessageService, reactions *ReactionService, users Broadcaster, maxInFlight int) *EventRouter {
	return &EventRouter{
		messages:  messages,
		reactions: reactions,
		users:     users,
		inflight:  make(chan struct{}, maxInFlight),
	}
}

func (r *EventRouter) Dispatch(senderID int, frame []byte) {
	var event models.InboundEvent
	if err := json.Unmarshal(frame, &event); err != nil {
		logger.Debug("Dropping undecodable frame from user %d", senderID)
		return
	}

	switch event.Type {
	case models.EventChatMessage:
		var payload models.ChatMessagePayload
		if err := json.Unmarshal(frame, &payload); err != nil {
			return
		}
		r.run(func(ctx context.Context) {
			r.messages.HandleChatMessage(ctx, senderID, &payload)
		})

	case models.EventReaction:
		var payload models.ReactionPayload
		if err := json.Unmarshal(frame, &payload); err != nil {
			return
		}
		r.run(func(ctx context.Context) {
			r.reactions.HandleReaction(ctx, senderID, &payload)
		})

	case models.EventTyping:
		// Relay only, never persisted. Offline receiver means the
		// indicator is simply dropped.
		var payload models.TypingPayload
		if err := json.Unmarshal(frame, &payload); err != nil {
			return
		}
		r.users.Send(payload.ReceiverID, models.EventTyping, payload)

	case models.EventMessageRead:
		// Relayed to the original sender of the acknowledged message.
		var payload models.ReadPayload
		if err := json.Unmarshal(frame, &payload); err != nil {
			return
		}
		r.users.Send(payload.SenderID, models.EventMessageRead, payload)

	default:
		logger.Debug("Dropping frame with unknown type %q from user %d", event.Type, senderID)
	}
}

func (r *EventRouter) run(fn func(ctx context.Context)) {
	r.inflight <- struct{}{}
	go func() {
		defer func() { <-r.inflight }()
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()
		fn(ctx)
	}()
}
