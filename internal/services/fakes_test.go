package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"peerchat/internal/models"

	"github.com/google/uuid"
)

// fakeBroadcaster records every delivery attempt so tests can assert on
// exact fan-out targets.
type sentEvent struct {
	userID int
	kind   string
	data   any
}

type fakeBroadcaster struct {
	mu         sync.Mutex
	online     []int
	sends      []sentEvent
	broadcasts []sentEvent
}

func (f *fakeBroadcaster) Send(userID int, kind string, data any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentEvent{userID: userID, kind: kind, data: data})
	return true
}

func (f *fakeBroadcaster) BroadcastAll(kind string, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, sentEvent{kind: kind, data: data})
}

func (f *fakeBroadcaster) OnlineUserIDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.online...)
}

func (f *fakeBroadcaster) sentTo(userID int) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEvent
	for _, ev := range f.sends {
		if ev.userID == userID {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakeBroadcaster) broadcastKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kinds []string
	for _, ev := range f.broadcasts {
		kinds = append(kinds, ev.kind)
	}
	return kinds
}

type presenceWrite struct {
	userID int
	online bool
}

// fakeStore satisfies the repository interfaces with injectable failures.
// persisted signals each successful create so tests can wait out the
// router's asynchronous dispatch.
type fakeStore struct {
	mu            sync.Mutex
	nextMessageID int
	messages      map[int]*models.ChatMessage
	reactions     []*models.Reaction
	presenceLog   []presenceWrite
	counts        map[int]int
	suspended     map[int]bool

	createMessageErr error
	reactionErr      error
	counterErr       error
	presenceErr      error
	suspendErr       error

	persisted chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		messages:  make(map[int]*models.ChatMessage),
		counts:    make(map[int]int),
		suspended: make(map[int]bool),
		persisted: make(chan struct{}, 16),
	}
}

func (f *fakeStore) CreateMessage(ctx context.Context, msg *models.NewMessage) (*models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createMessageErr != nil {
		return nil, f.createMessageErr
	}
	f.nextMessageID++
	created := &models.ChatMessage{
		ID:         f.nextMessageID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		Type:       msg.Type,
		FileName:   msg.FileName,
		Duration:   msg.Duration,
		ReplyToID:  msg.ReplyToID,
		CreatedAt:  time.Now(),
	}
	f.messages[created.ID] = created
	f.persisted <- struct{}{}
	return created, nil
}

func (f *fakeStore) GetMessageByID(ctx context.Context, id int) (*models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d not found", id)
	}
	return msg, nil
}

func (f *fakeStore) CreateReaction(ctx context.Context, emoji string, userID, messageID int) (*models.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reactionErr != nil {
		return nil, f.reactionErr
	}
	reaction := &models.Reaction{
		ID:        uuid.New(),
		Emoji:     emoji,
		UserID:    userID,
		MessageID: messageID,
		CreatedAt: time.Now(),
	}
	f.reactions = append(f.reactions, reaction)
	f.persisted <- struct{}{}
	return reaction, nil
}

func (f *fakeStore) SetPresence(ctx context.Context, userID int, online bool, lastActive time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.presenceErr != nil {
		return f.presenceErr
	}
	f.presenceLog = append(f.presenceLog, presenceWrite{userID: userID, online: online})
	return nil
}

func (f *fakeStore) IncrementMessageCount(ctx context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counterErr != nil {
		return f.counterErr
	}
	f.counts[userID]++
	return nil
}

func (f *fakeStore) SetSuspended(ctx context.Context, userID int, suspended bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.suspendErr != nil {
		return nil, f.suspendErr
	}
	f.suspended[userID] = suspended
	user := &models.User{ID: userID, Role: models.RoleUser}
	if suspended {
		now := time.Now()
		user.SuspendedAt = &now
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeStore) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeStore) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeStore) reactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reactions)
}

func (f *fakeStore) seedMessage(senderID, receiverID int) *models.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMessageID++
	msg := &models.ChatMessage{
		ID:         f.nextMessageID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    "seed",
		Type:       models.MessageTypeText,
		CreatedAt:  time.Now(),
	}
	f.messages[msg.ID] = msg
	return msg
}
