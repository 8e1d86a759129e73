package services

import (
	"context"
	"errors"
	"testing"

	"peerchat/internal/models"
)

func newPresenceFixture() (*fakeStore, *fakeBroadcaster, *fakeBroadcaster, *PresenceService) {
	store := newFakeStore()
	users := &fakeBroadcaster{}
	admins := &fakeBroadcaster{}
	svc := NewPresenceService(store, users, admins)
	return store, users, admins, svc
}

func TestUserConnectedBroadcastsFullOnlineSet(t *testing.T) {
	store, users, admins, svc := newPresenceFixture()
	users.online = []int{1, 2}

	svc.UserConnected(context.Background(), 2)

	if len(users.broadcasts) != 2 {
		t.Fatalf("user broadcasts = %d, want 2 (online_users + user_status)", len(users.broadcasts))
	}

	onlineEv := users.broadcasts[0]
	if onlineEv.kind != models.EventOnlineUsers {
		t.Fatalf("first broadcast kind = %q, want %q", onlineEv.kind, models.EventOnlineUsers)
	}
	payload := onlineEv.data.(models.OnlineUsersPayload)
	if len(payload.UserIDs) != 2 {
		t.Errorf("online set = %v, want both connected ids", payload.UserIDs)
	}

	statusEv := users.broadcasts[1]
	if statusEv.kind != models.EventUserStatus {
		t.Fatalf("second broadcast kind = %q, want %q", statusEv.kind, models.EventUserStatus)
	}
	status := statusEv.data.(models.UserStatusEvent)
	if status.UserID != 2 || !status.Online {
		t.Errorf("status event = %+v, want user 2 online", status)
	}

	// The admin audience sees a mirrored status event.
	kinds := admins.broadcastKinds()
	if len(kinds) != 1 || kinds[0] != models.EventAdminUserStatus {
		t.Errorf("admin broadcasts = %v, want [%s]", kinds, models.EventAdminUserStatus)
	}

	// Durable presence write happened before the broadcast went out.
	if len(store.presenceLog) != 1 || !store.presenceLog[0].online || store.presenceLog[0].userID != 2 {
		t.Errorf("presence writes = %+v, want online write for user 2", store.presenceLog)
	}
}

func TestUserDisconnectedBroadcastsOffline(t *testing.T) {
	store, users, admins, svc := newPresenceFixture()
	users.online = []int{1}

	svc.UserDisconnected(context.Background(), 2)

	status := users.broadcasts[1].data.(models.UserStatusEvent)
	if status.UserID != 2 || status.Online {
		t.Errorf("status event = %+v, want user 2 offline", status)
	}
	if len(admins.broadcasts) != 1 {
		t.Errorf("admin broadcasts = %d, want 1", len(admins.broadcasts))
	}
	if len(store.presenceLog) != 1 || store.presenceLog[0].online {
		t.Errorf("presence writes = %+v, want offline write", store.presenceLog)
	}
}

func TestPresenceStoreFailureDoesNotSuppressBroadcast(t *testing.T) {
	store, users, admins, svc := newPresenceFixture()
	store.presenceErr = errors.New("store unavailable")

	svc.UserConnected(context.Background(), 1)

	if len(users.broadcasts) != 2 {
		t.Errorf("user broadcasts = %d, want 2 despite store failure", len(users.broadcasts))
	}
	if len(admins.broadcasts) != 1 {
		t.Errorf("admin broadcasts = %d, want 1 despite store failure", len(admins.broadcasts))
	}
}

func TestPresenceBroadcastIsIdempotentForUnchangedSet(t *testing.T) {
	_, users, _, svc := newPresenceFixture()
	users.online = []int{1, 2}

	svc.UserConnected(context.Background(), 2)
	first := users.broadcasts[0].data.(models.OnlineUsersPayload)

	users.broadcasts = nil
	svc.UserConnected(context.Background(), 2)
	second := users.broadcasts[0].data.(models.OnlineUsersPayload)

	if len(first.UserIDs) != len(second.UserIDs) {
		t.Errorf("repeat broadcast changed the set: %v vs %v", first.UserIDs, second.UserIDs)
	}
}
