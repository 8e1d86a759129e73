package services

import (
	"context"
	"errors"
	"testing"

	"peerchat/internal/models"
)

func TestSuspendUserNotifiesAdminsAndTarget(t *testing.T) {
	store := newFakeStore()
	users := &fakeBroadcaster{}
	admins := &fakeBroadcaster{}
	svc := NewAdminService(store, users, admins)

	user, err := svc.SuspendUser(context.Background(), 9, 4, true)
	if err != nil {
		t.Fatalf("SuspendUser returned error: %v", err)
	}
	if user.SuspendedAt == nil {
		t.Error("returned user not marked suspended")
	}

	kinds := admins.broadcastKinds()
	if len(kinds) != 1 || kinds[0] != models.EventAdminUserSuspended {
		t.Fatalf("admin broadcasts = %v, want [%s]", kinds, models.EventAdminUserSuspended)
	}
	adminEv := admins.broadcasts[0].data.(models.AdminUserSuspendedEvent)
	if adminEv.UserID != 4 || !adminEv.Suspended || adminEv.SuspendedBy != 9 {
		t.Errorf("admin event = %+v", adminEv)
	}

	targetEvents := users.sentTo(4)
	if len(targetEvents) != 1 || targetEvents[0].kind != models.EventUserSuspended {
		t.Fatalf("target deliveries = %+v, want one user_suspended event", targetEvents)
	}
}

func TestSuspendUserStoreFailureEmitsNothing(t *testing.T) {
	store := newFakeStore()
	store.suspendErr = errors.New("store unavailable")
	users := &fakeBroadcaster{}
	admins := &fakeBroadcaster{}
	svc := NewAdminService(store, users, admins)

	if _, err := svc.SuspendUser(context.Background(), 9, 4, true); err == nil {
		t.Fatal("expected error from failed suspension")
	}
	if len(admins.broadcasts) != 0 || len(users.sends) != 0 {
		t.Error("failed suspension still produced events")
	}
}
