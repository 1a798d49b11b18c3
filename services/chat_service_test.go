package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestSendMessageRequiresContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	user := createTestUser(t, db, "alice")

	if _, err := svc.SendMessage("guild-1", user.ID, ""); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for empty content, got %v", err)
	}

	msg, err := svc.SendMessage("guild-1", user.ID, "anyone up for a review session?")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("expected message id assigned")
	}
}

func TestListMessagesCapsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db)
	user := createTestUser(t, db, "alice")

	for i := 0; i < 60; i++ {
		if _, err := svc.SendMessage("guild-1", user.ID, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	// Out-of-range limits fall back to the default of 50.
	messages, err := svc.ListMessages("guild-1", 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 50 {
		t.Fatalf("expected default limit 50, got %d", len(messages))
	}

	messages, err = svc.ListMessages("guild-1", 10)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(messages))
	}

	messages, err = svc.ListMessages("other-guild", 10)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages for other guild, got %d", len(messages))
	}
}

func TestMarkNotificationAsReadIsScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := svc.Notify(alice.ID, "achievement", "Unlocked: First Steps", "Earned your first points"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	notifs, err := svc.ListUserNotifications(alice.ID, 10)
	if err != nil {
		t.Fatalf("ListUserNotifications failed: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifs))
	}

	// Another user cannot mark it read.
	if err := svc.MarkAsRead(notifs[0].ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign notification, got %v", err)
	}

	if err := svc.MarkAsRead(notifs[0].ID, alice.ID); err != nil {
		t.Fatalf("MarkAsRead failed: %v", err)
	}
	notifs, err = svc.ListUserNotifications(alice.ID, 10)
	if err != nil {
		t.Fatalf("ListUserNotifications failed: %v", err)
	}
	if !notifs[0].IsRead {
		t.Fatal("expected notification marked read")
	}
}
