package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) Notify(_ context.Context, _, _, _, _ string) error {
	s.calls++
	return s.err
}

type stubNotificationStore struct {
	records   []*domain.Notification
	insertErr error
}

func (s *stubNotificationStore) Insert(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	stored := *n
	stored.ID = fmt.Sprintf("notif-%d", len(s.records)+1)
	s.records = append(s.records, &stored)
	return &stored, nil
}

func (s *stubNotificationStore) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range s.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationStore) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range s.records {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func TestDispatch_SuccessPersistsRecord(t *testing.T) {
	notifier := &stubNotifier{}
	store := &stubNotificationStore{}
	svc := NewNotificationService(notifier, store, zerolog.Nop())

	svc.Dispatch(context.Background(), "user-1", "Shipment SC26082912345 update", "Status: Delivered", "SC26082912345")

	if notifier.calls != 1 {
		t.Fatalf("notifier called %d times, want 1", notifier.calls)
	}
	if len(store.records) != 1 {
		t.Fatalf("stored %d records, want 1", len(store.records))
	}
	rec := store.records[0]
	if rec.UserID != "user-1" || rec.TrackingNumber != "SC26082912345" {
		t.Errorf("record = %+v", rec)
	}
	if rec.IsRead {
		t.Error("new record must start unread")
	}
}

func TestDispatch_DeliveryFailureSkipsRecord(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("broker down")}
	store := &stubNotificationStore{}
	svc := NewNotificationService(notifier, store, zerolog.Nop())

	svc.Dispatch(context.Background(), "user-1", "title", "message", "SC26082912345")

	if len(store.records) != 0 {
		t.Fatalf("stored %d records after failed delivery, want 0", len(store.records))
	}
}

func TestDispatch_InsertFailureIsSwallowed(t *testing.T) {
	notifier := &stubNotifier{}
	store := &stubNotificationStore{insertErr: errors.New("write concern")}
	svc := NewNotificationService(notifier, store, zerolog.Nop())

	// Must not panic or surface: Dispatch has no error to return.
	svc.Dispatch(context.Background(), "user-1", "title", "message", "SC26082912345")

	if notifier.calls != 1 {
		t.Fatalf("notifier called %d times, want 1", notifier.calls)
	}
}

func TestMarkRead_ScopedToOwner(t *testing.T) {
	store := &stubNotificationStore{}
	svc := NewNotificationService(&stubNotifier{}, store, zerolog.Nop())

	svc.Dispatch(context.Background(), "user-1", "title", "message", "SC26082912345")
	id := store.records[0].ID

	if err := svc.MarkRead(context.Background(), id, "user-2"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("foreign MarkRead: got %v, want ErrNotificationNotFound", err)
	}
	if err := svc.MarkRead(context.Background(), id, "user-1"); err != nil {
		t.Fatalf("owner MarkRead: %v", err)
	}
	if !store.records[0].IsRead {
		t.Error("record not flagged read")
	}
}
