package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub ledger (implements ShipmentRepository and EventRepository,
// shared by shipment and event service tests)
// ---------------------------------------------------------------------------

type stubLedger struct {
	shipments map[string]*domain.Shipment
	events    map[string][]*domain.TrackingEvent

	createCalls int
	dupsLeft    int   // Create returns ErrDuplicateTrackingNumber this many times
	createErr   error // if set, Create returns this error
	appendErr   error // if set, Append returns this error
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		shipments: make(map[string]*domain.Shipment),
		events:    make(map[string][]*domain.TrackingEvent),
	}
}

func (l *stubLedger) Create(_ context.Context, s *domain.Shipment, seed *domain.TrackingEvent) error {
	l.createCalls++
	if l.dupsLeft > 0 {
		l.dupsLeft--
		return domain.ErrDuplicateTrackingNumber
	}
	if l.createErr != nil {
		return l.createErr
	}
	if _, exists := l.shipments[s.TrackingNumber]; exists {
		return domain.ErrDuplicateTrackingNumber
	}

	// Shipment and seed event commit together, mirroring the transactional
	// mongo implementation.
	clone := *s
	l.shipments[s.TrackingNumber] = &clone
	seedClone := *seed
	seedClone.ID = l.nextEventID(s.TrackingNumber)
	l.events[s.TrackingNumber] = []*domain.TrackingEvent{&seedClone}
	return nil
}

func (l *stubLedger) FindByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Shipment, error) {
	s, ok := l.shipments[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	clone := *s
	return &clone, nil
}

func (l *stubLedger) ListByOwner(_ context.Context, ownerID string) ([]*domain.Shipment, error) {
	var out []*domain.Shipment
	for _, s := range l.shipments {
		if ownerID != "" && s.OwnerID != ownerID {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (l *stubLedger) Append(_ context.Context, event *domain.TrackingEvent, statusChanged bool, updatedAt time.Time) (*domain.TrackingEvent, error) {
	if l.appendErr != nil {
		return nil, l.appendErr
	}
	s, ok := l.shipments[event.TrackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}

	clone := *event
	clone.ID = l.nextEventID(event.TrackingNumber)
	l.events[event.TrackingNumber] = append(l.events[event.TrackingNumber], &clone)
	if statusChanged {
		s.Status = event.Status
		s.UpdatedAt = updatedAt
	}
	result := clone
	return &result, nil
}

func (l *stubLedger) ListByShipment(_ context.Context, trackingNumber string, order ports.SortOrder) ([]*domain.TrackingEvent, error) {
	events := l.events[trackingNumber]
	out := make([]*domain.TrackingEvent, len(events))
	for i, ev := range events {
		clone := *ev
		if order == ports.Descending {
			out[len(events)-1-i] = &clone
		} else {
			out[i] = &clone
		}
	}
	return out, nil
}

func (l *stubLedger) nextEventID(trackingNumber string) string {
	return fmt.Sprintf("ev-%s-%d", trackingNumber, len(l.events[trackingNumber])+1)
}

// ---------------------------------------------------------------------------
// Stub tracking cache
// ---------------------------------------------------------------------------

type stubCache struct {
	entries     map[string]*ports.TrackingDetail
	getErr      error
	setErr      error
	sets        int
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*ports.TrackingDetail)}
}

func (c *stubCache) Get(_ context.Context, trackingNumber string) (*ports.TrackingDetail, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[trackingNumber], nil
}

func (c *stubCache) Set(_ context.Context, trackingNumber string, detail *ports.TrackingDetail) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[trackingNumber] = detail
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, trackingNumber string) error {
	c.invalidated = append(c.invalidated, trackingNumber)
	delete(c.entries, trackingNumber)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var trackingNumberPattern = regexp.MustCompile(`^SC\d{6}\d{5}$`)

func minimalInput(ownerID string) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		OwnerID:         ownerID,
		Sender:          ports.ContactInput{Name: "Ada Byron", Phone: "+4420123456"},
		Receiver:        ports.ContactInput{Name: "Grace Hopper", Phone: "+12025550101"},
		PickupAddress:   "1 Lovelace Street, London",
		DeliveryAddress: "9 Navy Yard, Arlington",
		Weight:          2.5,
		Description:     "books",
	}
}

func newShipmentService(ledger *stubLedger, cache *stubCache) *ShipmentService {
	return NewShipmentService(ledger, ledger, cache, discardLogger)
}

// ---------------------------------------------------------------------------
// CreateShipment tests
// ---------------------------------------------------------------------------

func TestShipmentService_Create_Success(t *testing.T) {
	ledger := newStubLedger()
	svc := newShipmentService(ledger, newStubCache())

	result, err := svc.CreateShipment(context.Background(), minimalInput("user_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !trackingNumberPattern.MatchString(result.TrackingNumber) {
		t.Errorf("tracking number format wrong: %s", result.TrackingNumber)
	}
	wantDate := time.Now().UTC().Format("060102")
	if !strings.HasPrefix(result.TrackingNumber, "SC"+wantDate) {
		t.Errorf("tracking number %s missing today's date component %s", result.TrackingNumber, wantDate)
	}
	if result.Status != string(domain.StatusProcessing) {
		t.Errorf("expected status %q, got %q", domain.StatusProcessing, result.Status)
	}
	if result.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestShipmentService_Create_WritesSeedEvent(t *testing.T) {
	ledger := newStubLedger()
	svc := newShipmentService(ledger, newStubCache())

	result, err := svc.CreateShipment(context.Background(), minimalInput("user_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := ledger.events[result.TrackingNumber]
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 seed event, got %d", len(events))
	}
	seed := events[0]
	if seed.Status != domain.StatusProcessing {
		t.Errorf("seed event status = %q, want %q", seed.Status, domain.StatusProcessing)
	}
	if seed.Location != "1 Lovelace Street, London" {
		t.Errorf("seed event location = %q, want pickup address", seed.Location)
	}
	if seed.Description != "awaiting pickup" {
		t.Errorf("seed event description = %q", seed.Description)
	}
	if seed.Timestamp.IsZero() {
		t.Error("seed event timestamp must not be zero")
	}
}

func TestShipmentService_Create_Validation(t *testing.T) {
	cases := map[string]func(*ports.CreateShipmentInput){
		"missing sender name":     func(in *ports.CreateShipmentInput) { in.Sender.Name = "" },
		"missing sender phone":    func(in *ports.CreateShipmentInput) { in.Sender.Phone = "" },
		"missing receiver name":   func(in *ports.CreateShipmentInput) { in.Receiver.Name = "" },
		"missing pickup address":  func(in *ports.CreateShipmentInput) { in.PickupAddress = "" },
		"missing delivery":        func(in *ports.CreateShipmentInput) { in.DeliveryAddress = "" },
		"zero weight":             func(in *ports.CreateShipmentInput) { in.Weight = 0 },
		"negative weight":         func(in *ports.CreateShipmentInput) { in.Weight = -1 },
		"missing owner":           func(in *ports.CreateShipmentInput) { in.OwnerID = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			ledger := newStubLedger()
			svc := newShipmentService(ledger, newStubCache())

			input := minimalInput("user_1")
			mutate(&input)

			_, err := svc.CreateShipment(context.Background(), input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if ledger.createCalls != 0 {
				t.Error("invalid input must not reach the repository")
			}
		})
	}
}

func TestShipmentService_Create_RetriesOnDuplicate(t *testing.T) {
	ledger := newStubLedger()
	ledger.dupsLeft = 2
	svc := newShipmentService(ledger, newStubCache())

	result, err := svc.CreateShipment(context.Background(), minimalInput("user_1"))
	if err != nil {
		t.Fatalf("expected retry to recover from duplicates: %v", err)
	}
	if ledger.createCalls != 3 {
		t.Errorf("expected 3 create attempts, got %d", ledger.createCalls)
	}
	if !trackingNumberPattern.MatchString(result.TrackingNumber) {
		t.Errorf("tracking number format wrong after retry: %s", result.TrackingNumber)
	}
}

func TestShipmentService_Create_RetryExhausted(t *testing.T) {
	ledger := newStubLedger()
	ledger.dupsLeft = 100
	svc := newShipmentService(ledger, newStubCache())

	_, err := svc.CreateShipment(context.Background(), minimalInput("user_1"))
	if err == nil {
		t.Fatal("expected terminal error after exhausted retries")
	}
	if !errors.Is(err, domain.ErrDuplicateTrackingNumber) {
		t.Errorf("terminal error should wrap the duplicate cause, got %v", err)
	}
	if ledger.createCalls != maxTrackingAttempts {
		t.Errorf("expected %d bounded attempts, got %d", maxTrackingAttempts, ledger.createCalls)
	}
}

func TestShipmentService_Create_RepoError(t *testing.T) {
	ledger := newStubLedger()
	ledger.createErr = errors.New("db unavailable")
	svc := newShipmentService(ledger, newStubCache())

	_, err := svc.CreateShipment(context.Background(), minimalInput("user_1"))
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
	if ledger.createCalls != 1 {
		t.Errorf("non-duplicate store errors must not be retried, got %d attempts", ledger.createCalls)
	}
}

// ---------------------------------------------------------------------------
// GetTracking tests
// ---------------------------------------------------------------------------

func TestShipmentService_GetTracking_NotFound(t *testing.T) {
	svc := newShipmentService(newStubLedger(), newStubCache())

	_, err := svc.GetTracking(context.Background(), "SC99999999999")
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestShipmentService_GetTracking_Success(t *testing.T) {
	ledger := newStubLedger()
	cache := newStubCache()
	svc := newShipmentService(ledger, cache)

	created, _ := svc.CreateShipment(context.Background(), minimalInput("user_1"))

	detail, err := svc.GetTracking(context.Background(), created.TrackingNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.TrackingNumber != created.TrackingNumber {
		t.Errorf("tracking number mismatch: %s", detail.TrackingNumber)
	}
	if detail.Sender != "Ada Byron" || detail.Receiver != "Grace Hopper" {
		t.Errorf("contact names wrong: %q / %q", detail.Sender, detail.Receiver)
	}
	if detail.Status != string(domain.StatusProcessing) {
		t.Errorf("status = %q", detail.Status)
	}
	if len(detail.TrackingEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(detail.TrackingEvents))
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}
}

func TestShipmentService_GetTracking_CacheHit(t *testing.T) {
	ledger := newStubLedger()
	cache := newStubCache()
	cache.entries["SC24010112345"] = &ports.TrackingDetail{
		TrackingNumber: "SC24010112345",
		Status:         string(domain.StatusInTransit),
	}
	svc := newShipmentService(ledger, cache)

	detail, err := svc.GetTracking(context.Background(), "SC24010112345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Status != string(domain.StatusInTransit) {
		t.Errorf("expected cached detail, got %+v", detail)
	}
}

func TestShipmentService_GetTracking_CacheFailureFallsThrough(t *testing.T) {
	ledger := newStubLedger()
	cache := newStubCache()
	svc := newShipmentService(ledger, cache)

	created, _ := svc.CreateShipment(context.Background(), minimalInput("user_1"))
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	detail, err := svc.GetTracking(context.Background(), created.TrackingNumber)
	if err != nil {
		t.Fatalf("cache failure must not fail the lookup: %v", err)
	}
	if detail.TrackingNumber != created.TrackingNumber {
		t.Errorf("tracking number mismatch: %s", detail.TrackingNumber)
	}
}

// ---------------------------------------------------------------------------
// GetShipment authorization tests
// ---------------------------------------------------------------------------

func TestShipmentService_GetShipment_Policy(t *testing.T) {
	ledger := newStubLedger()
	svc := newShipmentService(ledger, newStubCache())
	created, _ := svc.CreateShipment(context.Background(), minimalInput("user_1"))

	cases := []struct {
		name      string
		actor     domain.Actor
		forbidden bool
	}{
		{"owner reads own", domain.Actor{ID: "user_1"}, false},
		{"admin reads any", domain.Actor{ID: "admin_1", IsAdmin: true}, false},
		{"stranger forbidden", domain.Actor{ID: "user_2"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detail, err := svc.GetShipment(context.Background(), created.TrackingNumber, tc.actor)
			if tc.forbidden {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if detail.OwnerID != "user_1" {
				t.Errorf("owner id = %q", detail.OwnerID)
			}
		})
	}
}

func TestShipmentService_GetShipment_NotFound(t *testing.T) {
	svc := newShipmentService(newStubLedger(), newStubCache())

	_, err := svc.GetShipment(context.Background(), "SC00000000000", domain.Actor{ID: "user_1", IsAdmin: true})
	if !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListShipments tests
// ---------------------------------------------------------------------------

func TestShipmentService_List_Scoping(t *testing.T) {
	ledger := newStubLedger()
	svc := newShipmentService(ledger, newStubCache())

	_, _ = svc.CreateShipment(context.Background(), minimalInput("user_1"))
	_, _ = svc.CreateShipment(context.Background(), minimalInput("user_1"))
	_, _ = svc.CreateShipment(context.Background(), minimalInput("user_2"))

	own, err := svc.ListShipments(context.Background(), domain.Actor{ID: "user_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("customer should see 2 own shipments, got %d", len(own))
	}

	all, err := svc.ListShipments(context.Background(), domain.Actor{ID: "admin", IsAdmin: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin should see all 3 shipments, got %d", len(all))
	}
}
