package domain

import "testing"

func TestAccessPolicy(t *testing.T) {
	shipment := &Shipment{TrackingNumber: "SC26082912345", OwnerID: "owner-1"}

	cases := []struct {
		name      string
		actor     Actor
		wantRead  bool
		wantWrite bool
	}{
		{"owner", Actor{ID: "owner-1"}, true, false},
		{"admin", Actor{ID: "admin-1", IsAdmin: true}, true, true},
		{"admin who also owns", Actor{ID: "owner-1", IsAdmin: true}, true, true},
		{"stranger", Actor{ID: "other-9"}, false, false},
		{"anonymous", Actor{}, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRead(tc.actor, shipment); got != tc.wantRead {
				t.Errorf("CanRead = %v, want %v", got, tc.wantRead)
			}
			if got := CanWrite(tc.actor, shipment); got != tc.wantWrite {
				t.Errorf("CanWrite = %v, want %v", got, tc.wantWrite)
			}
		})
	}
}

func TestShipmentStatusValid(t *testing.T) {
	for _, s := range []ShipmentStatus{StatusProcessing, StatusInTransit, StatusOutForDelivery, StatusDelivered, StatusException} {
		if !s.Valid() {
			t.Errorf("%q reported invalid", s)
		}
	}
	for _, s := range []ShipmentStatus{"", "Lost", "delivered", "IN TRANSIT"} {
		if s.Valid() {
			t.Errorf("%q reported valid", s)
		}
	}
}
