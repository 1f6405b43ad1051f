package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. Email is the unique identity. The role
// model is binary: admins have full read/write over all shipments, customers
// may create and read only their own.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IsAdmin      bool      `json:"is_admin" bson:"is_admin"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Actor is the resolved identity performing a request.
type Actor struct {
	ID      string
	IsAdmin bool
}

// CanRead reports whether the actor may read the shipment through an
// authenticated endpoint. The anonymous tracking-number lookup bypasses this
// check entirely: knowledge of the number is the capability.
func CanRead(actor Actor, s *Shipment) bool {
	return actor.IsAdmin || actor.ID == s.OwnerID
}

// CanWrite reports whether the actor may author tracking events for the
// shipment. Only admins record events or change status.
func CanWrite(actor Actor, s *Shipment) bool {
	return actor.IsAdmin
}
