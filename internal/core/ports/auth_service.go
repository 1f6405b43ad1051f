package ports

import (
	"context"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

type AuthService interface {
	// Register creates a customer account. Admin accounts are seeded at
	// startup, never self-registered.
	Register(ctx context.Context, email, password, name, phone string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
