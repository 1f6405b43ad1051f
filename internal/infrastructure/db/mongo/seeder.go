package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// SeedAdmin creates the bootstrap admin account when it does not exist.
// Self-registration only produces customers, so this is the sole path that
// provisions an admin.
func SeedAdmin(ctx context.Context, users ports.UserRepository, email, password, name string, log zerolog.Logger) error {
	if email == "" || password == "" {
		log.Info().Msg("admin seed skipped: no credentials configured")
		return nil
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Debug().Str("email", email).Msg("admin account already exists, seeding skipped")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Concurrent instance may have seeded first.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("email", email).Msg("admin account seeded")
	return nil
}
