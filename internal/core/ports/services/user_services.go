package services

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a user with a bcrypt password hash.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
}

// UserAuthSvc defines credential checks and identity resolution
type UserAuthSvc interface {
	// Authenticate returns the user when email and password match.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// ResolveActor loads company membership and approval for an authenticated user.
	ResolveActor(ctx context.Context, userID string) (*domain.Actor, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
