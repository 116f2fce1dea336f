package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

// Service exposes cart reads for the HTTP surface.
type Service interface {
	GetForUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type service struct {
	repo Repository
}

// NewService wires a cart service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

// GetForUser returns the user's cart, empty if none exists yet.
func (s *service) GetForUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return cart, nil
}
