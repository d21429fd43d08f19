// Package category learns per-user mappings from raw statement
// descriptions to expense categories, so imported rows arrive
// pre-categorized.
package category

import (
	"context"

	"github.com/google/uuid"
)

// Fallback is assigned to imported expenses no mapping matches.
const Fallback = "other"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	FindCategory(ctx context.Context, userID uuid.UUID, rawDescription string) (string, error)
	CreateMapping(ctx context.Context, userID uuid.UUID, rawPattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category mapped to the raw description, or the
// fallback when nothing matches.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, rawDescription string) (string, error) {
	c, err := s.repo.FindCategory(ctx, userID, rawDescription)
	if err != nil {
		return "", err
	}

	if c == "" {
		return Fallback, nil
	}

	return c, nil
}

// Learn remembers a new mapping between a raw pattern and a category.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, rawPattern, category string) error {
	return s.repo.CreateMapping(ctx, userID, rawPattern, category)
}
