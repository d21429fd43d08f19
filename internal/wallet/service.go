package wallet

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=wallet
type Repository interface {
	CreateWallet(ctx context.Context, w *Wallet) error
	GetWallet(ctx context.Context, id uuid.UUID) (*Wallet, error)
	ListWallets(ctx context.Context, userID uuid.UUID) ([]*Wallet, error)
	UpdateWallet(ctx context.Context, w *Wallet) error

	// DeleteWallet removes the wallet together with every transaction
	// referencing it, atomically.
	DeleteWallet(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   uuid.UUID
	Name     string
	ImageURL string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Wallet, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameMissing
	}

	w := &Wallet{
		UserID:   params.UserID,
		Name:     name,
		ImageURL: params.ImageURL,
	}
	if err := s.repo.CreateWallet(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	return s.repo.GetWallet(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Wallet, error) {
	return s.repo.ListWallets(ctx, userID)
}

type UpdateParams struct {
	Name     *string
	ImageURL *string
}

// Update changes the descriptive fields of a wallet. The aggregate fields
// belong to the ledger engine and are never touched here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Wallet, error) {
	w, err := s.repo.GetWallet(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, ErrNameMissing
		}

		w.Name = name
	}

	if params.ImageURL != nil {
		w.ImageURL = *params.ImageURL
	}

	if err := s.repo.UpdateWallet(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteWallet(ctx, id)
}
