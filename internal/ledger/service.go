package ledger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/andredacosta/walletwise/internal/transaction"
	"github.com/andredacosta/walletwise/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger

// Repository runs ledger mutations. RunAtomic executes fn inside one
// atomic store transaction and transparently retries the WHOLE closure
// (reads included) when the commit hits a write conflict, so every
// attempt recomputes its deltas from fresh state.
type Repository interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context, store AtomicStore) error) error
}

// AtomicStore is the view of the store available inside RunAtomic. All
// reads and writes issued through it belong to the same transaction.
type AtomicStore interface {
	GetWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	UpdateWalletAggregates(ctx context.Context, id uuid.UUID, agg wallet.Aggregates) error

	GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	InsertTransaction(ctx context.Context, tx *transaction.Transaction) error
	UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// SumByWallet recomputes the aggregates from the full transaction set.
	SumByWallet(ctx context.Context, walletID uuid.UUID) (wallet.Aggregates, error)
}

// Uploader pushes an attached receipt image to durable storage and
// returns its URL.
type Uploader interface {
	Upload(ctx context.Context, content io.Reader, filename, folder string) (string, error)
}

type Service struct {
	repo     Repository
	uploader Uploader
}

func NewService(repo Repository, uploader Uploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

// ImageAttachment is a receipt image supplied with a save. It is uploaded
// before any ledger mutation; a failed upload aborts the whole save.
type ImageAttachment struct {
	Content  io.Reader
	Filename string
}

type SaveParams struct {
	ID          *uuid.UUID // nil = create, set = edit
	UserID      uuid.UUID
	WalletID    uuid.UUID
	Type        transaction.Type
	Amount      int64
	Category    string
	Date        time.Time
	Description string
	ImageURL    string
	Image       *ImageAttachment
}

func validate(params SaveParams) error {
	if params.Amount <= 0 {
		return transaction.ErrInvalidAmount
	}

	if !params.Type.Valid() {
		return transaction.ErrInvalidType
	}

	if params.WalletID == uuid.Nil {
		return transaction.ErrWalletRequired
	}

	if params.Type == transaction.TypeExpense && params.Category == "" {
		return transaction.ErrCategoryMissing
	}

	return nil
}

// Save creates a transaction (no ID) or edits an existing one (ID set),
// keeping the owning wallet's aggregates consistent in the same atomic
// commit. Wallets and transactions belonging to a different user are
// reported as not found, the same way the read endpoints hide them.
func (s *Service) Save(ctx context.Context, params SaveParams) (*transaction.Transaction, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	category := params.Category
	if params.Type == transaction.TypeIncome {
		category = transaction.IncomeCategory
	}

	imageURL := params.ImageURL

	if params.Image != nil {
		url, err := s.uploader.Upload(ctx, params.Image.Content, params.Image.Filename, "transactions")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		imageURL = url
	}

	if params.ID == nil {
		return s.create(ctx, params, category, imageURL)
	}

	return s.edit(ctx, *params.ID, params, category, imageURL)
}

func (s *Service) create(ctx context.Context, params SaveParams, category, imageURL string) (*transaction.Transaction, error) {
	tx := &transaction.Transaction{
		UserID:      params.UserID,
		WalletID:    params.WalletID,
		Type:        params.Type,
		Amount:      params.Amount,
		Category:    category,
		Date:        params.Date,
		Description: params.Description,
		ImageURL:    imageURL,
	}

	err := s.repo.RunAtomic(ctx, func(ctx context.Context, store AtomicStore) error {
		w, err := store.GetWallet(ctx, params.WalletID)
		if err != nil {
			return err
		}

		if w.UserID != params.UserID {
			return wallet.ErrNotFound
		}

		if params.Type == transaction.TypeExpense && w.Amount-params.Amount < 0 {
			return &InsufficientFundsError{Available: w.Amount}
		}

		if err := store.UpdateWalletAggregates(ctx, w.ID, apply(w.Aggregates(), params.Type, params.Amount)); err != nil {
			return err
		}

		return store.InsertTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) edit(ctx context.Context, id uuid.UUID, params SaveParams, category, imageURL string) (*transaction.Transaction, error) {
	var saved *transaction.Transaction

	err := s.repo.RunAtomic(ctx, func(ctx context.Context, store AtomicStore) error {
		existing, err := store.GetTransaction(ctx, id)
		if err != nil {
			return err
		}

		if existing.UserID != params.UserID {
			return transaction.ErrNotFound
		}

		next := *existing
		next.WalletID = params.WalletID
		next.Type = params.Type
		next.Amount = params.Amount
		next.Category = category
		next.Date = params.Date
		next.Description = params.Description

		if imageURL != "" {
			next.ImageURL = imageURL
		}

		ledgerChanged := existing.Type != params.Type ||
			existing.Amount != params.Amount ||
			existing.WalletID != params.WalletID

		// A field-only edit (description, date, category, image) leaves
		// the wallet aggregates alone.
		if !ledgerChanged {
			if err := store.UpdateTransaction(ctx, &next); err != nil {
				return err
			}

			saved = &next

			return nil
		}

		if err := s.revertReapply(ctx, store, existing, params); err != nil {
			return err
		}

		if err := store.UpdateTransaction(ctx, &next); err != nil {
			return err
		}

		saved = &next

		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// revertReapply undoes the existing transaction's effect on its wallet
// and applies the edited effect, on one wallet or across two. The funds
// check runs against the reversed balance when the wallet is unchanged
// and against the destination wallet's untouched balance when it moved,
// always before any write.
func (s *Service) revertReapply(ctx context.Context, store AtomicStore, existing *transaction.Transaction, params SaveParams) error {
	oldWallet, err := store.GetWallet(ctx, existing.WalletID)
	if err != nil {
		return fmt.Errorf("original wallet: %w", err)
	}

	reverted := revert(oldWallet.Aggregates(), existing.Type, existing.Amount)

	if existing.WalletID == params.WalletID {
		if params.Type == transaction.TypeExpense && reverted.Amount < params.Amount {
			return &InsufficientFundsError{Available: reverted.Amount}
		}

		// Single combined update: the last write to the wallet must be
		// the fully reconciled state, not an intermediate reversal.
		return store.UpdateWalletAggregates(ctx, oldWallet.ID,
			apply(reverted, params.Type, params.Amount))
	}

	newWallet, err := store.GetWallet(ctx, params.WalletID)
	if err != nil {
		return fmt.Errorf("destination wallet: %w", err)
	}

	if newWallet.UserID != params.UserID {
		return wallet.ErrNotFound
	}

	if params.Type == transaction.TypeExpense && newWallet.Amount < params.Amount {
		return &InsufficientFundsError{Available: newWallet.Amount}
	}

	if err := store.UpdateWalletAggregates(ctx, oldWallet.ID, reverted); err != nil {
		return err
	}

	return store.UpdateWalletAggregates(ctx, newWallet.ID,
		apply(newWallet.Aggregates(), params.Type, params.Amount))
}

// Delete erases a transaction's historical effect from its wallet and
// removes the transaction, in one atomic commit. Removing a transaction
// only ever undoes its own contribution, so no funds check applies.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.RunAtomic(ctx, func(ctx context.Context, store AtomicStore) error {
		tx, err := store.GetTransaction(ctx, id)
		if err != nil {
			return err
		}

		w, err := store.GetWallet(ctx, tx.WalletID)
		if err != nil {
			return err
		}

		if err := store.UpdateWalletAggregates(ctx, w.ID, revert(w.Aggregates(), tx.Type, tx.Amount)); err != nil {
			return err
		}

		return store.DeleteTransaction(ctx, id)
	})
}

// Drift compares a wallet's cached aggregates against a full
// recomputation from its transaction set.
type Drift struct {
	Cached     wallet.Aggregates
	Recomputed wallet.Aggregates
}

func (d Drift) Consistent() bool {
	return d.Cached == d.Recomputed
}

// VerifyWallet recomputes the wallet's aggregates from scratch and
// reports both views. The cached values are a materialized view of the
// transaction facts; any drift means a past mutation went half-applied.
func (s *Service) VerifyWallet(ctx context.Context, walletID uuid.UUID) (Drift, error) {
	var drift Drift

	err := s.repo.RunAtomic(ctx, func(ctx context.Context, store AtomicStore) error {
		w, err := store.GetWallet(ctx, walletID)
		if err != nil {
			return err
		}

		sums, err := store.SumByWallet(ctx, walletID)
		if err != nil {
			return err
		}

		drift = Drift{Cached: w.Aggregates(), Recomputed: sums}

		return nil
	})
	if err != nil {
		return Drift{}, err
	}

	return drift, nil
}
