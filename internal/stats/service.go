package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/andredacosta/walletwise/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stats
type Repository interface {
	// ListByUser returns the user's transactions within the optional date
	// bounds, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*transaction.Transaction, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Result is a chart-ready bucket series plus the raw transactions for
// list display. A transaction can appear in the list without appearing in
// any bucket (its date fell outside the series), never the other way
// around.
type Result struct {
	Buckets      []Bucket
	Transactions []*transaction.Transaction
}

// Weekly aggregates the 7 trailing calendar days ending today.
func (s *Service) Weekly(ctx context.Context, userID uuid.UUID) (*Result, error) {
	now := s.now()
	from := startOfDay(now.AddDate(0, 0, -6))

	txs, err := s.repo.ListByUser(ctx, userID, &from, &now)
	if err != nil {
		return nil, err
	}

	return &Result{
		Buckets:      lastDays(now, 7).fold(txs, dayKey),
		Transactions: txs,
	}, nil
}

// Monthly aggregates the 12 trailing calendar months ending this month.
func (s *Service) Monthly(ctx context.Context, userID uuid.UUID) (*Result, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, now.Location())

	txs, err := s.repo.ListByUser(ctx, userID, &from, &now)
	if err != nil {
		return nil, err
	}

	return &Result{
		Buckets:      lastMonths(now, 12).fold(txs, monthKey),
		Transactions: txs,
	}, nil
}

// Annual aggregates every calendar year from the user's earliest
// transaction through the current year. The range is derived from the
// full scan itself, so the query is unbounded.
func (s *Service) Annual(ctx context.Context, userID uuid.UUID) (*Result, error) {
	now := s.now()

	txs, err := s.repo.ListByUser(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	firstYear := now.Year()

	for _, tx := range txs {
		if y := tx.Date.Year(); y < firstYear {
			firstYear = y
		}
	}

	return &Result{
		Buckets:      yearRange(firstYear, now.Year()).fold(txs, yearKey),
		Transactions: txs,
	}, nil
}

// Overview runs all three aggregations concurrently.
type Overview struct {
	Weekly  *Result
	Monthly *Result
	Annual  *Result
}

func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	var overview Overview

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := s.Weekly(ctx, userID)
		overview.Weekly = res

		return err
	})
	g.Go(func() error {
		res, err := s.Monthly(ctx, userID)
		overview.Monthly = res

		return err
	})
	g.Go(func() error {
		res, err := s.Annual(ctx, userID)
		overview.Annual = res

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &overview, nil
}
