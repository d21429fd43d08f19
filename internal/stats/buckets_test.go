package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andredacosta/walletwise/internal/transaction"
)

func TestLastDays(t *testing.T) {
	// 2026-03-15 is a Sunday.
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	s := lastDays(now, 7)

	var labels []string
	for _, b := range s.buckets {
		labels = append(labels, b.Label)
	}

	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, labels)
	assert.Equal(t, 0, s.index["2026-03-09"])
	assert.Equal(t, 6, s.index["2026-03-15"])
}

func TestLastMonths(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	s := lastMonths(now, 12)

	assert.Len(t, s.buckets, 12)
	assert.Equal(t, "Apr 2025", s.buckets[0].Label)
	assert.Equal(t, "Mar 2026", s.buckets[11].Label)
}

func TestYearRange(t *testing.T) {
	s := yearRange(2024, 2026)

	assert.Len(t, s.buckets, 3)
	assert.Equal(t, "2024", s.buckets[0].Label)
	assert.Equal(t, "2026", s.buckets[2].Label)
}

func TestYearRangeClampsInvertedBounds(t *testing.T) {
	s := yearRange(2030, 2026)

	assert.Len(t, s.buckets, 1)
	assert.Equal(t, "2026", s.buckets[0].Label)
}

func TestSeriesAddDropsUnknownKey(t *testing.T) {
	s := newSeries(1)
	s.push("2026-03-15", "Sun")

	s.add("2026-03-14", transaction.TypeIncome, 100)
	s.add("2026-03-15", transaction.TypeIncome, 250)
	s.add("2026-03-15", transaction.TypeExpense, 75)

	assert.Equal(t, []Bucket{{Label: "Sun", Income: 250, Expense: 75}}, s.buckets)
}
