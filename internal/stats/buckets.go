package stats

import (
	"strconv"
	"time"

	"github.com/andredacosta/walletwise/internal/transaction"
)

// Bucket is one reporting slot of a chart series. Income and Expense are
// cents sums of the transactions whose date key matched the bucket.
type Bucket struct {
	Label   string `json:"label"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// series pairs ordered buckets with a key index. The skeleton is
// generated first with zero accumulators; transactions are folded in by
// key. Generation and folding MUST use the same key function, otherwise
// transactions silently vanish from charts while still showing in lists.
type series struct {
	buckets []Bucket
	index   map[string]int
}

func newSeries(size int) *series {
	return &series{
		buckets: make([]Bucket, 0, size),
		index:   make(map[string]int, size),
	}
}

func (s *series) push(key, label string) {
	s.index[key] = len(s.buckets)
	s.buckets = append(s.buckets, Bucket{Label: label})
}

// add folds one transaction into its bucket. Transactions whose key falls
// outside the series are dropped from the chart, not an error.
func (s *series) add(key string, typ transaction.Type, amount int64) {
	i, ok := s.index[key]
	if !ok {
		return
	}

	switch typ {
	case transaction.TypeIncome:
		s.buckets[i].Income += amount
	case transaction.TypeExpense:
		s.buckets[i].Expense += amount
	}
}

func (s *series) fold(txs []*transaction.Transaction, key func(time.Time) string) []Bucket {
	for _, tx := range txs {
		s.add(key(tx.Date), tx.Type, tx.Amount)
	}

	return s.buckets
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func dayLabel(t time.Time) string {
	return t.Weekday().String()[:3]
}

func monthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

func yearKey(t time.Time) string {
	return strconv.Itoa(t.Year())
}

// lastDays builds the skeleton for the n trailing calendar days ending on
// the day of now, oldest first. Buckets are keyed by date and labeled
// with the short weekday name.
func lastDays(now time.Time, n int) *series {
	s := newSeries(n)

	for i := n - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		s.push(dayKey(day), dayLabel(day))
	}

	return s
}

// lastMonths builds the skeleton for the n trailing calendar months
// ending with the month of now, oldest first.
func lastMonths(now time.Time, n int) *series {
	s := newSeries(n)

	for i := n - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		s.push(monthKey(month), monthKey(month))
	}

	return s
}

// yearRange builds one bucket per calendar year from first through last.
func yearRange(first, last int) *series {
	if first > last {
		first = last
	}

	s := newSeries(last - first + 1)

	for year := first; year <= last; year++ {
		key := strconv.Itoa(year)
		s.push(key, key)
	}

	return s
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
