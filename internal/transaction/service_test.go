package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andredacosta/walletwise/internal/transaction"
)

func TestService_Get(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository, id uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *transaction.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(&transaction.Transaction{ID: id, Type: transaction.TypeExpense, Amount: 1000}, nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *transaction.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetTransaction(gomock.Any(), id).
					Return(nil, transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := transaction.NewMockRepository(ctrl)

			id := uuid.New()
			tc.setupMock(mockRepo, id)

			svc := transaction.NewService(mockRepo)

			tx, err := svc.Get(context.Background(), id)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, tx.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := transaction.NewMockRepository(ctrl)

	userID := uuid.New()
	walletID := uuid.New()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	filter := transaction.ListFilter{
		UserID:    userID,
		WalletID:  &walletID,
		StartDate: &start,
	}

	want := []*transaction.Transaction{
		{ID: uuid.New(), UserID: userID, WalletID: walletID, Type: transaction.TypeIncome, Amount: 500},
	}

	mockRepo.EXPECT().
		ListTransactions(gomock.Any(), filter).
		Return(want, nil)

	svc := transaction.NewService(mockRepo)

	got, err := svc.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTypeValid(t *testing.T) {
	assert.True(t, transaction.TypeIncome.Valid())
	assert.True(t, transaction.TypeExpense.Valid())
	assert.False(t, transaction.Type("transfer").Valid())
	assert.False(t, transaction.Type("").Valid())
}
