package wallet_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andredacosta/walletwise/internal/wallet"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    wallet.CreateParams
		setupMock func(m *wallet.MockRepository)
		wantErr   error
	}

	userID := uuid.New()

	tests := []testCase{
		{
			name:   "Success",
			params: wallet.CreateParams{UserID: userID, Name: "Savings"},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						w.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "TrimsName",
			params: wallet.CreateParams{UserID: userID, Name: "  Savings  "},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						assert.Equal(t, "Savings", w.Name)
						return nil
					})
			},
		},
		{
			name:      "EmptyName",
			params:    wallet.CreateParams{UserID: userID, Name: "   "},
			setupMock: func(m *wallet.MockRepository) {},
			wantErr:   wallet.ErrNameMissing,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := wallet.NewMockRepository(ctrl)
			tc.setupMock(mockRepo)

			svc := wallet.NewService(mockRepo)

			w, err := svc.Create(context.Background(), tc.params)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, userID, w.UserID)
			assert.Equal(t, "Savings", w.Name)
		})
	}
}

func TestService_Update(t *testing.T) {
	name := "Renamed"
	empty := "  "
	image := "https://cdn.example.com/wallet.png"

	type testCase struct {
		name      string
		params    wallet.UpdateParams
		setupMock func(m *wallet.MockRepository, id uuid.UUID)
		wantErr   error
		check     func(t *testing.T, w *wallet.Wallet)
	}

	tests := []testCase{
		{
			name:   "RenameKeepsAggregates",
			params: wallet.UpdateParams{Name: &name},
			setupMock: func(m *wallet.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetWallet(gomock.Any(), id).
					Return(&wallet.Wallet{ID: id, Name: "Old", Amount: 5000, TotalIncome: 5000}, nil)
				m.EXPECT().
					UpdateWallet(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, w *wallet.Wallet) {
				assert.Equal(t, "Renamed", w.Name)
				assert.Equal(t, int64(5000), w.Amount)
				assert.Equal(t, int64(5000), w.TotalIncome)
			},
		},
		{
			name:   "NewImage",
			params: wallet.UpdateParams{ImageURL: &image},
			setupMock: func(m *wallet.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetWallet(gomock.Any(), id).
					Return(&wallet.Wallet{ID: id, Name: "Main"}, nil)
				m.EXPECT().
					UpdateWallet(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, w *wallet.Wallet) {
				assert.Equal(t, image, w.ImageURL)
			},
		},
		{
			name:   "BlankName",
			params: wallet.UpdateParams{Name: &empty},
			setupMock: func(m *wallet.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetWallet(gomock.Any(), id).
					Return(&wallet.Wallet{ID: id, Name: "Main"}, nil)
			},
			wantErr: wallet.ErrNameMissing,
		},
		{
			name:   "NotFound",
			params: wallet.UpdateParams{Name: &name},
			setupMock: func(m *wallet.MockRepository, id uuid.UUID) {
				m.EXPECT().
					GetWallet(gomock.Any(), id).
					Return(nil, wallet.ErrNotFound)
			},
			wantErr: wallet.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := wallet.NewMockRepository(ctrl)

			id := uuid.New()
			tc.setupMock(mockRepo, id)

			svc := wallet.NewService(mockRepo)

			w, err := svc.Update(context.Background(), id, tc.params)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			tc.check(t, w)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := wallet.NewMockRepository(ctrl)

	id := uuid.New()

	mockRepo.EXPECT().
		DeleteWallet(gomock.Any(), id).
		Return(nil)

	svc := wallet.NewService(mockRepo)

	require.NoError(t, svc.Delete(context.Background(), id))
}
