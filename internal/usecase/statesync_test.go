//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase"
	"hotel-booking/internal/usecase/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRoomStatusApplier_Apply(t *testing.T) {
	tests := []struct {
		name       string
		change     room.StatusChange
		repoErr    error
		expectCall bool
		wantErr    error
	}{
		{
			name:       "applies a valid change",
			change:     room.StatusChange{RoomID: 1, Status: room.StatusOccupied},
			expectCall: true,
		},
		{
			name:       "drops a change for an unknown room",
			change:     room.StatusChange{RoomID: 8, Status: room.StatusAvailable},
			repoErr:    infra.NotFound("room not found"),
			expectCall: true,
		},
		{
			name:       "store failure is retryable",
			change:     room.StatusChange{RoomID: 1, Status: room.StatusAvailable},
			repoErr:    infra.WrapRepoErr("failed to update room status", errors.New("conn reset")),
			expectCall: true,
			wantErr:    errs.ErrPersistenceFailure,
		},
		{
			name:    "rejects an unknown status",
			change:  room.StatusChange{RoomID: 1, Status: room.Status("ocupado")},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "rejects a non-positive room id",
			change:  room.StatusChange{RoomID: 0, Status: room.StatusOccupied},
			wantErr: errs.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockRoomRepository(ctrl)
			if tt.expectCall {
				repo.EXPECT().UpdateStatus(gomock.Any(), tt.change.RoomID, tt.change.Status).
					Return(room.Reconstruct(tt.change.RoomID, "Single", tt.change.Status), tt.repoErr)
			}

			applier := usecase.NewRoomStatusApplier(repo, discardLogger())
			err := applier.Apply(context.Background(), tt.change)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
