//go:build unit

package httperr

import (
	"errors"
	"net/http"
	"testing"

	"hotel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"open circuit", errs.ErrCircuitOpen, http.StatusServiceUnavailable, MsgServiceUnavailable},
		{"wrapped open circuit", errs.Wrap(errs.ErrCircuitOpen, "get room"), http.StatusServiceUnavailable, MsgServiceUnavailable},
		{"validation", errs.Mark(errors.New("guest name cannot be empty"), errs.ErrValidation), http.StatusBadRequest, "Invalid request"},
		{"room not available", errs.Wrapf(errs.ErrRoomNotAvailable, "room %d is Occupied", 1), http.StatusBadRequest, "Room is not available"},
		{"room not found", errs.Mark(errors.New("404"), errs.ErrRoomNotFound), http.StatusNotFound, "Room not found"},
		{"reservation not found", errs.Mark(errors.New("no rows"), errs.ErrReservationNotFound), http.StatusNotFound, "Reservation not found"},
		{"room busy", errs.Mark(errors.New("deadline"), errs.ErrRoomBusy), http.StatusConflict, "Room is being booked by another request, please retry"},
		{"remote transport", errs.Mark(errors.New("refused"), errs.ErrRemoteTransport), http.StatusInternalServerError, "Error communicating with the room service"},
		{"persistence", errs.Mark(errors.New("disk"), errs.ErrPersistenceFailure), http.StatusInternalServerError, "Internal server error"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg, _ := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
