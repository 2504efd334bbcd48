//go:build unit

package statesync

import (
	"testing"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	body, err := Encode(room.StatusChange{RoomID: 4, Status: room.StatusOccupied})

	require.NoError(t, err)
	assert.JSONEq(t, `{"room_id":4,"status":"Occupied"}`, string(body))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    room.StatusChange
		wantErr bool
	}{
		{name: "valid", body: `{"room_id":1,"status":"Available"}`, want: room.StatusChange{RoomID: 1, Status: room.StatusAvailable}},
		{name: "not json", body: `room 1 is free`, wantErr: true},
		{name: "missing room id", body: `{"status":"Available"}`, wantErr: true},
		{name: "negative room id", body: `{"room_id":-3,"status":"Available"}`, wantErr: true},
		{name: "unknown status", body: `{"room_id":1,"status":"Disponible"}`, wantErr: true},
		{name: "room id as string", body: `{"room_id":"1","status":"Available"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))

			if tt.wantErr {
				assert.True(t, errs.Is(err, ErrInvalidMessage), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
