package room

type Status string

const (
	StatusAvailable Status = "Available"
	StatusOccupied  Status = "Occupied"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied:
		return true
	default:
		return false
	}
}

func (s Status) IsAvailable() bool {
	return s == StatusAvailable
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// StatusChange is the intended status of a room, carried by the state sync channel.
type StatusChange struct {
	RoomID int64
	Status Status
}
