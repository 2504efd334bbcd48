package errs

// Error taxonomy shared by both services
var (
	// NotFound
	ErrRoomNotFound        = New("room not found")
	ErrReservationNotFound = New("reservation not found")

	// ValidationError
	ErrValidation       = New("validation error")
	ErrRoomNotAvailable = New("room not available")

	// Remote dependency errors
	ErrCircuitOpen     = New("circuit breaker is open")
	ErrRemoteTransport = New("remote transport error")

	// Local store errors
	ErrPersistenceFailure = New("persistence failure")

	// Per-room exclusive scope could not be acquired in time
	ErrRoomBusy = New("room is busy")
)
