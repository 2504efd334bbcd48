package httperr

import (
	"net/http"

	"hotel-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// MsgServiceUnavailable is returned for every open breaker, whichever dependency tripped it.
const MsgServiceUnavailable = "Service temporarily unavailable, please try again later."

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps an error of the shared taxonomy to its status code and message.
func Abort(c *gin.Context, err error) {
	status, msg, detail := Classify(err)
	AbortWithError(c, status, err, msg, detail)
}

func Classify(err error) (status int, msg string, detail any) {
	switch {
	case errs.Is(err, errs.ErrCircuitOpen):
		return http.StatusServiceUnavailable, MsgServiceUnavailable, nil
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "Invalid request", err.Error()
	case errs.Is(err, errs.ErrRoomNotAvailable):
		return http.StatusBadRequest, "Room is not available", nil
	case errs.Is(err, errs.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found", nil
	case errs.Is(err, errs.ErrReservationNotFound):
		return http.StatusNotFound, "Reservation not found", nil
	case errs.Is(err, errs.ErrRoomBusy):
		return http.StatusConflict, "Room is being booked by another request, please retry", nil
	case errs.Is(err, errs.ErrRemoteTransport):
		return http.StatusInternalServerError, "Error communicating with the room service", nil
	default:
		return http.StatusInternalServerError, "Internal server error", nil
	}
}
