package api

import (
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ReservationDeletedMessage = "Reservation eliminada exitosamente"

type ReservationHandler struct {
	bookings     usecase.BookingCommands
	reservations usecase.ReservationUseCase
}

func NewReservationHandler(bookings usecase.BookingCommands, reservations usecase.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{
		bookings:     bookings,
		reservations: reservations,
	}
}

// @Summary Create reservation
// @Description Books an Available room and marks it Occupied in the room-service
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.ReservationRequest true "Reservation"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	created, err := h.bookings.CreateBooking(c.Request.Context(), params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(created))
}

// @Summary List reservations
// @Tags reservations
// @Produce json
// @Success 200 {array} resdto.ReservationResponse
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	list, err := h.reservations.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(list))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.reservations.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Replace reservation
// @Description Replaces every field; the room-service is not contacted
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body reqdto.ReservationRequest true "Reservation"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	updated, err := h.reservations.Update(c.Request.Context(), id, params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(updated))
}

// @Summary Cancel reservation
// @Description Deletes the reservation and releases the room on a best-effort basis
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.DetailResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.bookings.CancelBooking(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DetailResponse{Detail: ReservationDeletedMessage})
}
