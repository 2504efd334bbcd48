package api

import (
	"net/http"
	"strconv"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

const RoomDeletedMessage = "Room eliminada exitosamente"

type RoomHandler struct {
	rooms usecase.RoomUseCase
}

func NewRoomHandler(rooms usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Failure 503 {object} httperr.Response
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRooms(rooms))
}

// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body reqdto.RoomRequest true "Room"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	created, err := h.rooms.Create(c.Request.Context(), params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoom(created))
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	r, err := h.rooms.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoom(r))
}

// @Summary Replace room
// @Description Replaces category and status
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body reqdto.RoomRequest true "Room"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	updated, err := h.rooms.Update(c.Request.Context(), id, params)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoom(updated))
}

// @Summary Set room status
// @Description Changes only the status; used by the reservation-service after a booking or cancellation
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body reqdto.RoomStatusRequest true "Status"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /rooms/{id}/status [patch]
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.RoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	updated, err := h.rooms.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoom(updated))
}

// @Summary Delete room
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} resdto.DetailResponse
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.rooms.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DetailResponse{Detail: RoomDeletedMessage})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = strconv.ErrRange
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return 0, false
	}
	return id, true
}
