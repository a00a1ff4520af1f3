package api

import (
	"net/http"

	resdto "grillbox/internal/handler/dto/response"
	"grillbox/internal/handler/httperr"
	"grillbox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeviceHandler struct {
	devices  queries.DeviceQueries
	bookings queries.BookingQueries
}

func NewDeviceHandler(devices queries.DeviceQueries, bookings queries.BookingQueries) *DeviceHandler {
	return &DeviceHandler{devices: devices, bookings: bookings}
}

// @Summary List devices
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.DeviceResponse
// @Router /devices [get]
func (h *DeviceHandler) List(c *gin.Context) {
	views, err := h.devices.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list devices", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeviceViews(views))
}

// @Summary Get device
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device ID"
// @Success 200 {object} resdto.DeviceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /devices/{id} [get]
func (h *DeviceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid device ID format", nil)
		return
	}
	view, err := h.devices.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithMappedError(c, err, "Failed to load device")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeviceView(view))
}

// @Summary List device bookings
// @Description Bookings of one device, newest first
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /devices/{id}/bookings [get]
func (h *DeviceHandler) ListBookings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid device ID format", nil)
		return
	}
	views, err := h.bookings.ListByDevice(c.Request.Context(), id)
	if err != nil {
		abortWithMappedError(c, err, "Failed to list bookings")
		return
	}
	resp, err := resdto.FromBookingViews(views, nil)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp.Items)
}
