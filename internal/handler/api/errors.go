package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grillbox/internal/handler/httperr"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/commands"
	"grillbox/internal/usecase/queries"
	"grillbox/internal/usecase/saga"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{saga.ErrDeviceNotFound, http.StatusNotFound, "Device not found"},
	{saga.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{saga.ErrDeviceAlreadyBlocked, http.StatusConflict, "Device is already booked"},
	{saga.ErrPaymentDeclined, http.StatusPaymentRequired, "Payment declined"},
	{saga.ErrPaymentOutcomeUnknown, http.StatusGatewayTimeout, "Payment is still being processed; the card may have been charged"},
	{saga.ErrBookingNotRecorded, http.StatusInternalServerError, "Booking could not be recorded; the authorization will be released"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrDeviceNotFound, http.StatusNotFound, "Device not found"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{commands.ErrCardNotFound, http.StatusNotFound, "Card not found"},
	{commands.ErrCardOwnerNotFound, http.StatusNotFound, "User not found"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
}

func abortWithMappedError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusBadGateway, err, fallback, nil)
}

// errUnauthenticated is used when a route is mounted without the auth middleware.
var errUnauthenticated = errs.New("caller identity missing from request context")
