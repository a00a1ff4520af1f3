//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"grillbox/internal/handler/api"
	resdto "grillbox/internal/handler/dto/response"
	"grillbox/internal/usecase/queries"
	"grillbox/tests/common/builder"
	"grillbox/tests/common/httptest"
	queriesmock "grillbox/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DeviceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockDevices  *queriesmock.MockDeviceQueries
	mockBookings *queriesmock.MockBookingQueries
}

func (s *DeviceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockDevices = queriesmock.NewMockDeviceQueries(s.mockCtrl)
	s.mockBookings = queriesmock.NewMockBookingQueries(s.mockCtrl)
	h := api.NewDeviceHandler(s.mockDevices, s.mockBookings)

	s.router.GET("/devices", h.List)
	s.router.GET("/devices/:id", h.Get)
	s.router.GET("/devices/:id/bookings", h.ListBookings)
}

func (s *DeviceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDeviceHandlerSuite(t *testing.T) {
	suite.Run(t, new(DeviceHandlerTestSuite))
}

func (s *DeviceHandlerTestSuite) TestList() {
	s.Run("success: external id is not exposed", func() {
		views := []*queries.DeviceView{
			builder.NewDeviceBuilder().WithNumber("1").BuildView(),
			builder.NewDeviceBuilder().WithNumber("2").AsBlocked().BuildView(),
		}
		s.mockDevices.EXPECT().List(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices", nil, "")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("2", body[1]["number"])
		s.Equal(true, body[1]["blocked"])
		s.NotContains(body[0], "externalId")
		s.NotContains(rec.Body.String(), views[0].ExternalID)
	})

	s.Run("error: 500 when the store fails", func() {
		s.mockDevices.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to list devices")
	})
}

func (s *DeviceHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		view := builder.NewDeviceBuilder().BuildView()
		s.mockDevices.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices/"+view.ID.String(), nil, "")

		var body resdto.DeviceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.Address.City, body.Address.City)
		s.Equal(view.Locked, body.Locked)
	})

	s.Run("error: 404 for unknown device", func() {
		id := uuid.New()
		s.mockDevices.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrDeviceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Device not found")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices/grill-1", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid device ID format")
	})
}

func (s *DeviceHandlerTestSuite) TestListBookings() {
	s.Run("success: plain array of bookings", func() {
		deviceID := uuid.New()
		views := []*queries.BookingView{
			builder.NewBookingBuilder().WithDeviceID(deviceID).BuildView(),
		}
		s.mockBookings.EXPECT().ListByDevice(gomock.Any(), deviceID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices/"+deviceID.String()+"/bookings", nil, "")

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(views[0].ID, body[0].ID)
		s.Equal(deviceID, body[0].DeviceID)
	})

	s.Run("error: 404 for unknown device", func() {
		deviceID := uuid.New()
		s.mockBookings.EXPECT().ListByDevice(gomock.Any(), deviceID).Return(nil, queries.ErrDeviceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/devices/"+deviceID.String()+"/bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Device not found")
	})
}
