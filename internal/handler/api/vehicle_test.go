//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"drive-booking/internal/domain/user"
	"drive-booking/internal/handler/api"
	resdto "drive-booking/internal/handler/dto/response"
	"drive-booking/internal/usecase/commands"
	"drive-booking/internal/usecase/queries"
	"drive-booking/tests/common/builder"
	"drive-booking/tests/common/httptest"
	commandsmock "drive-booking/tests/mock/commands"
	queriesmock "drive-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VehicleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockVehicleCommands
	mockQueries  *queriesmock.MockVehicleQueries
	handler      *api.VehicleHandler
}

func (s *VehicleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockVehicleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockVehicleQueries(s.mockCtrl)
	s.handler = api.NewVehicleHandler(s.mockCommands, s.mockQueries)

	ownerMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleOwner)
		c.Next()
	}

	s.router.GET("/vehicles", s.handler.ListVehicles)
	s.router.GET("/vehicles/:id", s.handler.GetVehicle)
	s.router.GET("/vehicles/:id/availability", s.handler.CheckAvailability)
	s.router.POST("/vehicles", ownerMiddleware, s.handler.CreateVehicle)
	s.router.PUT("/vehicles/:id/stock", ownerMiddleware, s.handler.UpdateStock)
	s.router.DELETE("/vehicles/:id", ownerMiddleware, s.handler.DeleteVehicle)
}

func (s *VehicleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVehicleHandlerSuite(t *testing.T) {
	suite.Run(t, new(VehicleHandlerTestSuite))
}

// ================================================================================
// TestCreateVehicle
// ================================================================================

func (s *VehicleHandlerTestSuite) TestCreateVehicle() {
	url := "/vehicles"
	reqBody := builder.NewVehicleBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with vehicle id", func() {
		vehicleID := uuid.New()
		s.mockCommands.EXPECT().CreateVehicle(gomock.Any(), commands.CreateVehicleRequest{
			Name:             reqBody.Name,
			PricePerDayPaise: reqBody.PricePerDayPaise,
			TotalStock:       reqBody.TotalStock,
		}).Return(&commands.CreateVehicleResult{VehicleID: vehicleID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(vehicleID.String(), body["vehicle_id"])
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"name": "Activa"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})

	s.Run("error: 422 Unprocessable Entity on domain validation", func() {
		s.mockCommands.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid vehicle data")
	})

	s.Run("error: 500 Internal Server Error on command failure", func() {
		s.mockCommands.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListVehicles
// ================================================================================

func (s *VehicleHandlerTestSuite) TestListVehicles() {
	url := "/vehicles"

	views := []*queries.VehicleView{
		builder.NewVehicleBuilder().BuildView(),
		builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.Name = "Honda Activa" }).BuildView(),
	}

	s.Run("success: returns fleet without authentication", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("Royal Enfield Classic 350", response[0].Name)
		s.Equal("Honda Activa", response[1].Name)
	})

	s.Run("success: empty fleet renders empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return([]*queries.VehicleView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGetVehicle
// ================================================================================

func (s *VehicleHandlerTestSuite) TestGetVehicle() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String()

	view := builder.NewVehicleBuilder().BuildView()
	view.ID = vehicleID

	s.Run("success: returns 200 OK with VehicleResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), vehicleID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(vehicleID, response.ID)
		s.Equal(int64(150000), response.PricePerDayPaise)
		s.Equal(2, response.TotalStock)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles/invalid-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid vehicle ID format")
	})

	s.Run("error: 404 Not Found for missing vehicle", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), vehicleID).
			Return(nil, queries.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})
}

// ================================================================================
// TestCheckAvailability
// ================================================================================

func (s *VehicleHandlerTestSuite) TestCheckAvailability() {
	vehicleID := uuid.New()
	baseURL := "/vehicles/" + vehicleID.String() + "/availability"
	url := baseURL + "?start_date=2026-03-01&end_date=2026-03-05"

	s.Run("success: returns remaining capacity", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), vehicleID, gomock.Any()).
			Return(&queries.AvailabilityView{
				VehicleID:  vehicleID,
				StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
				TotalStock: 2,
				Committed:  1,
				Remaining:  1,
				Available:  true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(vehicleID, response.VehicleID)
		s.Equal("2026-03-01", response.StartDate)
		s.Equal("2026-03-05", response.EndDate)
		s.Equal(1, response.Committed)
		s.Equal(1, response.Remaining)
		s.True(response.Available)
	})

	s.Run("error: 400 Bad Request when dates are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "start_date and end_date are required")
	})

	s.Run("error: 400 Bad Request for inverted range", func() {
		inverted := baseURL + "?start_date=2026-03-05&end_date=2026-03-01"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, inverted, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date range")
	})

	s.Run("error: 404 Not Found for missing vehicle", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), vehicleID, gomock.Any()).
			Return(nil, queries.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})
}

// ================================================================================
// TestUpdateStock
// ================================================================================

func (s *VehicleHandlerTestSuite) TestUpdateStock() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String() + "/stock"
	reqBody := map[string]any{"total_stock": 5}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().SetTotalStock(gomock.Any(), vehicleID, 5).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/vehicles/invalid-uuid/stock", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid vehicle ID format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "vehicle not found",
				commandsError:  commands.ErrVehicleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Vehicle not found",
			},
			{
				name:           "invalid stock value",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid stock value",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().SetTotalStock(gomock.Any(), vehicleID, 5).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDeleteVehicle
// ================================================================================

func (s *VehicleHandlerTestSuite) TestDeleteVehicle() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteVehicle(gomock.Any(), vehicleID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/vehicles/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid vehicle ID format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})

	s.Run("error: 404 Not Found for missing vehicle", func() {
		s.mockCommands.EXPECT().DeleteVehicle(gomock.Any(), vehicleID).
			Return(commands.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})
}
