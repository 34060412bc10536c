package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rondreis/travel-office-backend/middleware"
	"github.com/rondreis/travel-office-backend/pkg/normalizer"
	"github.com/rondreis/travel-office-backend/pkg/travelcompositor"
	"github.com/rondreis/travel-office-backend/services"
	"github.com/rondreis/travel-office-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUpstreamClient mocks the Travel Compositor client.
type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) GetBooking(ctx context.Context, id string) (types.RawDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.RawDocument), args.Error(1)
}

func (m *MockUpstreamClient) GetTravelIdea(ctx context.Context, id string) (types.RawDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.RawDocument), args.Error(1)
}

func setupBookingRouter(upstream *MockUpstreamClient) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := services.NewBookingService(upstream, normalizer.New(nil), nil, nil, 0)
	handler := NewBookingHandler(svc)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/v1/bookings/:id", handler.GetBooking)
	router.GET("/v1/travelideas/:id", handler.GetTravelIdea)
	router.POST("/v1/normalize", handler.Normalize)
	return router
}

func TestGetBookingReturnsNormalizedDocument(t *testing.T) {
	upstream := new(MockUpstreamClient)
	upstream.On("GetBooking", mock.Anything, "RB-1").Return(types.RawDocument{
		"bookingReference": "RB-1",
		"hotelservice": []interface{}{
			map[string]interface{}{"hotelName": "Hotel Luna", "location": "Rome"},
		},
	}, nil)

	router := setupBookingRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/RB-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var booking types.NormalizedBooking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "RB-1", booking.ID)
	// A hotelservice array without the top-level hotel fields is a composite
	// booking; with no title of its own, the title falls back to the
	// destination list.
	assert.Equal(t, types.ShapeCompositeBooking, booking.Shape)
	assert.Equal(t, "Rome", booking.Title)
	upstream.AssertExpectations(t)
}

func TestGetBookingSingleServiceDocument(t *testing.T) {
	upstream := new(MockUpstreamClient)
	upstream.On("GetBooking", mock.Anything, "42").Return(types.RawDocument{
		"hotelId":      "42",
		"hotelName":    "Hotel Luna",
		"locationName": "Rome",
	}, nil)

	router := setupBookingRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/42", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var booking types.NormalizedBooking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "hotel-42", booking.ID)
	assert.Equal(t, types.ShapeSingleService, booking.Shape)
	assert.Equal(t, "Rome - Hotel Luna", booking.Title)
	upstream.AssertExpectations(t)
}

func TestGetBookingNotFound(t *testing.T) {
	upstream := new(MockUpstreamClient)
	upstream.On("GetBooking", mock.Anything, "missing").
		Return(nil, travelcompositor.ErrNotFound)

	router := setupBookingRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "BOOKING_NOT_FOUND", body["type"])
}

func TestGetTravelIdea(t *testing.T) {
	upstream := new(MockUpstreamClient)
	upstream.On("GetTravelIdea", mock.Anything, "IDEA-7").Return(types.RawDocument{
		"id":    "IDEA-7",
		"title": "Rondreis Italië",
	}, nil)

	router := setupBookingRouter(upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/travelideas/IDEA-7", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var booking types.NormalizedBooking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "IDEA-7", booking.ID)
	upstream.AssertExpectations(t)
}

func TestNormalizeEndpoint(t *testing.T) {
	router := setupBookingRouter(new(MockUpstreamClient))

	doc := `{"bookingReference":"RB-9","hotelservice":[{"hotelName":"Hotel Zee","location":"Scheveningen"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/normalize", strings.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var booking types.NormalizedBooking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, types.ShapeCompositeBooking, booking.Shape)
	assert.Equal(t, "Scheveningen", booking.Title,
		"untitled composite bookings take their title from the destinations")
}

func TestNormalizeRejectsNonObjectBody(t *testing.T) {
	router := setupBookingRouter(new(MockUpstreamClient))

	for _, payload := range []string{`"just a string"`, `[1,2,3]`, `{not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/normalize", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %s", payload)
	}
}
