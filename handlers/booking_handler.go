package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rondreis/travel-office-backend/errors"
	"github.com/rondreis/travel-office-backend/logger"
	"github.com/rondreis/travel-office-backend/services"
	"github.com/rondreis/travel-office-backend/types"
	"go.uber.org/zap"
)

// BookingHandler exposes the normalized-booking endpoints.
type BookingHandler struct {
	bookingService *services.BookingService
	log            *zap.SugaredLogger
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		log:            logger.GetLogger(),
	}
}

// GetBooking returns the normalized booking for the id in the path. The id is
// forwarded verbatim; the upstream decides which endpoint it resolves on.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		_ = c.Error(errors.ValidationFailed("validation_failed", "booking id must not be blank"))
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetTravelIdea returns the normalized document for a travel idea.
func (h *BookingHandler) GetTravelIdea(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		_ = c.Error(errors.ValidationFailed("validation_failed", "travel idea id must not be blank"))
		return
	}

	booking, err := h.bookingService.GetTravelIdea(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Normalize runs the normalizer on a raw document supplied in the request
// body. Meant for debugging mapping issues with documents captured from
// upstream; it never calls out or touches the cache.
func (h *BookingHandler) Normalize(c *gin.Context) {
	var doc types.RawDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		_ = c.Error(errors.ValidationFailed("validation_failed", "request body must be a JSON object"))
		return
	}

	booking := h.bookingService.Normalize(doc)
	c.JSON(http.StatusOK, booking)
}
