package handlers

import (
	"net/http"

	bookingRepo "turfbook/database/repository/booking"

	"github.com/gin-gonic/gin"
)

// BookingRecordHandler serves persisted booking records back to their owner
// (the confirmation page re-reads the stored booking).
type BookingRecordHandler struct {
	Repo bookingRepo.BookingRepository
}

func NewBookingRecordHandler(repo bookingRepo.BookingRepository) *BookingRecordHandler {
	return &BookingRecordHandler{Repo: repo}
}

func (h *BookingRecordHandler) GetBookingByID(c *gin.Context) {
	booking, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch booking, please retry"})
		return
	}
	if booking == nil || booking.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *BookingRecordHandler) GetMyBookings(c *gin.Context) {
	bookings, err := h.Repo.GetByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch bookings, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
