package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"turfbook/config"
	availabilityRepo "turfbook/database/repository/availability"
	"turfbook/models"
	"turfbook/services/slots"
	"turfbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "booking:session:"

// BookingHandler drives the three-phase interactive flow: start a session
// for a date, feed slot taps into it, confirm with a conflict-checked commit.
// Session state lives in Redis so the selection survives handler instances.
type BookingHandler struct {
	Committer slots.ReservationCommitter
	Repo      availabilityRepo.AvailabilityRepository
	Mirror    *slots.AvailabilityMirror
	Clock     *slots.Clock
}

func NewBookingHandler(committer slots.ReservationCommitter, repo availabilityRepo.AvailabilityRepository, mirror *slots.AvailabilityMirror, clock *slots.Clock) *BookingHandler {
	return &BookingHandler{Committer: committer, Repo: repo, Mirror: mirror, Clock: clock}
}

func sessionTTL() time.Duration {
	minutes := config.AppConfig.SessionTTLMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

func saveSession(ctx context.Context, sessionID string, session models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return utils.GetSessionCacheClient().Set(ctx, sessionKeyPrefix+sessionID, data, sessionTTL()).Err()
}

func loadSession(ctx context.Context, sessionID string) (models.BookingSession, error) {
	var session models.BookingSession
	data, err := utils.GetSessionCacheClient().Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return session, err
	}
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return session, err
	}
	return session, nil
}

// StartSession opens a booking session for one date.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"` // "MM-DD-YYYY" or "MM/DD/YYYY"
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	date, ok := normalizeDate(input.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": "expected MM/DD/YYYY"})
		return
	}

	session := models.BookingSession{
		Date:      date,
		UserID:    c.GetString("userID"),
		UserEmail: c.GetString("userEmail"),
		Selection: slots.ResetSelection(),
	}
	sessionID := uuid.New().String()

	ctx := c.Request.Context()
	if err := h.Mirror.Seed(ctx, h.Repo, date); err != nil {
		getLogger(c).Warn("availability seed failed on session start")
	}
	if err := saveSession(ctx, sessionID, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cache booking session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"date":      date,
		"slots":     slots.ClassifyDay(date, h.Clock.Now(), h.Mirror.BookedHours(date)),
	})
}

// TapSlot applies one tap to the session's range selection. Taps on past or
// booked slots leave the selection unchanged.
func (h *BookingHandler) TapSlot(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Time string `json:"time" binding:"required"` // e.g. "9:00 AM"
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := loadSession(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		return
	}

	hv, err := slots.DecodeLabel(input.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time label", "details": input.Time})
		return
	}

	booked := h.Mirror.BookedHours(session.Date)
	tapped := slots.Classify(models.Slot{
		Time:      input.Time,
		HourValue: hv,
		TimeBlock: slots.TimeBlockFor(hv),
	}, session.Date, h.Clock.Now(), booked)

	session.Selection = slots.ApplyTap(session.Selection, tapped, booked)
	if err := saveSession(ctx, sessionID, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking session", "details": err.Error()})
		return
	}

	resp := gin.H{
		"sessionID": sessionID,
		"selection": session.Selection,
	}
	if session.Selection.State == models.SelectionRangeSet && session.Selection.Error == "" {
		rate := config.AppConfig.WeekdayHourlyRate
		if slots.IsWeekend(session.Date) {
			rate = config.AppConfig.WeekendHourlyRate
		}
		if quote, err := slots.ComputeQuote(session.Selection.Start, session.Selection.End, rate, config.AppConfig.AdvanceRate); err == nil {
			resp["quote"] = quote
		}
	}
	c.JSON(http.StatusOK, resp)
}

// CancelSession abandons the session; selection state resets with it.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	utils.GetSessionCacheClient().Del(c.Request.Context(), sessionKeyPrefix+sessionID)
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ConfirmBooking runs the conflict-checked commit for the session's range.
// A lost race returns 409 and resets the selection so the user re-observes
// fresh availability for the same date.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		SessionID        string `json:"sessionID" binding:"required"`
		PaymentMethod    string `json:"paymentMethod" binding:"required"`
		PaymentReference string `json:"paymentReference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	session, err := loadSession(ctx, input.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		return
	}

	payer := models.PayerInfo{
		UserID:           session.UserID,
		UserEmail:        session.UserEmail,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
	}

	booking, err := h.Committer.Commit(ctx, session.Date, session.Selection, payer)
	if err != nil {
		var vErr *slots.ValidationError
		var cErr *slots.ConflictError
		var sErr *slots.StoreUnavailableError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Message})
		case errors.As(err, &cErr):
			// Reset the selection but keep the session; the client returns to
			// slot selection for the same date.
			session.Selection = slots.ResetSelection()
			_ = saveSession(ctx, input.SessionID, session)
			c.JSON(http.StatusConflict, gin.H{
				"error":     "selected slots were just booked by someone else",
				"conflicts": cErr.Slots,
				"date":      cErr.Date,
			})
		case errors.As(err, &sErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": "booking service temporarily unavailable, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("booking confirmation failed: %v", err)})
		}
		return
	}

	// Clear the session from cache.
	utils.GetSessionCacheClient().Del(ctx, sessionKeyPrefix+input.SessionID)

	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
	})
}
