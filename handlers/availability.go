package handlers

import (
	"net/http"
	"strings"
	"time"

	availabilityRepo "turfbook/database/repository/availability"
	"turfbook/services/slots"
	"turfbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves the classified slot grid for a date.
type AvailabilityHandler struct {
	Repo   availabilityRepo.AvailabilityRepository
	Mirror *slots.AvailabilityMirror
	Clock  *slots.Clock
}

func NewAvailabilityHandler(repo availabilityRepo.AvailabilityRepository, mirror *slots.AvailabilityMirror, clock *slots.Clock) *AvailabilityHandler {
	return &AvailabilityHandler{Repo: repo, Mirror: mirror, Clock: clock}
}

// normalizeDate accepts "MM-DD-YYYY" path params (dashes keep the path
// clean) and returns the canonical "MM/DD/YYYY" key.
func normalizeDate(raw string) (string, bool) {
	date := strings.ReplaceAll(raw, "-", "/")
	if _, err := time.Parse(slots.DateLayout, date); err != nil {
		return "", false
	}
	return date, true
}

// GetDayAvailability returns all 48 slots of the date, each tagged
// past/booked/selectable against the sampled clock and the live booked set.
func (h *AvailabilityHandler) GetDayAvailability(c *gin.Context) {
	date, ok := normalizeDate(c.Param("date"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected MM-DD-YYYY")
		return
	}

	// Seed the mirror with a point read so first render is current; a store
	// hiccup falls back to the (possibly stale) mirror rather than a blank
	// grid.
	if err := h.Mirror.Seed(c.Request.Context(), h.Repo, date); err != nil {
		getLogger(c).Warn("availability seed failed, serving mirrored state",
			zap.String("date", date), zap.Error(err))
	}

	grid := slots.ClassifyDay(date, h.Clock.Now(), h.Mirror.BookedHours(date))
	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": grid,
	})
}
