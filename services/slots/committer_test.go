package slots

import (
	"context"
	"errors"
	"sync"
	"testing"

	"turfbook/models"
)

// fakeAvailabilityRepo is an in-memory stand-in for the document store with
// the same merge semantics: a server-side set union keyed by date.
type fakeAvailabilityRepo struct {
	mu       sync.Mutex
	booked   map[string][]string
	getErr   error
	mergeErr error
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{booked: make(map[string][]string)}
}

func (f *fakeAvailabilityRepo) Get(_ context.Context, date string) (models.DailyAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return models.DailyAvailability{}, f.getErr
	}
	return models.DailyAvailability{
		Date:        date,
		BookedSlots: append([]string(nil), f.booked[date]...),
	}, nil
}

func (f *fakeAvailabilityRepo) AtomicMerge(_ context.Context, date string, labels []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mergeErr != nil {
		return f.mergeErr
	}
	existing := make(map[string]struct{}, len(f.booked[date]))
	for _, l := range f.booked[date] {
		existing[l] = struct{}{}
	}
	for _, l := range labels {
		if _, ok := existing[l]; !ok {
			f.booked[date] = append(f.booked[date], l)
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) Subscribe(ctx context.Context, _ func(models.DailyAvailability)) error {
	<-ctx.Done()
	return ctx.Err()
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*models.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByUser(_ context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func newTestCommitter(avail *fakeAvailabilityRepo, books *fakeBookingRepo) *DefaultReservationCommitter {
	return &DefaultReservationCommitter{
		Availability: avail,
		Bookings:     books,
		WeekdayRate:  600,
		WeekendRate:  800,
		AdvanceRate:  0.25,
	}
}

func rangeSelection(start, end string) models.SelectionRange {
	low, _ := DecodeLabel(start)
	high, _ := DecodeLabel(end)
	return models.SelectionRange{
		State:        models.SelectionRangeSet,
		Start:        start,
		End:          end,
		CoveredHours: halfHoursBetween(low, high),
	}
}

var testPayer = models.PayerInfo{
	UserID:        "user-1",
	UserEmail:     "user@example.com",
	PaymentMethod: "upi",
}

func TestCommitSuccess(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	books := &fakeBookingRepo{}
	rc := newTestCommitter(avail, books)

	booking, err := rc.Commit(context.Background(), testDate, rangeSelection("9:00 AM", "11:30 AM"), testPayer)
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if booking.Status != "confirmed" || booking.PaymentStatus != "partial" {
		t.Errorf("booking status = %q/%q, want confirmed/partial", booking.Status, booking.PaymentStatus)
	}
	// Monday rate.
	if booking.HourlyRate != 600 || booking.TotalAmount != 1500 || booking.InitialPayment != 375 {
		t.Errorf("pricing = rate %v total %v initial %v, want 600/1500/375",
			booking.HourlyRate, booking.TotalAmount, booking.InitialPayment)
	}
	if booking.RemainingAmount != 1125 {
		t.Errorf("remaining = %v, want 1125", booking.RemainingAmount)
	}

	// [start, end): 11:30 AM itself stays free.
	day, _ := avail.Get(context.Background(), testDate)
	want := []string{"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM"}
	if len(day.BookedSlots) != len(want) {
		t.Fatalf("booked set = %v, want %v", day.BookedSlots, want)
	}
	for i, l := range want {
		if day.BookedSlots[i] != l {
			t.Fatalf("booked set = %v, want %v", day.BookedSlots, want)
		}
	}

	stored, _ := books.GetByID(context.Background(), booking.ID)
	if stored == nil {
		t.Fatal("booking record was not persisted")
	}
}

func TestCommitWeekendRate(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	rc := newTestCommitter(avail, &fakeBookingRepo{})

	booking, err := rc.Commit(context.Background(), "06/20/2026", rangeSelection("9:00 AM", "11:00 AM"), testPayer)
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if booking.HourlyRate != 800 || booking.TotalAmount != 1600 {
		t.Errorf("weekend pricing = rate %v total %v, want 800/1600", booking.HourlyRate, booking.TotalAmount)
	}
}

func TestCommitConflict(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	books := &fakeBookingRepo{}
	rc := newTestCommitter(avail, books)

	if _, err := rc.Commit(context.Background(), testDate, rangeSelection("1:00 PM", "3:00 PM"), testPayer); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	// Overlapping range loses outright; nothing is applied.
	_, err := rc.Commit(context.Background(), testDate, rangeSelection("2:00 PM", "4:00 PM"), testPayer)
	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("second commit error = %v, want ConflictError", err)
	}
	if cErr.Date != testDate {
		t.Errorf("conflict date = %q, want %q", cErr.Date, testDate)
	}
	if len(cErr.Slots) != 2 || cErr.Slots[0] != "2:00 PM" || cErr.Slots[1] != "2:30 PM" {
		t.Errorf("conflicting slots = %v, want [2:00 PM 2:30 PM]", cErr.Slots)
	}

	day, _ := avail.Get(context.Background(), testDate)
	if len(day.BookedSlots) != 4 {
		t.Errorf("losing commit mutated the booked set: %v", day.BookedSlots)
	}
	if len(books.bookings) != 1 {
		t.Errorf("losing commit persisted a booking: %d records", len(books.bookings))
	}
}

func TestCommitAdjacentRangesDoNotConflict(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	rc := newTestCommitter(avail, &fakeBookingRepo{})

	if _, err := rc.Commit(context.Background(), testDate, rangeSelection("1:00 PM", "3:00 PM"), testPayer); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	// Back-to-back: 3:00 PM is the first range's end, not an occupied slot.
	if _, err := rc.Commit(context.Background(), testDate, rangeSelection("3:00 PM", "4:00 PM"), testPayer); err != nil {
		t.Fatalf("adjacent commit failed: %v", err)
	}
}

func TestCommitValidation(t *testing.T) {
	rc := newTestCommitter(newFakeAvailabilityRepo(), &fakeBookingRepo{})

	cases := []struct {
		name string
		sel  models.SelectionRange
	}{
		{"empty selection", ResetSelection()},
		{"anchor only", models.SelectionRange{State: models.SelectionAnchorSet, Start: "9:00 AM"}},
		{"carried error", func() models.SelectionRange {
			s := rangeSelection("1:00 PM", "3:00 PM")
			s.Error = "range contains booked slots"
			return s
		}()},
		{"unreadable label", models.SelectionRange{State: models.SelectionRangeSet, Start: "bogus", End: "3:00 PM"}},
	}
	for _, tc := range cases {
		_, err := rc.Commit(context.Background(), testDate, tc.sel, testPayer)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: error = %v, want ValidationError", tc.name, err)
		}
	}
}

func TestCommitStoreUnavailable(t *testing.T) {
	avail := newFakeAvailabilityRepo()
	avail.getErr = errors.New("connection reset")
	rc := newTestCommitter(avail, &fakeBookingRepo{})

	_, err := rc.Commit(context.Background(), testDate, rangeSelection("9:00 AM", "10:00 AM"), testPayer)
	var sErr *StoreUnavailableError
	if !errors.As(err, &sErr) {
		t.Fatalf("error = %v, want StoreUnavailableError", err)
	}
	if sErr.Op != "read" {
		t.Errorf("op = %q, want read", sErr.Op)
	}

	avail.getErr = nil
	avail.mergeErr = errors.New("write timeout")
	_, err = rc.Commit(context.Background(), testDate, rangeSelection("9:00 AM", "10:00 AM"), testPayer)
	if !errors.As(err, &sErr) {
		t.Fatalf("error = %v, want StoreUnavailableError", err)
	}
	if sErr.Op != "merge" {
		t.Errorf("op = %q, want merge", sErr.Op)
	}
}
