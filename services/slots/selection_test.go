package slots

import (
	"reflect"
	"testing"
	"time"

	"turfbook/models"
)

// earlyNow keeps every slot of testDate in the future.
var earlyNow = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func tap(sel models.SelectionRange, hv float64, booked []float64) models.SelectionRange {
	cs := Classify(slotAt(hv), testDate, earlyNow, booked)
	return ApplyTap(sel, cs, booked)
}

func TestApplyTapAnchor(t *testing.T) {
	sel := tap(ResetSelection(), 10, nil)
	if sel.State != models.SelectionAnchorSet {
		t.Fatalf("state after first tap = %q, want anchorSet", sel.State)
	}
	if sel.Start != "10:00 AM" || sel.End != "" {
		t.Errorf("anchor = %q..%q, want 10:00 AM with no end", sel.Start, sel.End)
	}
	if !reflect.DeepEqual(sel.CoveredHours, []float64{10}) {
		t.Errorf("coveredHours = %v, want [10]", sel.CoveredHours)
	}
}

func TestApplyTapCompletesRange(t *testing.T) {
	sel := tap(ResetSelection(), 10, nil)
	sel = tap(sel, 12, nil)

	if sel.State != models.SelectionRangeSet {
		t.Fatalf("state = %q, want rangeSet", sel.State)
	}
	if sel.Start != "10:00 AM" || sel.End != "12:00 PM" {
		t.Errorf("range = %q..%q, want 10:00 AM..12:00 PM", sel.Start, sel.End)
	}
	if sel.Error != "" {
		t.Errorf("unexpected validation error: %q", sel.Error)
	}
	want := []float64{10, 10.5, 11, 11.5, 12}
	if !reflect.DeepEqual(sel.CoveredHours, want) {
		t.Errorf("coveredHours = %v, want %v", sel.CoveredHours, want)
	}
}

func TestApplyTapReordersBelowAnchor(t *testing.T) {
	// Anchor at 10:00 AM, then tap 9:00 AM: the earlier slot becomes start.
	sel := tap(ResetSelection(), 10, nil)
	sel = tap(sel, 9, nil)

	if sel.State != models.SelectionRangeSet {
		t.Fatalf("state = %q, want rangeSet", sel.State)
	}
	if sel.Start != "9:00 AM" || sel.End != "10:00 AM" {
		t.Errorf("range = %q..%q, want 9:00 AM..10:00 AM", sel.Start, sel.End)
	}
}

func TestApplyTapIdempotentReTap(t *testing.T) {
	sel := tap(ResetSelection(), 10, nil)
	again := tap(sel, 10, nil)
	if !reflect.DeepEqual(sel, again) {
		t.Errorf("re-tapping the anchor changed the selection: %+v vs %+v", sel, again)
	}
}

func TestApplyTapThirdTapRestarts(t *testing.T) {
	sel := tap(ResetSelection(), 10, nil)
	sel = tap(sel, 12, nil)
	sel = tap(sel, 15, nil)

	if sel.State != models.SelectionAnchorSet {
		t.Fatalf("state after third tap = %q, want anchorSet", sel.State)
	}
	if sel.Start != "3:00 PM" || sel.End != "" {
		t.Errorf("new anchor = %q..%q, want 3:00 PM with no end", sel.Start, sel.End)
	}
}

func TestApplyTapIgnoresUnselectable(t *testing.T) {
	booked := []float64{14}
	sel := tap(ResetSelection(), 14, booked)
	if sel.State != models.SelectionEmpty {
		t.Errorf("tap on booked slot changed state to %q", sel.State)
	}

	// Past slot: render against a clock after the slot's start.
	lateNow := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	cs := Classify(slotAt(9), testDate, lateNow, nil)
	sel = ApplyTap(ResetSelection(), cs, nil)
	if sel.State != models.SelectionEmpty {
		t.Errorf("tap on past slot changed state to %q", sel.State)
	}
}

func TestRangeOverBookedSlotsFlagsError(t *testing.T) {
	booked := []float64{14, 14.5} // 2:00 PM, 2:30 PM

	// 1:00 PM to 3:00 PM straddles the booked block.
	sel := tap(ResetSelection(), 13, booked)
	sel = tap(sel, 15, booked)
	if sel.State != models.SelectionRangeSet {
		t.Fatalf("state = %q, want rangeSet", sel.State)
	}
	if sel.Error == "" {
		t.Error("range spanning booked slots carried no validation error")
	}

	// Only interior boundaries count: a range ending exactly where the
	// booked block starts is clean, and an inverted range is caught.
	if msg := validateRange(13, 14, booked); msg != "" {
		t.Errorf("range ending at a booked boundary flagged: %q", msg)
	}
	if msg := validateRange(14, 13, booked); msg == "" {
		t.Error("inverted range carried no validation error")
	}
}

func TestExpandRangeLabels(t *testing.T) {
	labels, err := ExpandRangeLabels("1:00 PM", "3:00 PM")
	if err != nil {
		t.Fatalf("ExpandRangeLabels returned error: %v", err)
	}
	want := []string{"1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	if _, err := ExpandRangeLabels("bogus", "3:00 PM"); err == nil {
		t.Error("malformed start label did not error")
	}
}
