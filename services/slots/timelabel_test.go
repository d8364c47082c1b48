package slots

import (
	"errors"
	"testing"
)

func TestDecodeLabel(t *testing.T) {
	cases := []struct {
		label string
		want  float64
	}{
		{"12:00 AM", 0},
		{"12:30 AM", 0.5},
		{"1:00 AM", 1},
		{"9:30 AM", 9.5},
		{"11:30 AM", 11.5},
		{"12:00 PM", 12},
		{"12:30 PM", 12.5},
		{"1:00 PM", 13},
		{"5:30 PM", 17.5},
		{"11:30 PM", 23.5},
	}
	for _, tc := range cases {
		got, err := DecodeLabel(tc.label)
		if err != nil {
			t.Fatalf("DecodeLabel(%q) returned error: %v", tc.label, err)
		}
		if got != tc.want {
			t.Errorf("DecodeLabel(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestDecodeLabelMalformed(t *testing.T) {
	bad := []string{
		"",
		"9:00",
		"9:00 am",
		"09:00AM",
		"13:00 PM",
		"0:30 AM",
		"9:75 AM",
		"noon",
	}
	for _, label := range bad {
		if _, err := DecodeLabel(label); !errors.Is(err, ErrMalformedLabel) {
			t.Errorf("DecodeLabel(%q) = %v, want ErrMalformedLabel", label, err)
		}
	}
}

func TestEncodeLabel(t *testing.T) {
	cases := []struct {
		hv   float64
		want string
	}{
		{0, "12:00 AM"},
		{0.5, "12:30 AM"},
		{9.5, "9:30 AM"},
		{11.5, "11:30 AM"},
		{12, "12:00 PM"},
		{12.5, "12:30 PM"},
		{13, "1:00 PM"},
		{23.5, "11:30 PM"},
	}
	for _, tc := range cases {
		if got := EncodeLabel(tc.hv); got != tc.want {
			t.Errorf("EncodeLabel(%v) = %q, want %q", tc.hv, got, tc.want)
		}
	}
}

// Every half-hour value of the day must survive a full encode/decode cycle:
// the stored booked sets and the grid share these labels.
func TestLabelRoundTrip(t *testing.T) {
	for i := 0; i < SlotsPerDay; i++ {
		hv := float64(i) * 0.5
		label := EncodeLabel(hv)
		back, err := DecodeLabel(label)
		if err != nil {
			t.Fatalf("DecodeLabel(EncodeLabel(%v)) returned error: %v", hv, err)
		}
		if back != hv {
			t.Errorf("round trip %v -> %q -> %v", hv, label, back)
		}
	}
}
