package appointment

import (
	"encoding/json"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return parsed
}

func TestBlocksWindow(t *testing.T) {
	booked := mustTime(t, "2024-01-10T09:00:00")
	a := &Appointment{
		Status:      StatusScheduled,
		ScheduledAt: NewDateTime(booked),
	}

	tests := []struct {
		name      string
		candidate string
		blocked   bool
	}{
		{"same minute", "2024-01-10T09:00:00", true},
		{"twenty minutes after", "2024-01-10T09:20:00", true},
		{"twenty minutes before", "2024-01-10T08:40:00", true},
		{"29m59s after", "2024-01-10T09:29:59", true},
		{"exactly thirty minutes after", "2024-01-10T09:30:00", false},
		{"exactly thirty minutes before", "2024-01-10T08:30:00", false},
		{"thirty five minutes after", "2024-01-10T09:35:00", false},
		{"next day", "2024-01-11T09:00:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Blocks(mustTime(t, tc.candidate)); got != tc.blocked {
				t.Errorf("Blocks(%s) = %v, want %v", tc.candidate, got, tc.blocked)
			}
		})
	}
}

func TestBlocksIgnoresCancelled(t *testing.T) {
	booked := mustTime(t, "2024-01-10T09:00:00")
	a := &Appointment{
		Status:      StatusCancelled,
		ScheduledAt: NewDateTime(booked),
	}

	if a.Blocks(booked) {
		t.Error("cancelled appointment must not block its own slot")
	}
}

func TestBlocksNilSchedule(t *testing.T) {
	a := &Appointment{Status: StatusScheduled}
	if a.Blocks(mustTime(t, "2024-01-10T09:00:00")) {
		t.Error("appointment without a time must not block anything")
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusCompleted, StatusCancelled} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("BOOKED").IsValid() {
		t.Error("unknown status should be invalid")
	}
	if Status("").IsValid() {
		t.Error("empty status should be invalid")
	}
}

func TestDateTimeJSONRoundTrip(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`"2024-01-10T09:00:00"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := mustTime(t, "2024-01-10T09:00:00")
	if !d.Time.Equal(want) {
		t.Fatalf("got %v, want %v", d.Time, want)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-01-10T09:00:00"` {
		t.Fatalf("marshalled to %s", out)
	}
}

func TestDateTimeAcceptsRFC3339(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`"2024-01-10T09:00:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Time.IsZero() {
		t.Fatal("expected a parsed time")
	}
}

func TestDateTimeRejectsGarbage(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`"next tuesday"`), &d); err == nil {
		t.Fatal("expected an error for an unparseable timestamp")
	}
}
