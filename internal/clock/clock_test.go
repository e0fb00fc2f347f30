package clock

import (
	"testing"
	"time"
)

func TestNew_InvalidTimezone(t *testing.T) {
	if _, err := New("Mars/Olympus"); err == nil {
		t.Error("expected error for an unknown timezone")
	}
}

func TestNew_TodayUsesConfiguredZone(t *testing.T) {
	clk, err := New("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if clk.Location().String() != "America/Sao_Paulo" {
		t.Errorf("Location = %v, want America/Sao_Paulo", clk.Location())
	}
	if got := clk.Now().Location(); got != clk.Location() {
		t.Errorf("Now should be in the configured zone, got %v", got)
	}
}

func TestFixed(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	// 23:30 in Sao Paulo is already the next day in UTC
	instant := time.Date(2024, 3, 4, 23, 30, 0, 0, loc)
	clk := Fixed{Instant: instant}

	if clk.Today() != "2024-03-04" {
		t.Errorf("Today = %q, want 2024-03-04", clk.Today())
	}
	if !clk.Now().Equal(instant) {
		t.Errorf("Now = %v, want %v", clk.Now(), instant)
	}
	if clk.Location() != loc {
		t.Errorf("Location = %v, want %v", clk.Location(), loc)
	}
}
