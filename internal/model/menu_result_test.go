package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/babbot/internal/meal"
)

func TestNewMenuResult(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.May, 2, 18, 0, 0, 0, meal.KST)
	r := NewMenuResult("카이마루", at)

	if r.Location != "카이마루" {
		t.Errorf("Location = %q", r.Location)
	}
	if r.Period != meal.Dinner {
		t.Errorf("Period = %v, want dinner", r.Period)
	}
	if !r.QueriedAt.Equal(at) {
		t.Errorf("QueriedAt = %v, want %v", r.QueriedAt, at)
	}
	if !r.OK() {
		t.Error("new result should be OK")
	}
}

func TestMenuResultSetError(t *testing.T) {
	t.Parallel()

	cause := errors.New("upstream down")
	r := NewMenuResult("교수회관", time.Now())
	r.Menu = "stale"

	r.SetError(cause)
	if r.OK() {
		t.Error("expected result to fail")
	}
	if !errors.Is(r.Err, cause) || r.Error != "upstream down" {
		t.Errorf("unexpected error fields: %v / %q", r.Err, r.Error)
	}
	if r.Menu != "" {
		t.Errorf("menu must be cleared on error, got %q", r.Menu)
	}

	r.SetError(nil)
	if !r.OK() {
		t.Error("SetError(nil) should clear the failure")
	}
}

func TestMenuResultJSON(t *testing.T) {
	t.Parallel()

	r := NewMenuResult("카이마루", time.Date(2024, time.May, 2, 10, 0, 0, 0, meal.KST))
	r.Param = "fclt"
	r.Menu = "잡곡밥"

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(data)

	for _, want := range []string{`"location":"카이마루"`, `"param":"fclt"`, `"period":"lunch"`, `"menu":"잡곡밥"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, `"error"`) {
		t.Errorf("error field should be omitted on success: %s", out)
	}
}
