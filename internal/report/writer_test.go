package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/babbot/internal/meal"
	"github.com/nao1215/babbot/internal/model"
)

var lunchTime = time.Date(2024, time.March, 4, 12, 0, 0, 0, meal.KST)

func okResult(location, menu string) *model.MenuResult {
	r := model.NewMenuResult(location, lunchTime)
	r.Param = "fclt"
	r.Menu = menu
	return r
}

func failedResult(location string, err error) *model.MenuResult {
	r := model.NewMenuResult(location, lunchTime)
	r.SetError(err)
	return r
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("single result is the bare menu", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewTextWriter(&buf).Write([]*model.MenuResult{okResult("카이마루", "잡곡밥\n된장찌개")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, want := buf.String(), "잡곡밥\n된장찌개\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if n != buf.Len() {
			t.Errorf("n = %d, want %d", n, buf.Len())
		}
	})

	t.Run("multiple results get headings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := NewTextWriter(&buf).Write([]*model.MenuResult{
			okResult("카이마루", "잡곡밥"),
			failedResult("동측식당", errors.New("unknown location")),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "[카이마루 · 중식]\n잡곡밥\n\n[동측식당 · 중식]\nerror: unknown location\n"
		if got := buf.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("single failure keeps its heading", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write([]*model.MenuResult{failedResult("동측식당", errors.New("boom"))}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "error: boom") {
			t.Errorf("expected error line, got %q", buf.String())
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes results and failure count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := NewJSONWriter(&buf, WithPrettyPrint()).Write([]*model.MenuResult{
			okResult("카이마루", "잡곡밥"),
			failedResult("동측식당", errors.New("unknown location")),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc struct {
			Results []struct {
				Location string `json:"location"`
				Param    string `json:"param"`
				Period   string `json:"period"`
				Menu     string `json:"menu"`
				Error    string `json:"error"`
			} `json:"results"`
			Failed int `json:"failed"`
		}
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if doc.Failed != 1 || len(doc.Results) != 2 {
			t.Fatalf("unexpected document %+v", doc)
		}
		first := doc.Results[0]
		if first.Location != "카이마루" || first.Param != "fclt" || first.Period != "lunch" || first.Menu != "잡곡밥" {
			t.Errorf("unexpected first result %+v", first)
		}
		if doc.Results[1].Error != "unknown location" {
			t.Errorf("unexpected error field %q", doc.Results[1].Error)
		}
		if !strings.Contains(buf.String(), "\n  \"results\"") {
			t.Error("expected indented output")
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := strings.TrimSuffix(buf.String(), "\n")
		if strings.Contains(out, "\n") {
			t.Errorf("expected single line, got %q", out)
		}
		if !strings.Contains(out, `"results":[]`) {
			t.Errorf("expected empty results array, got %q", out)
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := NewMarkdownWriter(&buf).Write([]*model.MenuResult{
		okResult("카이마루", "잡곡밥\n된장찌개\n"),
		failedResult("동측식당", errors.New("unknown location")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# KAIST 학식 메뉴",
		"## 카이마루 중식",
		"- 잡곡밥",
		"- 된장찌개",
		"## 동측식당 중식",
		"unknown location",
		"1 of 2 menus could not be loaded.",
		"2024-03-04 12:00 KST",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestMenuItems(t *testing.T) {
	t.Parallel()

	got := menuItems("  잡곡밥 \n\n된장찌개\n")
	if len(got) != 2 || got[0] != "잡곡밥" || got[1] != "된장찌개" {
		t.Errorf("menuItems() = %q", got)
	}
	if len(menuItems("")) != 0 {
		t.Error("expected no items for empty menu")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, ok := New(&buf, FormatJSON).(*JSONWriter); !ok {
		t.Error("expected JSONWriter")
	}
	if _, ok := New(&buf, FormatMarkdown).(*MarkdownWriter); !ok {
		t.Error("expected MarkdownWriter")
	}
	if _, ok := New(&buf, "yaml").(*TextWriter); !ok {
		t.Error("expected TextWriter fallback")
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]*model.MenuResult) (int, error) { return 0, f.err }

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		results := []*model.MenuResult{okResult("카이마루", "잡곡밥")}
		n, err := NewMultiWriter(NewTextWriter(&a), NewTextWriter(&b)).Write(results)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.String() != b.String() || n != a.Len()+b.Len() {
			t.Errorf("unexpected outputs %q %q (n=%d)", a.String(), b.String(), n)
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		boom := errors.New("boom")
		_, err := NewMultiWriter(failingWriter{err: boom}, NewTextWriter(&buf)).Write(nil)
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if buf.Len() != 0 {
			t.Error("second writer should not run")
		}
	})
}
