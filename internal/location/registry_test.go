package location

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/unicode/norm"
)

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := Default()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "kaimaru resolves to fclt", input: "카이마루", want: "fclt"},
		{name: "faculty club resolves to emp", input: "교수회관", want: "emp"},
		{name: "decomposed hangul resolves", input: norm.NFD.String("카이마루"), want: "fclt"},
		{name: "unknown name", input: "존재하지않음", wantErr: ErrUnknownLocation},
		{name: "empty string", input: "", wantErr: ErrUnknownLocation},
		{name: "site parameter is not a name", input: "fclt", wantErr: ErrUnknownLocation},
		{name: "trailing space", input: "카이마루 ", wantErr: ErrUnknownLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reg.Resolve(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("Resolve(%q) = %q on error, want empty", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegistryCaseSensitive(t *testing.T) {
	t.Parallel()

	reg, err := New(Location{Name: "Cafe", Param: "cafe"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, name := range []string{"cafe", "CAFE", "cAfe"} {
		if _, err := reg.Resolve(name); !errors.Is(err, ErrUnknownLocation) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnknownLocation", name, err)
		}
	}
	if got, err := reg.Resolve("Cafe"); err != nil || got != "cafe" {
		t.Errorf("Resolve(Cafe) = %q, %v", got, err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("keeps registration order", func(t *testing.T) {
		t.Parallel()

		want := []Location{Faculty, Kaimaru, {Name: "서측식당", Param: "west"}}
		reg, err := New(want...)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		if diff := cmp.Diff(want, reg.Locations()); diff != "" {
			t.Errorf("Locations() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"교수회관", "카이마루", "서측식당"}, reg.Names()); diff != "" {
			t.Errorf("Names() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()
		_, err := New(Kaimaru, Location{Name: "카이마루", Param: "other"})
		if !errors.Is(err, ErrDuplicateLocation) {
			t.Errorf("expected ErrDuplicateLocation, got %v", err)
		}
	})

	t.Run("rejects duplicate parameters", func(t *testing.T) {
		t.Parallel()
		_, err := New(Kaimaru, Location{Name: "다른식당", Param: "fclt"})
		if !errors.Is(err, ErrDuplicateLocation) {
			t.Errorf("expected ErrDuplicateLocation, got %v", err)
		}
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		t.Parallel()
		for _, loc := range []Location{{Name: "", Param: "x"}, {Name: "x", Param: ""}} {
			if _, err := New(loc); !errors.Is(err, ErrEmptyLocation) {
				t.Errorf("New(%+v) error = %v, want ErrEmptyLocation", loc, err)
			}
		}
	})

	t.Run("locations slice is a copy", func(t *testing.T) {
		t.Parallel()
		reg := Default()
		locs := reg.Locations()
		locs[0].Param = "mutated"
		if got, _ := reg.Resolve("카이마루"); got != "fclt" {
			t.Errorf("registry was mutated through Locations(): %q", got)
		}
	})
}
