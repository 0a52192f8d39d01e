package dashboard

import (
	"testing"

	"tableflip.dev/tabler/pkg/filter"
)

func TestForName(t *testing.T) {
	tests := map[string]string{
		"movies":   "movies",
		"Film":     "movies",
		" coins ":  "crypto",
		"listings": "listings",
		"bank":     "banks",
	}
	for in, want := range tests {
		d, err := ForName(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if d.Name != want {
			t.Fatalf("%q: got %s, want %s", in, d.Name, want)
		}
	}
	if _, err := ForName("weather"); err == nil {
		t.Fatalf("expected error for unknown dashboard")
	}
}

func TestPaths(t *testing.T) {
	if got := Movies.Path(Movies.List.Path); got != "/api/movies/load" {
		t.Fatalf("unexpected list path %s", got)
	}
	if got := Listings.Path(Listings.List.Path); got != "/api/listings" {
		t.Fatalf("unexpected list path %s", got)
	}
	if got := Crypto.ExportPath("excel"); got != "/api/crypto/export/excel" {
		t.Fatalf("unexpected export path %s", got)
	}
}

func TestQuery(t *testing.T) {
	r := filter.Range{From: 1990, To: 1995}
	q := Movies.Query(r)
	if q["yearFrom"] != "1990" || q["yearTo"] != "1995" || len(q) != 2 {
		t.Fatalf("unexpected movie query %v", q)
	}
	q = Banks.Query(r)
	if q["year"] != "1990" || len(q) != 1 {
		t.Fatalf("unexpected bank query %v", q)
	}
}

func TestRanged(t *testing.T) {
	if !Movies.Ranged() {
		t.Fatalf("movies should be ranged")
	}
	if Crypto.Ranged() {
		t.Fatalf("crypto should not be ranged")
	}
	if !Banks.Ranged() {
		t.Fatalf("banks should be ranged")
	}
}

func TestExport(t *testing.T) {
	e, err := Movies.Export("CSV")
	if err != nil || e.Format != "csv" || !e.Ranged {
		t.Fatalf("unexpected export %v %v", e, err)
	}
	if _, err := Movies.Export("pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := Listings.Export("csv"); err == nil {
		t.Fatalf("expected error for dashboard without exports")
	}
}
