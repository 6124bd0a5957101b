package dealers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMapping(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rep_dealer_mapping.csv")
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		t.Fatalf("writing mapping fixture: %v", err)
	}
	return path
}

func testTable(t *testing.T) *Table {
	t.Helper()
	path := writeMapping(t,
		"Dealer Name,Dealer ID,Rep Name\n"+
			"Mazda Steele,2618,Véronique Fournier\n"+
			"Laval Toyota,1044,Marc Dionne\n"+
			"Honda de Québec,3307,Julie Caron\n")
	table, err := Load(path)
	if err != nil {
		t.Fatalf("loading mapping: %v", err)
	}
	return table
}

func TestLoad_CSV(t *testing.T) {
	table := testTable(t)
	if table.Len() != 3 {
		t.Fatalf("expected 3 dealers, got %d", table.Len())
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected load failure for missing mapping file")
	}
}

func TestLoad_NoDataRowsFails(t *testing.T) {
	path := writeMapping(t, "Dealer Name,Dealer ID,Rep Name\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected load failure for header-only mapping")
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("Toyota Laval"); got != NormalizeName("Laval Toyota") {
		t.Fatalf("token sorting should make word order irrelevant: %q vs %q", got, NormalizeName("Laval Toyota"))
	}
	if got := NormalizeName("  Mazda-Steele! "); got != "mazdasteele" {
		t.Fatalf("NormalizeName = %q, want %q", got, "mazdasteele")
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	table := testTable(t)
	rec := table.Resolve([]string{"mazda steele"})
	if rec.DealerID != "2618" || rec.Rep != "Véronique Fournier" {
		t.Fatalf("exact match returned %+v", rec)
	}
}

func TestResolve_TokenOrderInsensitive(t *testing.T) {
	table := testTable(t)
	rec := table.Resolve([]string{"Toyota Laval"})
	if rec.DealerID != "1044" {
		t.Fatalf("word-order variant should resolve, got %+v", rec)
	}
}

func TestResolve_FuzzyAboveThreshold(t *testing.T) {
	table := testTable(t)
	// Typo: still well above the 90 confidence bar.
	rec := table.Resolve([]string{"mazda stele"})
	if rec.DealerID != "2618" {
		t.Fatalf("high-confidence fuzzy match should resolve, got %+v", rec)
	}
}

func TestResolve_BelowThresholdReturnsEmpty(t *testing.T) {
	table := testTable(t)
	rec := table.Resolve([]string{"downtown ford lincoln"})
	if rec.DealerID != "" || rec.DealerName != "" || rec.Rep != "" {
		t.Fatalf("low-confidence candidates must never resolve, got %+v", rec)
	}
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	table := testTable(t)
	rec := table.Resolve([]string{"laval toyota", "mazda steele"})
	if rec.DealerID != "1044" {
		t.Fatalf("candidate order must be respected, got %+v", rec)
	}
}

func TestResolve_NoCandidates(t *testing.T) {
	table := testTable(t)
	if rec := table.Resolve(nil); rec.DealerID != "" {
		t.Fatalf("no candidates must resolve to empty identity, got %+v", rec)
	}
}

func TestResolve_MessageAsLastResortCandidate(t *testing.T) {
	table := testTable(t)
	message := "Hi, Mazda Steele is still showing vehicles that were sold last week."
	rec := table.Resolve([]string{message})
	if rec.DealerID != "2618" {
		t.Fatalf("token-set scoring should find the dealer inside the message, got %+v", rec)
	}
}
