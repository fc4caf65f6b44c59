package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "releases.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp listing: %v", err)
	}
	return path
}

func TestParseFileVintageForms(t *testing.T) {
	path := writeTemp(t, strings.Join([]string{
		"[Mar 03] Domaine X - Cuvée A 2020 (500 SEK)",
		"[Mar 03] Maison Y - Blanc de Blancs (1200 SEK)",
		"",
		"not a wine line",
	}, "\n"))

	records, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Producer != "Domaine X" || first.WineName != "Cuvée A" || first.Vintage != "2020" || first.Price != "500 SEK" {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.Rated() {
		t.Fatal("expected unrated record")
	}

	second := records[1]
	if second.Vintage != "" || second.WineName != "Blanc de Blancs" {
		t.Fatalf("unexpected vintage-less record: %+v", second)
	}
}

func TestParseFileRatedMarkers(t *testing.T) {
	path := writeTemp(t, strings.Join([]string{
		"[Mar 03] Domaine X - Cuvée A 2020 (500 SEK) [★★★] (classic terroir)",
		"[Mar 03] Maison Y - Blanc (1200 SEK) [2]",
	}, "\n"))

	records, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Rated() || *records[0].Score != 3 || records[0].Reason != "classic terroir" {
		t.Fatalf("star marker parse: %+v", records[0])
	}
	if !records[1].Rated() || *records[1].Score != 2 || records[1].Reason != "" {
		t.Fatalf("digit marker parse: %+v", records[1])
	}
	if records[0].RawLine != "[Mar 03] Domaine X - Cuvée A 2020 (500 SEK)" {
		t.Fatalf("raw line not stripped of marker: %q", records[0].RawLine)
	}
}

func TestParseFileMissing(t *testing.T) {
	records, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := writeTemp(t, "[Mar 03] Domaine X - Cuvée A 2020 (500 SEK)\n")
	records, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	records[0].SetScore(3, "classic terroir")

	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "[Mar 03] Domaine X - Cuvée A 2020 (500 SEK) [★★★] (classic terroir)\n"
	if string(data) != want {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", string(data), want)
	}

	reread, err := ParseFile(path)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(reread) != 1 || !reread[0].Rated() || *reread[0].Score != 3 {
		t.Fatalf("reparse lost rating: %+v", reread[0])
	}
}

func TestSetScoreClamps(t *testing.T) {
	rec := &Record{RawLine: "[Mar 03] A - B (1 SEK)"}
	rec.SetScore(7, "too good.")
	if *rec.Score != 4 {
		t.Fatalf("expected clamp to 4, got %d", *rec.Score)
	}
	rec.SetScore(0, "")
	if *rec.Score != 1 {
		t.Fatalf("expected clamp to 1, got %d", *rec.Score)
	}
}

func TestStars(t *testing.T) {
	if got := Stars(3); got != "★★★" {
		t.Fatalf("Stars(3) = %q", got)
	}
	if got := Stars(9); got != "★★★★" {
		t.Fatalf("Stars(9) = %q", got)
	}
	if got := Stars(-1); got != "★" {
		t.Fatalf("Stars(-1) = %q", got)
	}
}
