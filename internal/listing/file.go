package listing

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ratedRE peels an existing rating marker off the end of a line:
	// " [★★★] (reason)" or " [3]".
	ratedRE = regexp.MustCompile(`^(.+)\s+\[(★+|\d+)\](?:\s+\((.+?)\))?$`)
	// withVintageRE matches "[date] Producer - Wine 2020 (Price)".
	withVintageRE = regexp.MustCompile(`^\[(.+?)\]\s+(.+?)\s+-\s+(.+?)\s+(\d{4})\s+\((.+?)\)$`)
	// noVintageRE matches "[date] Producer - Wine (Price)".
	noVintageRE = regexp.MustCompile(`^\[(.+?)\]\s+(.+?)\s+-\s+(.+?)\s+\((.+?)\)$`)
)

// ParseFile reads a listing file into records. Unparseable lines are
// skipped; a missing file yields an empty slice and no error so callers can
// configure listings that do not exist yet.
func ParseFile(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open listing %s: %w", path, err)
	}
	defer f.Close()

	var records []*Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if rec := parseLine(strings.TrimSpace(scanner.Text())); rec != nil {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read listing %s: %w", path, err)
	}
	return records, nil
}

func parseLine(line string) *Record {
	if line == "" {
		return nil
	}

	var score *int
	reason := ""
	if m := ratedRE.FindStringSubmatch(line); m != nil {
		line = strings.TrimSpace(m[1])
		value := m[2]
		var parsed int
		if strings.Contains(value, "★") {
			parsed = strings.Count(value, "★")
		} else {
			parsed, _ = strconv.Atoi(value)
		}
		parsed = ClampScore(parsed)
		score = &parsed
		reason = m[3]
	}

	if m := withVintageRE.FindStringSubmatch(line); m != nil {
		return &Record{
			RawLine:  line,
			Date:     m[1],
			Producer: m[2],
			WineName: m[3],
			Vintage:  m[4],
			Price:    m[5],
			Score:    score,
			Reason:   reason,
		}
	}
	if m := noVintageRE.FindStringSubmatch(line); m != nil {
		return &Record{
			RawLine:  line,
			Date:     m[1],
			Producer: m[2],
			WineName: m[3],
			Price:    m[4],
			Score:    score,
			Reason:   reason,
		}
	}
	return nil
}

// WriteFile serializes all records back to path, rated lines carrying the
// star marker. The write replaces the whole file so callers must hold
// whatever lock guards concurrent rewrites.
func WriteFile(path string, records []*Record) error {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(rec.Line())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write listing %s: %w", path, err)
	}
	return nil
}
