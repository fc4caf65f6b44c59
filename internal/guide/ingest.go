package guide

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Entry is one guide block: a producer name and its full text.
type Entry struct {
	Name    string
	Content string
}

// ParseGuideFile reads a plain-text guide into entries. Entries are
// blank-line-separated blocks whose first line is the producer name.
func ParseGuideFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open guide %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	var current []string
	flush := func() {
		if len(current) > 0 {
			entries = append(entries, Entry{
				Name:    current[0],
				Content: strings.Join(current, "\n"),
			})
			current = nil
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read guide %s: %w", path, err)
	}
	flush()
	return entries, nil
}

// IngestFile loads a plain-text guide into the store, replacing whatever
// was indexed before.
func (s *Store) IngestFile(ctx context.Context, path string) (int, error) {
	entries, err := ParseGuideFile(path)
	if err != nil {
		return 0, err
	}

	if err := s.Clear(ctx); err != nil {
		return 0, err
	}
	added := 0
	for _, entry := range entries {
		if err := s.Add(ctx, entry.Name, entry.Content); err != nil {
			// Entries whose names normalize to nothing are not indexable.
			continue
		}
		added++
	}
	return added, nil
}
