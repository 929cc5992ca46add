// Package store persists opportunity records as one YAML document per record
// under <dir>/<category>/<id>.yaml. Record files are hand-edited, so partial
// updates go through the yaml.Node tree instead of a re-marshal: comments,
// key order, and unrelated fields survive the round trip.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// ErrNotFound is returned when no partition holds a record with the given id.
var ErrNotFound = errors.New("record not found")

// Store reads and writes records under a single data directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// path returns the canonical location for a record.
func (s *Store) path(category opportunity.Category, id string) string {
	return filepath.Join(s.dir, string(category), id+".yaml")
}

// find locates the backing file for an id by scanning category partitions.
func (s *Store) find(id string) (string, error) {
	for _, category := range opportunity.Categories() {
		p := s.path(category, id)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("record %s: %w", id, ErrNotFound)
}

// Load reads one record by id.
func (s *Store) Load(id string) (*opportunity.Record, error) {
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.loadFile(p)
}

func (s *Store) loadFile(path string) (*opportunity.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", stem(path), err)
	}

	var record opportunity.Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("record %s: %w", stem(path), err)
	}

	// The id is the storage key; a mismatch means the file was renamed or
	// copied without editing.
	if record.ID != stem(path) {
		return nil, fmt.Errorf("record %s: id %q does not match filename", stem(path), record.ID)
	}

	return &record, nil
}

// LoadAll walks every category partition and returns all parseable records.
// Per-file failures are collected and do not abort the rest of the load.
func (s *Store) LoadAll() (*opportunity.Records, []error) {
	records := &opportunity.Records{}
	var errs []error

	seen := make(map[string]string)
	for _, category := range opportunity.Categories() {
		dir := filepath.Join(s.dir, string(category))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Errorf("partition %s: %w", category, err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			record, err := s.loadFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if prev, dup := seen[record.ID]; dup {
				errs = append(errs, fmt.Errorf("record %s: duplicate of %s", path, prev))
				continue
			}
			seen[record.ID] = path
			records.Items = append(records.Items, record)
		}
	}

	sort.Slice(records.Items, func(i, j int) bool {
		return records.Items[i].ID < records.Items[j].ID
	})

	return records, errs
}

// Save writes the full record to its canonical location, creating the
// partition if needed. Used for new records; existing files should be
// modified through Update to keep human annotations intact.
func (s *Store) Save(record *opportunity.Record) error {
	if record.ID == "" {
		return fmt.Errorf("record id is required")
	}
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("record %s: %w", record.ID, err)
	}

	p := s.path(record.Category, record.ID)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("record %s: %w", record.ID, err)
	}
	return writeAtomic(p, data)
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".yaml")
}

// writeAtomic writes via a temp file plus rename so a failed write never
// truncates the record.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("record %s: %w", stem(path), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("record %s: %w", stem(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("record %s: %w", stem(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("record %s: %w", stem(path), err)
	}
	return nil
}
