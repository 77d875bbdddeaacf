package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// History records which venues have been through verification before. It
// backs the new_venue escalation trigger: a document referencing a venue
// with no prior record gets flagged for a human look.
type History struct {
	mu   sync.Mutex
	path string
}

type historyFile struct {
	Venues      map[string]time.Time `json:"venues"` // normalized name -> last verified
	LastUpdated time.Time            `json:"lastUpdated"`
}

// NewHistory opens the venue history at path
func NewHistory(path string) *History {
	return &History{path: path}
}

// Known reports whether the venue has a prior verification record
func (h *History) Known(venue string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := h.load()
	if err != nil {
		return false, err
	}
	_, ok := file.Venues[normalizeVenue(venue)]
	return ok, nil
}

// Record marks a venue as verified now
func (h *History) Record(venue string) error {
	if strings.TrimSpace(venue) == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := h.load()
	if err != nil {
		return err
	}
	file.Venues[normalizeVenue(venue)] = time.Now().UTC()
	return h.save(file)
}

func normalizeVenue(venue string) string {
	return strings.ToLower(strings.TrimSpace(venue))
}

func (h *History) load() (*historyFile, error) {
	file := &historyFile{Venues: map[string]time.Time{}}

	data, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return file, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read venue history: %w", err)
	}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("parse venue history: %w", err)
	}
	if file.Venues == nil {
		file.Venues = map[string]time.Time{}
	}
	return file, nil
}

func (h *History) save(file *historyFile) error {
	file.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal venue history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write venue history: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		return fmt.Errorf("replace venue history: %w", err)
	}
	return nil
}
