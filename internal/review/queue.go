package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/factgate/factgate/internal/model"
	"github.com/google/uuid"
)

// Queue is the durable human-review queue: a single JSON file loaded and
// saved atomically. The upsert-by-path and at-most-one-pending invariants
// live here, not in callers.
type Queue struct {
	mu   sync.Mutex
	path string
	now  func() time.Time // injectable for tests
}

// queueFile is the on-disk shape
type queueFile struct {
	Cases       []model.ReviewCase `json:"cases"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

// NewQueue opens (or will create on first save) the queue at path
func NewQueue(path string) *Queue {
	return &Queue{path: path, now: time.Now}
}

// Upsert adds a review case for a file. While a case for the same filePath
// is pending, its fields are overwritten in place instead of creating a
// duplicate; terminal cases are left alone and a fresh case is appended.
func (q *Queue) Upsert(c model.ReviewCase) (model.ReviewCase, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	file, err := q.load()
	if err != nil {
		return model.ReviewCase{}, err
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = q.now().UTC()
	}
	c.Status = model.ReviewPending

	replaced := false
	for i := range file.Cases {
		if file.Cases[i].FilePath == c.FilePath && file.Cases[i].Status == model.ReviewPending {
			c.ID = file.Cases[i].ID
			c.CreatedAt = q.now().UTC()
			file.Cases[i] = c
			replaced = true
			break
		}
	}

	if !replaced {
		c.ID = uuid.NewString()
		file.Cases = append(file.Cases, c)
	}

	if err := q.save(file); err != nil {
		return model.ReviewCase{}, err
	}
	return c, nil
}

// Get returns the case with the given ID
func (q *Queue) Get(id string) (model.ReviewCase, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	file, err := q.load()
	if err != nil {
		return model.ReviewCase{}, err
	}
	for _, c := range file.Cases {
		if c.ID == id {
			return c, nil
		}
	}
	return model.ReviewCase{}, fmt.Errorf("review case not found: %s", id)
}

// List returns all cases, optionally filtered by status ("" for all)
func (q *Queue) List(status model.ReviewStatus) ([]model.ReviewCase, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	file, err := q.load()
	if err != nil {
		return nil, err
	}
	if status == "" {
		return file.Cases, nil
	}

	var filtered []model.ReviewCase
	for _, c := range file.Cases {
		if c.Status == status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// MarkReviewed moves a pending case to reviewed
func (q *Queue) MarkReviewed(id, note string) error {
	return q.transition(id, note, model.ReviewPending, model.ReviewReviewed)
}

// Approve moves a reviewed case to approved. A pending case must be marked
// reviewed first: no transition skips the reviewed state.
func (q *Queue) Approve(id, note string) error {
	return q.transition(id, note, model.ReviewReviewed, model.ReviewApproved)
}

// Reject moves a reviewed case to rejected
func (q *Queue) Reject(id, note string) error {
	return q.transition(id, note, model.ReviewReviewed, model.ReviewRejected)
}

func (q *Queue) transition(id, note string, from, to model.ReviewStatus) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	file, err := q.load()
	if err != nil {
		return err
	}

	for i := range file.Cases {
		if file.Cases[i].ID != id {
			continue
		}
		if file.Cases[i].Status != from {
			return fmt.Errorf("case %s is %s, expected %s", id, file.Cases[i].Status, from)
		}
		now := q.now().UTC()
		file.Cases[i].Status = to
		file.Cases[i].ReviewedAt = &now
		if note != "" {
			file.Cases[i].ReviewerNote = note
		}
		return q.save(file)
	}
	return fmt.Errorf("review case not found: %s", id)
}

// CleanupOldCases purges terminal cases older than retention. Pending (and
// reviewed) cases are never purged regardless of age.
func (q *Queue) CleanupOldCases(retention time.Duration) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	file, err := q.load()
	if err != nil {
		return 0, err
	}

	cutoff := q.now().Add(-retention)
	kept := file.Cases[:0]
	purged := 0
	for _, c := range file.Cases {
		if c.Status.Terminal() && c.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, c)
	}

	if purged == 0 {
		return 0, nil
	}
	file.Cases = kept
	return purged, q.save(file)
}

// load reads the queue file; a missing file is an empty queue
func (q *Queue) load() (*queueFile, error) {
	data, err := os.ReadFile(q.path)
	if os.IsNotExist(err) {
		return &queueFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read review queue: %w", err)
	}

	var file queueFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse review queue: %w", err)
	}
	return &file, nil
}

// save writes the whole queue atomically via temp file + rename
func (q *Queue) save(file *queueFile) error {
	file.LastUpdated = q.now().UTC()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal review queue: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(q.path), 0755); err != nil {
		return fmt.Errorf("create queue dir: %w", err)
	}

	tmp := q.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write review queue: %w", err)
	}
	if err := os.Rename(tmp, q.path); err != nil {
		return fmt.Errorf("replace review queue: %w", err)
	}
	return nil
}
