// Package store persists the entire application state as one JSON
// document. Every mutation loads the full document, changes it in
// memory, and rewrites the whole file. Update serializes those
// read-modify-write cycles behind a process-wide mutex so concurrent
// requests cannot silently discard each other's writes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fitPerksAPI/internal/types/challenge"
	"fitPerksAPI/internal/types/reward"
	"fitPerksAPI/internal/types/submission"
	"fitPerksAPI/internal/types/ticket"
	"fitPerksAPI/internal/types/user"
)

// Document is the aggregate root holding every persisted collection.
type Document struct {
	Users       []user.User             `json:"users"`
	Challenges  []challenge.Challenge   `json:"challenges"`
	Rewards     []reward.Reward         `json:"rewards"`
	Submissions []submission.Submission `json:"submissions"`
	Tickets     []ticket.Ticket         `json:"tickets"`
	FAQ         []map[string]any        `json:"faq"`
}

// NewDocument returns an empty document with non-nil collections.
func NewDocument() *Document {
	return &Document{
		Users:       []user.User{},
		Challenges:  []challenge.Challenge{},
		Rewards:     []reward.Reward{},
		Submissions: []submission.Submission{},
		Tickets:     []ticket.Ticket{},
		FAQ:         []map[string]any{},
	}
}

func (d *Document) UserByID(id string) *user.User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByUsername matches case-insensitively, the same rule registration
// uses for uniqueness.
func (d *Document) UserByUsername(username string) *user.User {
	for i := range d.Users {
		if strings.EqualFold(d.Users[i].Username, username) {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Document) UserByEmail(email string) *user.User {
	for i := range d.Users {
		if strings.EqualFold(d.Users[i].Email, email) {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Document) ChallengeByID(id string) *challenge.Challenge {
	for i := range d.Challenges {
		if d.Challenges[i].ID == id {
			return &d.Challenges[i]
		}
	}
	return nil
}

func (d *Document) RewardByID(id string) *reward.Reward {
	for i := range d.Rewards {
		if d.Rewards[i].ID == id {
			return &d.Rewards[i]
		}
	}
	return nil
}

func (d *Document) SubmissionByID(id string) *submission.Submission {
	for i := range d.Submissions {
		if d.Submissions[i].ID == id {
			return &d.Submissions[i]
		}
	}
	return nil
}

// ErrNoChange tells Update the callback mutated nothing. The document
// is not rewritten and Update returns nil.
var ErrNoChange = errors.New("document unchanged")

// Store is the persistence seam the services depend on. A different
// backend can be dropped in without touching any service.
type Store interface {
	Load() (*Document, error)
	Save(doc *Document) error
	Update(fn func(doc *Document) error) error
}

// FileStore keeps the document in a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole document. A missing or corrupt file is replaced
// with a freshly persisted empty document; this is the only implicit
// creation behavior in the system.
func (s *FileStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save rewrites the whole document.
func (s *FileStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs one read-modify-write cycle under the store lock. If fn
// returns an error the document is not persisted.
func (s *FileStore) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return s.save(doc)
}

func (s *FileStore) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.initialize()
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		log.Printf("Data file %s is corrupt, reinitializing: %v", s.path, err)
		return s.initialize()
	}

	// older files may omit collections entirely
	ensureCollections(doc)
	return doc, nil
}

func (s *FileStore) initialize() (*Document, error) {
	doc := NewDocument()
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// temp file + rename so a crash mid-write never leaves a torn file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func ensureCollections(doc *Document) {
	if doc.Users == nil {
		doc.Users = []user.User{}
	}
	if doc.Challenges == nil {
		doc.Challenges = []challenge.Challenge{}
	}
	if doc.Rewards == nil {
		doc.Rewards = []reward.Reward{}
	}
	if doc.Submissions == nil {
		doc.Submissions = []submission.Submission{}
	}
	if doc.Tickets == nil {
		doc.Tickets = []ticket.Ticket{}
	}
	if doc.FAQ == nil {
		doc.FAQ = []map[string]any{}
	}
}
