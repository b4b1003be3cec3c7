// Package fixtures serves appointment records from a YAML file over the same REST shape as
// the booking backend, for local development and tests.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// idKey is the backend's identifier field; delayKey is a fixture-only field that delays responses.
const (
	idKey    = "_id"
	delayKey = "_delay"
)

//go:embed samples/appointments.yaml
var sampleAppointments []byte

// ErrNotFound is returned by Store.Get for unknown identifiers.
var ErrNotFound = errors.New("appointment not found")

// Record is one fixture document. Body is served as-is, so fixtures may deliberately
// violate the appointment schema.
type Record struct {
	ID    string
	Delay time.Duration
	Body  map[string]any
}

// Store holds fixture records keyed by identifier. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
}

type fixtureFile struct {
	Appointments []map[string]any `yaml:"appointments"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]Record)}
}

// LoadFile reads fixtures from a YAML file.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file %s: %w", path, err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing fixture file %s: %w", path, err)
	}
	return store, nil
}

// Sample returns a store loaded with the embedded sample appointments.
func Sample() *Store {
	store, err := Parse(sampleAppointments)
	if err != nil {
		panic(fmt.Sprintf("embedded sample fixtures are invalid: %v", err))
	}
	return store
}

// Parse builds a store from YAML fixture data.
func Parse(data []byte) (*Store, error) {
	var file fixtureFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}

	store := NewStore()
	for i, body := range file.Appointments {
		if _, err := store.Add(body); err != nil {
			return nil, fmt.Errorf("appointment %d: %w", i, err)
		}
	}
	return store, nil
}

// Add stores body, assigning a UUID when it has no "_id". The "_delay" key is removed
// from the served body. It returns the record's identifier.
func (s *Store) Add(body map[string]any) (string, error) {
	if body == nil {
		return "", errors.New("fixture body is empty")
	}

	record := Record{Body: make(map[string]any, len(body))}
	for k, v := range body {
		record.Body[k] = v
	}

	if raw, ok := record.Body[delayKey]; ok {
		delete(record.Body, delayKey)
		d, err := time.ParseDuration(fmt.Sprint(raw))
		if err != nil {
			return "", fmt.Errorf("%s: %w", delayKey, err)
		}
		record.Delay = d
	}

	id := fmt.Sprint(record.Body[idKey])
	if record.Body[idKey] == nil || id == "" {
		id = uuid.NewString()
		record.Body[idKey] = id
	}
	record.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = record
	return id, nil
}

// Get returns the record for id or ErrNotFound.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// IDs returns the stored identifiers in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
