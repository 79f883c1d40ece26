// Package store owns the single persisted document for the tabiplan
// application. All state lives in one JSON blob under a fixed key; every save
// replaces the whole blob and synchronously notifies subscribers. There is no
// partial or merge write — the last writer wins.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/knorii/tabiplan/internal/domain"
)

// documentKey is the fixed storage key the document lives under.
const documentKey = "document"

// defaultTripID is the id of the trip a fresh document starts with.
const defaultTripID = "trip-default"

// Store is the document store. It serializes the read-modify-write cycle with
// a single mutex: there is exactly one logical writer, and mutations either
// run to completion or fail before any write occurs.
type Store struct {
	d   *diskv.Diskv
	now func() time.Time

	mu sync.Mutex // guards the load → mutate → write cycle

	subMu   sync.Mutex
	subs    map[int]func(domain.Document)
	nextSub int
}

// New opens a Store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		now:  time.Now,
		subs: map[int]func(domain.Document){},
	}
}

// Load returns the current document.
//
// When no document has ever been persisted, Load synthesizes the default
// document (one trip with the bootstrap user), persists it and returns it.
// When the persisted document is in an older shape, the migration chain is
// applied and the migrated shape persisted before returning. Malformed stored
// JSON is fatal: Load returns domain.ErrCorruptDocument and no recovery is
// attempted.
func (s *Store) Load() (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (domain.Document, error) {
	if !s.d.Has(documentKey) {
		doc := s.defaultDocument()
		if err := s.write(doc); err != nil {
			return domain.Document{}, fmt.Errorf("store.Store.Load: %w", err)
		}
		return doc, nil
	}

	b, err := s.d.Read(documentKey)
	if err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Load: read: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Load: %w: %v", domain.ErrCorruptDocument, err)
	}

	raw, changed := Migrate(raw, s.now())
	doc, err := documentFromRaw(raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Load: %w: %v", domain.ErrCorruptDocument, err)
	}
	if changed {
		// Persist the migrated raw object rather than the typed document so
		// fields this application does not know about survive the rewrite.
		mb, err := json.Marshal(raw)
		if err != nil {
			return domain.Document{}, fmt.Errorf("store.Store.Load: marshal migrated: %w", err)
		}
		if err := s.d.Write(documentKey, mb); err != nil {
			return domain.Document{}, fmt.Errorf("store.Store.Load: persist migrated: %w", err)
		}
	}
	return doc, nil
}

// Save stamps UpdatedAt, persists the full document, then synchronously
// notifies every subscriber with the saved document before returning.
//
// Save marshals the typed document: fields this application does not know
// about are preserved through migration (see load), but not past the first
// subsequent write.
func (s *Store) Save(doc domain.Document) error {
	s.mu.Lock()
	doc.UpdatedAt = s.now()
	doc.SchemaVersion = domain.SchemaVersion
	err := s.write(doc)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("store.Store.Save: %w", err)
	}
	s.notify(doc)
	return nil
}

// Mutate loads the document, applies fn to it and saves the result, all under
// the store's write lock. When fn returns an error nothing is written and the
// error is returned unchanged, so failed mutations are atomic. Subscribers
// are notified after a successful write, exactly as with Save.
func (s *Store) Mutate(fn func(doc *domain.Document) error) (domain.Document, error) {
	s.mu.Lock()
	doc, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return domain.Document{}, err
	}
	if err := fn(&doc); err != nil {
		s.mu.Unlock()
		return domain.Document{}, err
	}
	doc.UpdatedAt = s.now()
	doc.SchemaVersion = domain.SchemaVersion
	err = s.write(doc)
	s.mu.Unlock()
	if err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Mutate: %w", err)
	}
	s.notify(doc)
	return doc, nil
}

// Subscribe registers fn to be called synchronously after every successful
// save, with the document that was saved. The returned function removes the
// subscription.
func (s *Store) Subscribe(fn func(domain.Document)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Reset erases the persisted document. The next Load synthesizes the default
// document again. Subscribers are not notified — callers reload everything
// after a reset.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.d.Has(documentKey) {
		return nil
	}
	if err := s.d.Erase(documentKey); err != nil {
		return fmt.Errorf("store.Store.Reset: %w", err)
	}
	return nil
}

// GenerateID returns a fresh opaque unique id for any entity.
func (s *Store) GenerateID() string {
	return uuid.NewString()
}

func (s *Store) notify(doc domain.Document) {
	s.subMu.Lock()
	fns := make([]func(domain.Document), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(doc)
	}
}

func (s *Store) write(doc domain.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := s.d.Write(documentKey, b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *Store) defaultDocument() domain.Document {
	now := s.now()
	trip := domain.NewEmptyTrip(defaultTripID, "メイン旅行", now)
	return domain.Document{
		SchemaVersion: domain.SchemaVersion,
		Trips:         []domain.Trip{trip},
		CurrentTripID: defaultTripID,
		UpdatedAt:     now,
	}
}

// documentFromRaw converts a migrated raw object into the typed document.
func documentFromRaw(raw map[string]any) (domain.Document, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return domain.Document{}, err
	}
	var doc domain.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}
