package store

import (
	"encoding/json"
	"fmt"

	"github.com/knorii/tabiplan/internal/domain"
)

// Export returns the full document pretty-printed, together with the dated
// download filename offered to the user.
func (s *Store) Export() (filename string, data []byte, err error) {
	doc, err := s.Load()
	if err != nil {
		return "", nil, fmt.Errorf("store.Store.Export: %w", err)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("store.Store.Export: %w", err)
	}
	name := "travel_schedule_" + s.now().Format("2006-01-02") + ".json"
	return name, b, nil
}

// Import replaces the persisted document with the supplied JSON.
//
// The payload is run through the same migration chain as Load before it is
// saved, so importing a legacy single-trip export or a document without a
// currentTripId yields a well-formed current document. On parse failure the
// previously persisted document is left untouched.
func (s *Store) Import(data []byte) (domain.Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Import: %w: %v", domain.ErrCorruptDocument, err)
	}
	raw, _ = Migrate(raw, s.now())
	doc, err := documentFromRaw(raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Import: %w: %v", domain.ErrCorruptDocument, err)
	}
	if err := s.Save(doc); err != nil {
		return domain.Document{}, fmt.Errorf("store.Store.Import: %w", err)
	}
	return doc, nil
}
