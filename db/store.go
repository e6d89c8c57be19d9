package db

import (
	"embed"
	"encoding/json"
	"errors"
	"log"

	"github.com/deemkeen/disclosures/domain"
)

const (
	KeyBlocks     = "zb-data"
	KeyCategories = "zb-kategoriler"
	KeyPages      = "zb-sayfalar"
	KeyViewMode   = "zb-view-mode"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

// KV is the minimal storage the Store needs.
type KV interface {
	ReadValue(key string) (error, string)
	WriteValue(key, value string) error
	DeleteValues(keys ...string) error
}

// Store gives typed access to the three collections and the view preference.
// Reads never fail: absent or unreadable data yields the built-in defaults.
// Writes are best effort and only logged on failure.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Blocks() []domain.InformationBlock {
	var out []domain.InformationBlock
	load(s.kv, KeyBlocks, "defaults/blocks.json", &out)
	return out
}

func (s *Store) Categories() []domain.Category {
	var out []domain.Category
	load(s.kv, KeyCategories, "defaults/categories.json", &out)
	return out
}

func (s *Store) Pages() []domain.Page {
	var out []domain.Page
	load(s.kv, KeyPages, "defaults/pages.json", &out)
	return out
}

func (s *Store) SaveBlocks(blocks []domain.InformationBlock) {
	save(s.kv, KeyBlocks, blocks)
}

func (s *Store) SaveCategories(categories []domain.Category) {
	save(s.kv, KeyCategories, categories)
}

func (s *Store) SavePages(pages []domain.Page) {
	save(s.kv, KeyPages, pages)
}

// Reset drops the three collections so the next read returns defaults.
// The view preference is kept.
func (s *Store) Reset() {
	if err := s.kv.DeleteValues(KeyBlocks, KeyCategories, KeyPages); err != nil {
		log.Printf("Could not reset stored data: %v", err)
	}
}

func (s *Store) ViewMode() domain.ViewMode {
	err, v := s.kv.ReadValue(KeyViewMode)
	if err != nil {
		return domain.ViewCategorized
	}
	mode, _ := domain.ParseViewMode(v)
	return mode
}

func (s *Store) SetViewMode(mode domain.ViewMode) {
	if err := s.kv.WriteValue(KeyViewMode, string(mode)); err != nil {
		log.Printf("Could not store view mode: %v", err)
	}
}

func load(kv KV, key, fallback string, v any) {
	err, raw := kv.ReadValue(key)
	switch {
	case err == nil && raw != "":
		jsonErr := json.Unmarshal([]byte(raw), v)
		if jsonErr == nil {
			return
		}
		log.Printf("Stored %s is unreadable, using defaults: %v", key, jsonErr)
	case err != nil && !errors.Is(err, ErrNotFound):
		log.Printf("Could not read %s, using defaults: %v", key, err)
	}
	if err := readDefault(fallback, v); err != nil {
		log.Printf("Could not load default %s: %v", fallback, err)
	}
}

func readDefault(name string, v any) error {
	buf, err := defaultsFS.ReadFile(name)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, v)
}

func save(kv KV, key string, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		log.Printf("Could not encode %s: %v", key, err)
		return
	}
	if err := kv.WriteValue(key, string(buf)); err != nil {
		log.Printf("Could not store %s: %v", key, err)
	}
}
