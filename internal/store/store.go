package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"barveredales/internal/credential"
	"barveredales/internal/model"

	"github.com/rs/zerolog/log"
)

// Version is stamped into exports and the seeded document.
const Version = "1.0.0"

// Store owns the document slot. Every mutation is a whole-document
// read-modify-write serialized behind one mutex; two Stores sharing a slot
// remain last-writer-wins at document granularity, exactly like two browser
// tabs sharing a storage key.
//
// Missing data is never an error: lookups return nil/false and import failures
// are swallowed into the activity log.
type Store struct {
	mu    sync.Mutex
	slot  Slot
	codec credential.Codec
}

// New builds a Store over the given slot, seeding the initial document
// (one admin account, empty sessions and logs, default settings) when the
// slot is empty.
func New(ctx context.Context, slot Slot, codec credential.Codec) (*Store, error) {
	s := &Store{slot: slot, codec: codec}
	_, ok, err := slot.Read(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
		log.Info().Msg("document store seeded")
	}
	return s, nil
}

func (s *Store) seed(ctx context.Context) error {
	adminDigest, err := s.codec.Hash("admin123")
	if err != nil {
		return err
	}
	doc := &model.Document{
		Users: []model.User{{
			ID:        1,
			Nombres:   "Admin",
			Apellidos: "Veredales",
			Edad:      25,
			Email:     "admin@veredales.com",
			Password:  adminDigest,
			Role:      model.RoleAdmin,
			CreatedAt: time.Now(),
			IsActive:  true,
		}},
		Sessions: []model.Session{},
		Settings: model.Settings{
			AppName:          "BAR VEREDALES",
			Version:          Version,
			MaintenanceMode:  false,
			MaxLoginAttempts: 5,
		},
		Logs: []model.LogEntry{},
	}
	return s.write(ctx, doc)
}

func (s *Store) read(ctx context.Context) (*model.Document, error) {
	data, ok, err := s.slot.Read(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) write(ctx context.Context, doc *model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.slot.Write(ctx, data)
}

// View runs fn against a snapshot of the document. Mutations made by fn are
// discarded.
func (s *Store) View(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = &model.Document{}
	}
	return fn(doc)
}

// Mutate runs fn inside the read-modify-write cycle and persists the result.
// When fn returns an error the document is not written.
func (s *Store) Mutate(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = &model.Document{}
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(ctx, doc)
}

// Codec exposes the credential codec the store was built with.
func (s *Store) Codec() credential.Codec { return s.codec }

// ── Settings ─────────────────────────────────────────────────────────────────

// SettingsPatch carries a shallow settings update; nil fields are retained.
type SettingsPatch struct {
	AppName          *string `json:"appName"`
	Version          *string `json:"version"`
	MaintenanceMode  *bool   `json:"maintenanceMode"`
	MaxLoginAttempts *int    `json:"maxLoginAttempts"`
}

func (s *Store) GetSettings(ctx context.Context) (model.Settings, error) {
	var out model.Settings
	err := s.View(ctx, func(doc *model.Document) error {
		out = doc.Settings
		return nil
	})
	return out, err
}

func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) (model.Settings, error) {
	var out model.Settings
	err := s.Mutate(ctx, func(doc *model.Document) error {
		if patch.AppName != nil {
			doc.Settings.AppName = *patch.AppName
		}
		if patch.Version != nil {
			doc.Settings.Version = *patch.Version
		}
		if patch.MaintenanceMode != nil {
			doc.Settings.MaintenanceMode = *patch.MaintenanceMode
		}
		if patch.MaxLoginAttempts != nil {
			doc.Settings.MaxLoginAttempts = *patch.MaxLoginAttempts
		}
		out = doc.Settings
		return nil
	})
	return out, err
}

// ── Export / import / clear / stats ──────────────────────────────────────────

type exportEnvelope struct {
	model.Document
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

// ExportData serializes the full document plus export metadata, pretty-printed.
func (s *Store) ExportData(ctx context.Context) (string, error) {
	var out string
	err := s.View(ctx, func(doc *model.Document) error {
		data, err := json.MarshalIndent(exportEnvelope{
			Document:   *doc,
			ExportedAt: time.Now(),
			Version:    Version,
		}, "", "  ")
		if err != nil {
			return err
		}
		out = string(data)
		return nil
	})
	return out, err
}

// ImportData parses raw and wholesale-replaces the document. Malformed input
// is not an error: the operation returns false and leaves an import_error
// entry in the (current) activity log.
func (s *Store) ImportData(ctx context.Context, raw string) bool {
	var doc model.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		importErr := s.Mutate(ctx, func(cur *model.Document) error {
			cur.AppendLog(newLogEntry("import_error", "Error al importar datos: "+err.Error(), nil))
			return nil
		})
		if importErr != nil {
			log.Error().Err(importErr).Msg("failed to record import_error")
		}
		return false
	}
	err := s.Mutate(ctx, func(cur *model.Document) error {
		*cur = doc
		cur.AppendLog(newLogEntry("data_imported", "Datos importados exitosamente", nil))
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("import write failed")
		return false
	}
	return true
}

// ClearDatabase drops the slot, re-seeds the initial document, and records the
// wipe in the fresh activity log.
func (s *Store) ClearDatabase(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slot.Delete(ctx); err != nil {
		return err
	}
	if err := s.seed(ctx); err != nil {
		return err
	}
	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	doc.AppendLog(newLogEntry("database_cleared", "Base de datos limpiada", nil))
	return s.write(ctx, doc)
}

// GetStats summarizes the document.
func (s *Store) GetStats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	err := s.View(ctx, func(doc *model.Document) error {
		stats.TotalUsers = len(doc.Users)
		for i := range doc.Users {
			if doc.Users[i].IsActive {
				stats.ActiveUsers++
			}
		}
		stats.TotalSessions = len(doc.Sessions)
		for i := range doc.Sessions {
			if doc.Sessions[i].IsActive {
				stats.ActiveSessions++
			}
		}
		stats.TotalLogs = len(doc.Logs)
		if n := len(doc.Logs); n > 0 {
			stats.LastActivity = doc.Logs[n-1].Timestamp.Format(time.RFC3339)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func newLogEntry(action, message string, userID *int) model.LogEntry {
	return model.NewLogEntry(action, message, userID, "")
}
