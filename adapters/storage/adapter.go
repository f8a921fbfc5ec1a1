// Package storage provides the persistence gateway for fee proposals.
// The engine itself never performs I/O; callers invoke the gateway
// explicitly before and after a batch of synchronous mutations.
//
// The remote store is an opaque managed backend reached over HTTP with
// JSON payloads. Gateway errors bubble unchanged: no retries, no
// backoff, and a 401 surfaces as a typed unauthorized error so the
// caller can redirect to login.
package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Backend is a storage backend type
type Backend string

const (
	BackendRemote Backend = "remote"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Store is the proposal storage interface
type Store interface {
	// Save persists a proposal record. A record without an id is
	// created (POST) and the server-assigned id is written back; a
	// record with an id is replaced (PUT).
	Save(ctx context.Context, record *Record) error

	// Get retrieves a proposal record by id
	Get(ctx context.Context, id string) (*Record, error)

	// List lists proposal records with optional filters
	List(ctx context.Context, filter *ListFilter) ([]*Record, error)

	// Delete removes a proposal record
	Delete(ctx context.Context, id string) error

	// Close closes the store
	Close() error
}

// Record is a persisted proposal
type Record struct {
	// ID is the server-assigned identifier
	ID string `json:"id,omitempty"`

	// Name is the proposal display name
	Name string `json:"name"`

	// ClientID links the proposal to a client
	ClientID string `json:"client_id,omitempty"`

	// ProjectData is the opaque serialized proposal state
	ProjectData json.RawMessage `json:"project_data"`

	// CreatedAt is the creation timestamp
	CreatedAt time.Time `json:"created_at,omitempty"`

	// UpdatedAt is the last save timestamp
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ListFilter filters record listing
type ListFilter struct {
	ClientID string
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int
}

func (f *ListFilter) matches(r *Record) bool {
	if f == nil {
		return true
	}
	if f.ClientID != "" && r.ClientID != f.ClientID {
		return false
	}
	if !f.Since.IsZero() && r.UpdatedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && r.UpdatedAt.After(f.Until) {
		return false
	}
	return true
}

// Config configures the gateway factory
type Config struct {
	// Backend selects the storage backend
	Backend Backend

	// BaseURL is the remote store endpoint
	BaseURL string

	// APIKey authenticates against the remote store
	APIKey string

	// Path is the base directory for the file backend
	Path string

	// Timeout bounds remote requests
	Timeout time.Duration
}

// NewStore creates a store for the configured backend
func NewStore(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendRemote, "":
		return NewRemoteStore(cfg.BaseURL, cfg.APIKey, cfg.Timeout), nil
	case BackendFile:
		path := cfg.Path
		if path == "" {
			path = ".proposal-cost"
		}
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return NewRemoteStore(cfg.BaseURL, cfg.APIKey, cfg.Timeout), nil
	}
}
