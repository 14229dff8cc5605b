// Package profile reads tenant profiles and their credential slots.
//
// Profiles live in a small YAML document. Secrets never do: a SecretStore
// resolves the secret behind a slot at the moment it is needed.
package profile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Credential providers a tenant can hold keys for.
const (
	ProviderOrg     = "xyte-org"
	ProviderPartner = "xyte-partner"
)

// Providers lists every provider in evaluation order.
var Providers = []string{ProviderOrg, ProviderPartner}

// ErrProfileNotFound is returned when a tenant id has no stored profile.
var ErrProfileNotFound = errors.New("profile not found")

// KeySlot is one named credential slot for a provider.
type KeySlot struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name,omitempty"`
	Active bool   `yaml:"active,omitempty"`
}

// Tenant is a stored tenant profile.
type Tenant struct {
	ID       string               `yaml:"id"`
	Name     string               `yaml:"name,omitempty"`
	KeySlots map[string][]KeySlot `yaml:"keySlots,omitempty"`
}

// Store is the read side of tenant profile persistence.
type Store interface {
	ActiveTenant() (string, bool)
	GetTenant(id string) (Tenant, error)
	ListKeySlots(tenantID, provider string) []KeySlot
	GetActiveKeySlot(tenantID, provider string) (KeySlot, bool)
}

// SecretStore resolves the secret behind a key slot.
type SecretStore interface {
	GetSlotSecret(tenantID, provider, slotID string) (string, bool)
}

type document struct {
	ActiveTenant string   `yaml:"activeTenant,omitempty"`
	Tenants      []Tenant `yaml:"tenants,omitempty"`
}

// FileStore is a Store backed by a YAML document loaded once.
type FileStore struct {
	active  string
	tenants map[string]Tenant
}

// LoadFileStore reads path. A missing file yields an empty store.
func LoadFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewStore("", nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	return NewStore(doc.ActiveTenant, doc.Tenants), nil
}

// NewStore builds an in-memory store. It is also what tests use.
func NewStore(active string, tenants []Tenant) *FileStore {
	s := &FileStore{active: strings.TrimSpace(active), tenants: make(map[string]Tenant, len(tenants))}
	for _, t := range tenants {
		s.tenants[t.ID] = t
	}
	return s
}

// WithActiveTenant returns a copy whose active tenant is id (used by --tenant).
func (s *FileStore) WithActiveTenant(id string) *FileStore {
	return &FileStore{active: strings.TrimSpace(id), tenants: s.tenants}
}

func (s *FileStore) ActiveTenant() (string, bool) {
	return s.active, s.active != ""
}

func (s *FileStore) GetTenant(id string) (Tenant, error) {
	t, ok := s.tenants[id]
	if !ok {
		return Tenant{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return t, nil
}

func (s *FileStore) ListKeySlots(tenantID, provider string) []KeySlot {
	t, ok := s.tenants[tenantID]
	if !ok {
		return nil
	}
	slots := make([]KeySlot, len(t.KeySlots[provider]))
	copy(slots, t.KeySlots[provider])
	return slots
}

func (s *FileStore) GetActiveKeySlot(tenantID, provider string) (KeySlot, bool) {
	for _, slot := range s.ListKeySlots(tenantID, provider) {
		if slot.Active {
			return slot, true
		}
	}
	return KeySlot{}, false
}

// TenantIDs returns every stored tenant id, sorted.
func (s *FileStore) TenantIDs() []string {
	ids := make([]string, 0, len(s.tenants))
	for id := range s.tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
