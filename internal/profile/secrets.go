package profile

import (
	"os"
	"strings"
	"sync"
)

// EnvSecretStore resolves slot secrets from environment variables named
// <PREFIX>_<TENANT>_<PROVIDER>_<SLOT>, upper-cased with every
// non-alphanumeric rune replaced by '_'.
type EnvSecretStore struct {
	Prefix string
	lookup func(string) (string, bool)
}

// NewEnvSecretStore creates a store reading the process environment.
func NewEnvSecretStore(prefix string) *EnvSecretStore {
	return &EnvSecretStore{Prefix: prefix, lookup: os.LookupEnv}
}

// VarName returns the environment variable consulted for a slot.
func (e *EnvSecretStore) VarName(tenantID, provider, slotID string) string {
	return envKey(e.Prefix, tenantID, provider, slotID)
}

func (e *EnvSecretStore) GetSlotSecret(tenantID, provider, slotID string) (string, bool) {
	v, ok := e.lookup(e.VarName(tenantID, provider, slotID))
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func envKey(parts ...string) string {
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteByte('_')
		}
		for _, r := range strings.ToUpper(p) {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			} else {
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

// MemorySecretStore keeps secrets in a map.
type MemorySecretStore struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewMemorySecretStore creates an empty store.
func NewMemorySecretStore() *MemorySecretStore {
	return &MemorySecretStore{secrets: make(map[string]string)}
}

// Set stores a secret for a slot.
func (m *MemorySecretStore) Set(tenantID, provider, slotID, secret string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[tenantID+"\x00"+provider+"\x00"+slotID] = secret
}

func (m *MemorySecretStore) GetSlotSecret(tenantID, provider, slotID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.secrets[tenantID+"\x00"+provider+"\x00"+slotID]
	return v, ok && v != ""
}
