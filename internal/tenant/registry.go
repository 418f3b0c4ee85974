package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// PartnerConfig describes one white-label portal brand served by this
// deployment. Loaded from apps.json at startup.
type PartnerConfig struct {
	AppID        string          `json:"app_id"`
	AppName      string          `json:"app_name"`
	Region       string          `json:"region"`
	SupportEmail string          `json:"support_email"`
	TermsURL     string          `json:"terms_url"`
	PrivacyURL   string          `json:"privacy_url"`
	Features     map[string]bool `json:"features"`
}

type PartnersFile struct {
	Apps []PartnerConfig `json:"apps"`
}

type Registry struct {
	mu   sync.RWMutex
	apps map[string]*PartnerConfig
}

func NewRegistry() *Registry {
	return &Registry{
		apps: make(map[string]*PartnerConfig),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read partner config: %w", err)
	}

	var file PartnersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse partner config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Apps {
		registry.Register(&file.Apps[i])
	}
	return registry, nil
}

func (r *Registry) Register(cfg *PartnerConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[cfg.AppID] = cfg
}

func (r *Registry) Get(appID string) *PartnerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.apps[appID]
}

func (r *Registry) Exists(appID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.apps[appID]
	return ok
}

func (r *Registry) HasFeature(appID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.apps[appID]
	if !ok {
		return false
	}
	return cfg.Features[feature]
}

func (r *Registry) All() []*PartnerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*PartnerConfig, 0, len(r.apps))
	for _, cfg := range r.apps {
		result = append(result, cfg)
	}
	return result
}
