package config

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"dario.cat/mergo"
	"github.com/labelforge/labelforge/pkg/logger"
)

// Manager holds the active configuration and reloads it when a watchable
// source changes.
type Manager struct {
	Service    Service
	current    atomic.Pointer[Config]
	sources    []Source
	callbacks  []func(*Config)
	callbackMu sync.RWMutex
	reloadMu   sync.Mutex
	cancel     context.CancelFunc
}

// NewManager creates a new configuration manager.
func NewManager(service Service) *Manager {
	if service == nil {
		service = NewService()
	}
	return &Manager{Service: service}
}

// Load loads configuration from sources and remembers them for reloads.
func (m *Manager) Load(ctx context.Context, sources ...Source) (*Config, error) {
	cfg, err := m.Service.Load(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	m.reloadMu.Lock()
	m.sources = append([]Source(nil), sources...)
	m.reloadMu.Unlock()
	m.current.Store(cfg)
	return cfg, nil
}

// Get returns the active configuration, or the defaults before Load.
func (m *Manager) Get() *Config {
	if cfg := m.current.Load(); cfg != nil {
		return cfg
	}
	return Default()
}

// Override merges the non-zero fields of patch over the active
// configuration and validates the result.
func (m *Manager) Override(patch *Config) (*Config, error) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()
	merged := *m.Get()
	if err := mergo.Merge(&merged, patch, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge configuration override: %w", err)
	}
	if err := m.Service.Validate(&merged); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	m.current.Store(&merged)
	m.notify(&merged)
	return &merged, nil
}

// OnChange registers a callback run after every successful reload.
func (m *Manager) OnChange(callback func(*Config)) {
	m.callbackMu.Lock()
	m.callbacks = append(m.callbacks, callback)
	m.callbackMu.Unlock()
}

// Watch reloads the configuration whenever a watchable source changes,
// until ctx is done or Close is called.
func (m *Manager) Watch(ctx context.Context) error {
	m.reloadMu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	sources := append([]Source(nil), m.sources...)
	m.reloadMu.Unlock()
	for _, s := range sources {
		ws, ok := s.(WatchableSource)
		if !ok {
			continue
		}
		if err := ws.Watch(watchCtx, func() { m.reload(watchCtx) }); err != nil {
			cancel()
			return fmt.Errorf("failed to watch %s source: %w", s.Type(), err)
		}
	}
	return nil
}

func (m *Manager) reload(ctx context.Context) {
	log := logger.FromContext(ctx)
	m.reloadMu.Lock()
	sources := append([]Source(nil), m.sources...)
	m.reloadMu.Unlock()
	cfg, err := m.Service.Load(ctx, sources...)
	if err != nil {
		log.Warn("configuration reload failed, keeping previous configuration", "error", err)
		return
	}
	m.current.Store(cfg)
	log.Info("configuration reloaded")
	m.notify(cfg)
}

func (m *Manager) notify(cfg *Config) {
	m.callbackMu.RLock()
	callbacks := append([](func(*Config))(nil), m.callbacks...)
	m.callbackMu.RUnlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

// Close stops watching sources.
func (m *Manager) Close() {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
