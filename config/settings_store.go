package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sync"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// SettingsStore persists driver settings in a YAML file and hands out
// clamped snapshots. mu guards both the snapshot and the viper instance.
type SettingsStore struct {
	path string

	mu      sync.RWMutex
	v       *viper.Viper
	current dto.SettingsSnapshot
	watcher *fsnotify.Watcher
}

// NewSettingsStore loads settings from path. A missing file yields the defaults.
func NewSettingsStore(path string) (*SettingsStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(abs)
	v.SetConfigType("yaml")

	d := dto.DefaultSettings()
	v.SetDefault("fuel_price", d.FuelPrice)
	v.SetDefault("city_km_per_l", d.CityKmPerL)
	v.SetDefault("hwy_km_per_l", d.HwyKmPerL)
	v.SetDefault("min_net_per_hour", d.MinNetPerHour)
	v.SetDefault("other_cost_per_km", d.OtherCostPerKm)
	v.SetDefault("fee_pct", d.FeePct)

	s := &SettingsStore{path: abs, v: v}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the absolute settings file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Snapshot returns the current settings.
func (s *SettingsStore) Snapshot() dto.SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update clamps and persists new settings, returning what was stored.
func (s *SettingsStore) Update(next dto.SettingsSnapshot) (dto.SettingsSnapshot, error) {
	next = next.Clamp()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set("fuel_price", next.FuelPrice)
	s.v.Set("city_km_per_l", next.CityKmPerL)
	s.v.Set("hwy_km_per_l", next.HwyKmPerL)
	s.v.Set("min_net_per_hour", next.MinNetPerHour)
	s.v.Set("other_cost_per_km", next.OtherCostPerKm)
	s.v.Set("fee_pct", next.FeePct)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return s.current, fmt.Errorf("failed to write settings %s: %w", s.path, err)
	}

	s.current = next
	log.Printf("Settings updated: %+v", next)
	return next, nil
}

// Watch reloads the settings whenever the file is written or recreated.
// The directory is watched so editors that replace the file are seen too.
func (s *SettingsStore) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != s.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				if err := s.reload(); err != nil {
					log.Printf("Warning: settings reload failed: %v", err)
					continue
				}
				log.Printf("Settings reloaded from %s", ev.Name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Warning: settings watcher error: %v", err)
			}
		}
	}()
	return nil
}

// Close stops watching the settings file.
func (s *SettingsStore) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Close()
}

// reload reads the file, if present, and replaces the snapshot.
func (s *SettingsStore) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read settings %s: %w", s.path, err)
		}
		log.Printf("Settings file %s not found, using defaults", s.path)
	}

	var snap dto.SettingsSnapshot
	if err := s.v.Unmarshal(&snap); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	s.current = snap.Clamp()
	return nil
}
