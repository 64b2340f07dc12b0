// Package config manages the viewer configuration with thread-safe
// access and automatic persistence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/luoshushi/oxyplot/internal/observability"
)

const (
	envConfigDir = "OXYVIEW_CONFIG_DIR"
	configName   = "oxyview.json"

	// Frame rate constraints, frames per second.
	MinFrameRate, MaxFrameRate = 1, 120

	DefaultFrameRate           = 30
	DefaultWheelZoomEnabled    = true
	DefaultZoomStep            = 0.12
	DefaultPanFraction         = 0.1
	DefaultTrackerHitLimit     = 20.0
	DefaultDoubleClickWindowMs = 500
)

// Config stores the viewer configuration.
type Config struct {
	// FrameRate is the render tick rate in frames per second.
	FrameRate int `json:"frame_rate"`

	// WheelZoomEnabled gates mouse-wheel zooming.
	WheelZoomEnabled bool `json:"wheel_zoom_enabled"`

	// ZoomStep is the per-notch zoom step for wheel and the extra
	// mouse buttons.
	ZoomStep float64 `json:"zoom_step"`

	// PanFraction is the fraction of the plot area one arrow-key
	// press pans.
	PanFraction float64 `json:"pan_fraction"`

	// TrackerHitLimit is the tracker hit-test distance in pixels.
	TrackerHitLimit float64 `json:"tracker_hit_limit"`

	// DoubleClickWindowMs is the double-click timing window.
	DoubleClickWindowMs int `json:"double_click_window_ms"`
}

func defaults() Config {
	return Config{
		FrameRate:           DefaultFrameRate,
		WheelZoomEnabled:    DefaultWheelZoomEnabled,
		ZoomStep:            DefaultZoomStep,
		PanFraction:         DefaultPanFraction,
		TrackerHitLimit:     DefaultTrackerHitLimit,
		DoubleClickWindowMs: DefaultDoubleClickWindowMs,
	}
}

// Manager manages the viewer configuration.
//
// All setter methods persist changes; getters use read locks for
// concurrent access.
type Manager struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	config Config
	logger *observability.CoreLogger
}

// NewManager loads the configuration at path, creating it with
// defaults when absent. fs nil selects the OS filesystem.
func NewManager(fs afero.Fs, path string, logger *observability.CoreLogger) *Manager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	m := &Manager{
		fs:     fs,
		path:   path,
		config: defaults(),
		logger: logger,
	}
	if err := m.loadOrCreate(); err != nil {
		m.logger.Error(fmt.Sprintf("config: error loading or creating: %v", err))
	}
	return m
}

// loadOrCreate loads the configuration or stores and uses defaults.
func (m *Manager) loadOrCreate() error {
	data, err := afero.ReadFile(m.fs, m.path)

	// No config file yet, create and save it.
	if errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(m.path); dir != "" {
			_ = m.fs.MkdirAll(dir, 0o755)
		}
		return m.save()
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &m.config); err != nil {
		return err
	}

	m.normalize()
	return nil
}

// normalize ensures all config values are within valid ranges.
func (m *Manager) normalize() {
	m.config.FrameRate = clamp(m.config.FrameRate, MinFrameRate, MaxFrameRate)
	if m.config.ZoomStep <= 0 || m.config.ZoomStep >= 1 {
		m.config.ZoomStep = DefaultZoomStep
	}
	if m.config.PanFraction <= 0 || m.config.PanFraction > 1 {
		m.config.PanFraction = DefaultPanFraction
	}
	if m.config.TrackerHitLimit <= 0 {
		m.config.TrackerHitLimit = DefaultTrackerHitLimit
	}
	if m.config.DoubleClickWindowMs <= 0 {
		m.config.DoubleClickWindowMs = DefaultDoubleClickWindowMs
	}
}

func clamp(val, minimum, maximum int) int {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}

// save writes the current configuration to disk.
//
// Must be called while holding the lock.
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file + rename.
	tempPath := m.path + ".tmp"
	if err := afero.WriteFile(m.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp config file: %v", err)
	}
	if err := m.fs.Rename(tempPath, m.path); err != nil {
		return fmt.Errorf("failed to rename tmp config file: %v", err)
	}
	return nil
}

// Path returns the on-disk config path.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Snapshot returns a copy of the current config.
func (m *Manager) Snapshot() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// FrameRate returns the render tick rate.
func (m *Manager) FrameRate() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.FrameRate
}

// FrameInterval returns the render tick period.
func (m *Manager) FrameInterval() time.Duration {
	return time.Second / time.Duration(m.FrameRate())
}

// SetFrameRate sets the render tick rate in frames per second.
func (m *Manager) SetFrameRate(fps int) error {
	if fps < MinFrameRate || fps > MaxFrameRate {
		return fmt.Errorf("frame rate must be between %d and %d, got %d",
			MinFrameRate, MaxFrameRate, fps)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.FrameRate = fps
	return m.save()
}

// WheelZoomEnabled returns whether wheel zooming is honored.
func (m *Manager) WheelZoomEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.WheelZoomEnabled
}

// SetWheelZoomEnabled toggles wheel zooming.
func (m *Manager) SetWheelZoomEnabled(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.WheelZoomEnabled = enabled
	return m.save()
}

// ZoomStep returns the per-notch zoom step.
func (m *Manager) ZoomStep() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ZoomStep
}

// SetZoomStep sets the per-notch zoom step, a value in (0, 1).
func (m *Manager) SetZoomStep(step float64) error {
	if step <= 0 || step >= 1 {
		return fmt.Errorf("zoom step must be in (0, 1), got %g", step)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.ZoomStep = step
	return m.save()
}

// PanFraction returns the keyboard pan fraction.
func (m *Manager) PanFraction() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.PanFraction
}

// TrackerHitLimit returns the tracker hit-test distance in pixels.
func (m *Manager) TrackerHitLimit() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.TrackerHitLimit
}

// DoubleClickWindow returns the double-click timing window.
func (m *Manager) DoubleClickWindow() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Duration(m.config.DoubleClickWindowMs) * time.Millisecond
}

// SetConfig replaces the full config (normalized) and persists it.
func (m *Manager) SetConfig(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = cfg
	m.normalize()
	return m.save()
}

// DefaultPath returns the path where the config should be stored:
// $OXYVIEW_CONFIG_DIR, then ~/.config/oxyview, then the OS user config
// dir, then a temp dir.
func DefaultPath() string {
	if raw := strings.TrimSpace(os.Getenv(envConfigDir)); raw != "" {
		if p, ok := pathFromDir(raw); ok {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if p, ok := pathFromDir(filepath.Join(home, ".config", "oxyview")); ok {
			return p
		}
	}

	if base, err := os.UserConfigDir(); err == nil {
		if p, ok := pathFromDir(filepath.Join(base, "oxyview")); ok {
			return p
		}
	}

	if tmp, err := os.MkdirTemp("", "oxyview-*"); err == nil {
		return filepath.Join(tmp, configName)
	}
	return filepath.Join(os.TempDir(), configName)
}

func pathFromDir(dir string) (string, bool) {
	dir = filepath.Clean(strings.TrimSpace(dir))
	if dir == "" {
		return "", false
	}
	if err := ensureWritableDir(dir); err != nil {
		return "", false
	}
	return filepath.Join(dir, configName), true
}

// ensureWritableDir verifies directory writability without leaving
// files behind.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".oxyview-writecheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
