package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Upstream UpstreamSettings `json:"upstream"`
	Cache    CacheSettings    `json:"cache"`
	Log      LogConfig        `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// UpstreamSettings configures the metadata API gateway. MaxFilterPages is
// the filter-scan budget: it bounds worst-case upstream calls per request
// at the cost of a possibly truncated match count. MaxWindowPages is the
// runaway-scan bound for windowed pagination.
type UpstreamSettings struct {
	BaseURL        string `json:"baseUrl"`
	TimeoutMs      int    `json:"timeoutMs"`
	MaxWindowPages int    `json:"maxWindowPages"`
	MaxFilterPages int    `json:"maxFilterPages"`
}

// CacheSettings configures the startup catalogue warmer. WarmPages = 0
// disables warming.
type CacheSettings struct {
	WarmPages   int `json:"warmPages"`
	WarmWorkers int `json:"warmWorkers"`
}

// LogConfig represents file logging and rotation configuration.
type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Upstream: UpstreamSettings{
			BaseURL:        "https://api.tvmaze.com",
			TimeoutMs:      8000,
			MaxWindowPages: 50,
			MaxFilterPages: 19,
		},
		Cache: CacheSettings{
			WarmPages:   0,
			WarmWorkers: 4,
		},
		Log: LogConfig{
			MaxSize:    20,
			MaxAge:     14,
			MaxBackups: 3,
			Compress:   true,
		},
	}
}

// Manager loads and saves the settings file.
type Manager struct {
	mu   sync.Mutex
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// Load reads settings from disk, creating the file with defaults when it
// does not exist. Zero-valued fields are backfilled with defaults so old
// config files keep working, and environment overrides (TVMAZE_BASE_URL,
// PORT) are applied last.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		s := DefaultSettings()
		applyEnv(&s)
		if err := m.save(s); err != nil {
			return Settings{}, err
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	applyDefaults(&s)
	applyEnv(&s)
	return s, nil
}

// Save persists settings atomically (write to a temp file, then rename).
func (m *Manager) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(s)
}

func (m *Manager) save(s Settings) error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}

func applyDefaults(s *Settings) {
	def := DefaultSettings()
	if s.Server.Host == "" {
		s.Server.Host = def.Server.Host
	}
	if s.Server.Port <= 0 {
		s.Server.Port = def.Server.Port
	}
	if s.Upstream.BaseURL == "" {
		s.Upstream.BaseURL = def.Upstream.BaseURL
	}
	if s.Upstream.TimeoutMs <= 0 {
		s.Upstream.TimeoutMs = def.Upstream.TimeoutMs
	}
	if s.Upstream.MaxWindowPages <= 0 {
		s.Upstream.MaxWindowPages = def.Upstream.MaxWindowPages
	}
	if s.Upstream.MaxFilterPages <= 0 {
		s.Upstream.MaxFilterPages = def.Upstream.MaxFilterPages
	}
	if s.Cache.WarmWorkers <= 0 {
		s.Cache.WarmWorkers = def.Cache.WarmWorkers
	}
	if s.Log.MaxSize <= 0 {
		s.Log.MaxSize = def.Log.MaxSize
	}
}

func applyEnv(s *Settings) {
	if base := strings.TrimSpace(os.Getenv("TVMAZE_BASE_URL")); base != "" {
		s.Upstream.BaseURL = base
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			s.Server.Port = n
		}
	}
}
