package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"axis-viewer/internal/kv"
)

// PrefsPath is the path to the viewer preferences file, relative to the process working directory.
const PrefsPath = "config/viewer.json"

// Store backends for camera state.
const (
	StoreSQLite = kv.BackendSQLite
	StoreFile   = kv.BackendFile
	StoreMemory = kv.BackendMemory
)

// Prefs holds viewer-only preferences (debug overlays, grid, where state lives). Persisted across runs.
// The axis range and overlay markers live in the scene file instead.
type Prefs struct {
	ShowFPS     bool   `json:"show_fps"`
	ShowStats   bool   `json:"show_stats"`
	GridVisible bool   `json:"grid_visible"`
	AxesVisible bool   `json:"axes_visible"`
	Store       string `json:"store"`
	StorePath   string `json:"store_path,omitempty"`
	ScenePath   string `json:"scene_path,omitempty"`
	CameraKey   string `json:"camera_key,omitempty"`
	StylePath   string `json:"style_path,omitempty"`
	Fullscreen  bool   `json:"fullscreen"`
}

// Default returns default preferences (debug overlays off, grid and axes on, sqlite state).
func Default() Prefs {
	return Prefs{
		ShowFPS:     false,
		ShowStats:   false,
		GridVisible: true,
		AxesVisible: true,
		Store:       StoreSQLite,
		ScenePath:   ScenePath,
	}
}

// LoadPrefs reads preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file. Fields absent from the file keep
// their defaults.
func LoadPrefs(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// SavePrefs writes preferences to path, creating the directory if needed.
func SavePrefs(path string, p Prefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides store and scene locations from AXISVIEW_* environment variables
// (typically loaded from .env).
func (p *Prefs) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("AXISVIEW_STORE"); ok && v != "" {
		p.Store = v
	}
	if v, ok := lookup("AXISVIEW_DB"); ok && v != "" {
		p.StorePath = v
	}
	if v, ok := lookup("AXISVIEW_SCENE"); ok && v != "" {
		p.ScenePath = v
	}
	if v, ok := lookup("AXISVIEW_CAMERA_KEY"); ok && v != "" {
		p.CameraKey = v
	}
}
