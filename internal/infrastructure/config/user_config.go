package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// UserConfig is the per-user state kept in ~/.hideout/config.json. It only
// remembers which profile commands act on by default.
type UserConfig struct {
	DefaultProfile string `json:"default_profile,omitempty"`
}

// UserConfigHandler reads and writes one user config file
type UserConfigHandler struct {
	path string
}

// NewUserConfigHandler targets ~/.hideout/config.json
func NewUserConfigHandler() (*UserConfigHandler, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(home, ".hideout", "config.json")), nil
}

// NewUserConfigHandlerAt targets an explicit file
func NewUserConfigHandlerAt(path string) *UserConfigHandler {
	return &UserConfigHandler{path: path}
}

// Load returns the stored config. A missing or empty file is an empty config.
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	cfg := &UserConfig{}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config %s: %w", h.path, err)
	}
	return cfg, nil
}

// Save replaces the file through a rename, so a crash never leaves half a
// config behind
func (h *UserConfigHandler) Save(cfg *UserConfig) error {
	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("failed to replace user config: %w", err)
	}
	return nil
}

// SetDefaultProfile remembers name as the default profile
func (h *UserConfigHandler) SetDefaultProfile(name string) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}
	cfg.DefaultProfile = name
	return h.Save(cfg)
}

// ClearDefaultProfile forgets the default profile
func (h *UserConfigHandler) ClearDefaultProfile() error {
	return h.SetDefaultProfile("")
}

// GetConfigPath returns the file this handler targets
func (h *UserConfigHandler) GetConfigPath() string {
	return h.path
}
