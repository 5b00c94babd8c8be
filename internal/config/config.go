// Package config loads host configuration: the remote document URL, the two
// per-role tokens, and the role/editor signals. File values come from a TOML
// config, overridable per key by WEEKLY_* environment variables; invocation
// parameters arrive as flags and are filled in by the dispatcher.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"weekly/internal/role"
)

const (
	// AppName is the application directory name.
	AppName = "weekly"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Config holds host configuration plus per-invocation settings.
type Config struct {
	// RemoteURL is the shared document endpoint.
	RemoteURL string `toml:"remote_url"`

	// KeyholderToken and SubToken are the per-role bearer tokens.
	KeyholderToken string `toml:"token_keyholder"`
	SubToken       string `toml:"token_sub"`

	// RoleHint is the statically configured role hint.
	RoleHint string `toml:"role"`

	// AlwaysEdit always exposes the editor listing (visibility only).
	AlwaysEdit bool `toml:"always_edit"`

	// ModeText is the host's free-form mode indicator.
	ModeText string `toml:"mode_text"`

	// Per-invocation settings, never read from the file.
	Dir       string `toml:"-"` // config directory
	Quiet     bool   `toml:"-"`
	Debug     bool   `toml:"-"`
	RoleParam string `toml:"-"` // -role flag
	EditParam bool   `toml:"-"` // -edit flag
}

// Load reads the config file from configDir (default directory when empty)
// and applies environment overrides. A missing file is not an error; env
// variables alone can configure the tool.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	path := filepath.Join(dir, FileName)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WEEKLY_REMOTE_URL"); v != "" {
		c.RemoteURL = v
	}
	if v := os.Getenv("WEEKLY_TOKEN_KEYHOLDER"); v != "" {
		c.KeyholderToken = v
	}
	if v := os.Getenv("WEEKLY_TOKEN_SUB"); v != "" {
		c.SubToken = v
	}
	if v := os.Getenv("WEEKLY_MODE_TEXT"); v != "" {
		c.ModeText = v
	}
}

// Signals assembles the role-resolution inputs in one explicit value. The
// WEEKLY_ROLE and WEEKLY_FORCE_EDIT variables are the global overrides and
// are read here so resolution itself stays pure.
func (c *Config) Signals() role.Signals {
	return role.Signals{
		ModeText:        c.ModeText,
		Hint:            c.RoleHint,
		Param:           c.RoleParam,
		Override:        os.Getenv("WEEKLY_ROLE"),
		ForceEdit:       c.EditParam,
		AlwaysEdit:      c.AlwaysEdit,
		GlobalForceEdit: os.Getenv("WEEKLY_FORCE_EDIT") != "",
	}
}

// HasRemote reports whether a remote document URL is configured.
func (c *Config) HasRemote() bool { return c.RemoteURL != "" }
