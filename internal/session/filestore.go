package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const (
	dirName   = "auditctl"
	fileName  = "session.json"
	dirPerms  = 0700
	filePerms = 0600
)

// Path returns the full path to the CLI session file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Load reads the persisted CLI session. Returns (nil, nil) when no session
// file exists.
func Load() (*Session, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if !s.Role.Valid() {
		return nil, errors.New("corrupt session file: unknown role")
	}
	return &s, nil
}

// Save writes the CLI session to disk, creating the directory if needed.
func Save(s *Session) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, filePerms)
}

// Clear removes the session file.
func Clear() error {
	p, err := Path()
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
