package credential

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hrmail/hrmail/internal/fsutil"
)

// Store persists the single credential of this installation.
type Store interface {
	// Load returns the stored credential, or nil and no error when none exists.
	Load() (*Credential, error)
	// Save replaces the stored credential.
	Save(c *Credential) error
	// Delete removes the stored credential. Deleting a missing credential is not an error.
	Delete() error
}

// FileStore keeps the credential in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a new FileStore backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the credential file. It never touches the network.
func (s *FileStore) Load() (*Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	var c Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCredential, s.path, err)
	}
	return &c, nil
}

// Save writes the credential atomically with owner-only permissions.
func (s *FileStore) Save(c *Credential) error {
	out := *c
	if out.Type == "" {
		out.Type = authorizedUserType
	}
	out.Expiry = out.Expiry.UTC()

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	return nil
}

// Delete removes the credential file
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credential file: %w", err)
	}
	return nil
}
