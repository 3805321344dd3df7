package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hrmail/hrmail/internal/fsutil"
	"github.com/hrmail/hrmail/internal/logger"
)

// Set maps template keys to template bodies.
type Set map[string]string

// Store keeps the template bodies in a human-editable JSON file.
// Every call re-reads the file, so edits made elsewhere are picked up.
type Store struct {
	path string
	log  *logger.Logger
}

// NewStore creates a new Store backed by path
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, log: log.WithComponent("templates")}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// LoadAll returns every template. A missing file is created with the default
// catalog; catalog keys missing from an existing file are filled in from the
// defaults and persisted.
func (s *Store) LoadAll() (Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		set := Defaults()
		if err := s.write(set); err != nil {
			return nil, err
		}
		s.log.Info().Str("path", s.path).Msg("template file initialized with defaults")
		return set, nil
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptTemplateStore, s.path, err)
	}
	if set == nil {
		set = Set{}
	}

	var missing []string
	defaults := Defaults()
	for _, e := range Catalog {
		if _, ok := set[e.Key]; !ok {
			set[e.Key] = defaults[e.Key]
			missing = append(missing, e.Key)
		}
	}
	if len(missing) > 0 {
		if err := s.write(set); err != nil {
			return nil, err
		}
		s.log.Info().Strs("keys", missing).Msg("missing templates restored from defaults")
	}

	return set, nil
}

// Get returns the body stored for key.
func (s *Store) Get(key string) (string, error) {
	if !Known(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
	}
	set, err := s.LoadAll()
	if err != nil {
		return "", err
	}
	body, ok := set[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
	}
	return body, nil
}

// Save replaces the body stored for a catalog key. The body is trimmed.
func (s *Store) Save(key, body string) error {
	if !Known(key) {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
	}

	set, err := s.LoadAll()
	if err != nil {
		return err
	}
	set[key] = strings.TrimSpace(body)

	if err := s.write(set); err != nil {
		return err
	}
	s.log.Info().Str("template", key).Msg("template saved")
	return nil
}

// Reset re-initializes the file with the default catalog. The previous file
// is kept next to the original, with a ".corrupt" suffix when it could not be
// decoded and ".bak" otherwise.
func (s *Store) Reset() (Set, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		backup := s.path + ".bak"
		var probe Set
		if json.Unmarshal(data, &probe) != nil {
			backup = s.path + ".corrupt"
		}
		if err := os.WriteFile(backup, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to back up template file: %w", err)
		}
		s.log.Warn().Str("backup", backup).Msg("previous template file backed up")
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	set := Defaults()
	if err := s.write(set); err != nil {
		return nil, err
	}
	s.log.Info().Str("path", s.path).Msg("templates reset to defaults")
	return set, nil
}

func (s *Store) write(set Set) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode templates: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to persist templates: %w", err)
	}
	return nil
}
