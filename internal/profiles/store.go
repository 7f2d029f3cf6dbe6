// Package profiles stores one reference photo per registered identity in a
// directory. The directory listing is the identity registry.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/constants"
)

// ErrNotFound is returned when no reference photo exists for an identity.
var ErrNotFound = errors.New("profile not found")

// Profile is a registered identity and the file holding its reference photo.
type Profile struct {
	Identity string
	Filename string
	Path     string
}

// Store is a directory of reference photos.
type Store struct {
	dir string
	mu  sync.RWMutex // serializes writes against listing
}

// Open returns a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profiles directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the reference photo for name, replacing any previous one.
func (s *Store) Save(name string, data []byte) (Profile, error) {
	name = CleanName(name)
	if err := ValidateName(name); err != nil {
		return Profile{}, err
	}

	stem := FilenameStem(name)
	filename := stem + constants.ProfileExt
	path := filepath.Join(s.dir, filename)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // name validated above
		return Profile{}, fmt.Errorf("writing profile %s: %w", filename, err)
	}

	// A photo placed by hand under another extension would shadow or duplicate the new one.
	variants, err := s.variants(stem)
	if err != nil {
		return Profile{}, err
	}
	for _, v := range variants {
		if v == filename {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, v)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Profile{}, fmt.Errorf("removing stale profile %s: %w", v, err)
		}
	}

	return Profile{Identity: IdentityFromFilename(filename), Filename: filename, Path: path}, nil
}

// List returns every registered profile ordered by filename.
// This order is the match order used by recognition.
func (s *Store) List() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	profiles := make([]Profile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		identity := IdentityFromFilename(entry.Name())
		if seen[identity] {
			continue
		}
		seen[identity] = true
		profiles = append(profiles, Profile{
			Identity: identity,
			Filename: entry.Name(),
			Path:     filepath.Join(s.dir, entry.Name()),
		})
	}
	return profiles, nil
}

// Count returns the number of registered profiles.
func (s *Store) Count() (int, error) {
	profiles, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(profiles), nil
}

// Lookup returns the profile registered under name.
func (s *Store) Lookup(name string) (Profile, error) {
	identity := CleanName(name)
	profiles, err := s.List()
	if err != nil {
		return Profile{}, err
	}
	for _, p := range profiles {
		if p.Identity == identity {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, identity)
}

// Read returns the raw reference photo bytes of a profile.
func (s *Store) Read(p Profile) ([]byte, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", p.Filename, err)
	}
	return data, nil
}

// Delete removes every reference photo registered under name.
func (s *Store) Delete(name string) error {
	name = CleanName(name)
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	variants, err := s.variants(FilenameStem(name))
	if err != nil {
		return err
	}
	if len(variants) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	for _, v := range variants {
		if err := os.Remove(filepath.Join(s.dir, v)); err != nil {
			return fmt.Errorf("removing profile %s: %w", v, err)
		}
	}
	return nil
}

// variants returns the image filenames in the directory with the given stem.
// Callers must hold s.mu.
func (s *Store) variants(stem string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !IsImageFile(name) {
			continue
		}
		if strings.TrimSuffix(name, filepath.Ext(name)) == stem {
			names = append(names, name)
		}
	}
	return names, nil
}
