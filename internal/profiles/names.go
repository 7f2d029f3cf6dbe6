package profiles

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned for names that cannot be stored as a filename.
var ErrInvalidName = errors.New("invalid name")

// imageExtensions lists the reference photo extensions picked up when listing.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// CleanName trims a name and converts it to NFC, so "Jiří" typed with
// combining marks and with precomposed characters maps to the same file.
func CleanName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ValidateName rejects names that are empty or could escape the profiles directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
		}
	}
	return nil
}

// FilenameStem encodes an identity as a filename stem (spaces become underscores).
func FilenameStem(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// IdentityFromFilename derives the identity from a reference photo filename,
// e.g. "Jan_Novak.jpg" -> "Jan Novak".
func IdentityFromFilename(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(stem, "_", " ")
}

// IsImageFile reports whether a filename has a reference photo extension.
func IsImageFile(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}
