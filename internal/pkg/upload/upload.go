package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ErrUnsupportedType rejects attachments whose extension is not an
// allowed image format.
var ErrUnsupportedType = errors.New("unsupported image type: allowed are PNG, JPG, JPEG, GIF, WEBP")

// ErrUnsafeFilename rejects names that would escape the upload
// directory.
var ErrUnsafeFilename = errors.New("unsafe filename")

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Manager persists validated image attachments under a single
// directory.
type Manager struct {
	dir string
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the managed upload directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Setup creates the upload directory; called once at startup.
func (m *Manager) Setup() error {
	return os.MkdirAll(m.dir, 0755)
}

// AllowedFilename reports whether the client filename carries an
// accepted image extension (case-insensitive).
func AllowedFilename(name string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(name))]
}

// SanitizeFilename strips path components and characters that are not
// safe in a stored filename. Whitespace becomes underscores; leading
// dots are dropped so the result never hides itself or walks upward.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}

// Save validates the attachment and writes it into the upload
// directory under a timestamp-prefixed name. Nothing is written when
// validation fails; a partially written file is removed.
func (m *Manager) Save(file *multipart.FileHeader) (string, error) {
	if !AllowedFilename(file.Filename) {
		return "", ErrUnsupportedType
	}

	// Nanosecond prefix keeps concurrent uploads of the same original
	// name from colliding.
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), SanitizeFilename(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fullPath := filepath.Join(m.dir, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Clean up partial file
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write %s: %w", fullPath, err)
	}

	return name, nil
}

// Resolve maps a stored filename to its path inside the upload
// directory, refusing anything that is not a plain filename.
func (m *Manager) Resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsRune(name, '\\') || name != filepath.Base(name) {
		return "", ErrUnsafeFilename
	}
	return filepath.Join(m.dir, name), nil
}

// Remove deletes a stored file. A file that is already gone counts as
// removed.
func (m *Manager) Remove(name string) error {
	fullPath, err := m.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
