package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"anim.gif", true},
		{"pic.webp", true},
		{"payload.exe", false},
		{"page.html", false},
		{"vector.svg", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedFilename(tt.name))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my holiday photo.jpg", "my_holiday_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\windows\\evil.png", "evil.png"},
		{".hidden.png", "hidden.png"},
		{"spa ce&(#).png", "spa_ce.png"},
		{"///", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

// newUploadRequest builds a multipart request carrying one file field.
func newUploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestManagerSaveComposesUniqueNames(t *testing.T) {
	manager := NewManager(t.TempDir())
	require.NoError(t, manager.Setup())

	var names []string
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		require.NoError(t, err)
		name, err := manager.Save(file)
		require.NoError(t, err)
		names = append(names, name)
		return c.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(newUploadRequest(t, "photo.PNG", "fake image bytes"), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	require.Len(t, names, 2)
	assert.NotEqual(t, names[0], names[1])
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, "_photo.PNG"), "composed name %q should keep the original name", name)
		content, err := os.ReadFile(filepath.Join(manager.Dir(), name))
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))
	}
}

func TestManagerSaveRejectsDisallowedExtension(t *testing.T) {
	manager := NewManager(t.TempDir())
	require.NoError(t, manager.Setup())

	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		require.NoError(t, err)
		_, err = manager.Save(file)
		require.ErrorIs(t, err, ErrUnsupportedType)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(newUploadRequest(t, "payload.exe", "MZ..."), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	entries, err := os.ReadDir(manager.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must write nothing")
}

func TestManagerResolveRefusesTraversal(t *testing.T) {
	manager := NewManager(t.TempDir())

	for _, name := range []string{"", ".", "..", "../secret.png", "a/b.png", "..\\evil.png"} {
		_, err := manager.Resolve(name)
		assert.ErrorIs(t, err, ErrUnsafeFilename, "name %q", name)
	}

	path, err := manager.Resolve("123_photo.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(manager.Dir(), "123_photo.png"), path)
}

func TestManagerRemoveToleratesMissingFile(t *testing.T) {
	manager := NewManager(t.TempDir())
	require.NoError(t, manager.Setup())

	require.NoError(t, manager.Remove("never_existed.png"))

	name := filepath.Join(manager.Dir(), "42_photo.png")
	require.NoError(t, os.WriteFile(name, []byte("bytes"), 0644))
	require.NoError(t, manager.Remove("42_photo.png"))
	_, err := os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}
