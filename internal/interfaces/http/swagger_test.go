package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/posventa-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Montaje condicional de la UI de swagger
// ──────────────────────────────────────────────────────────────────────────────

// Sin el archivo de especificación la app debe arrancar igual, solo que sin UI.
func TestMountSwagger_ArchivoAusenteNoMonta(t *testing.T) {
	app := fiber.New()
	mounted := apphttp.MountSwagger(app, filepath.Join(t.TempDir(), "swagger.json"), "Posventa API")
	assert.False(t, mounted)

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMountSwagger_ArchivoPresenteSirveLaUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	spec := `{"swagger":"2.0","info":{"title":"Posventa API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o644))

	app := fiber.New()
	require.True(t, apphttp.MountSwagger(app, path, "Posventa API"))

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
