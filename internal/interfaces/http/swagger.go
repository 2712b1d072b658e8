package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// MountSwagger monta la UI de swagger en /docs si el archivo de especificación
// existe. El middleware entra en pánico con un archivo ausente, así que un
// despliegue sin docs generadas simplemente no expone la UI. Devuelve si se montó.
func MountSwagger(app *fiber.App, filePath, title string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
