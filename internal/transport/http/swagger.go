package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const DefaultSwaggerPath = "docs/swagger.yaml"

// RegisterSwagger converts the YAML document once at startup and serves it
// at /swagger/doc.json next to the UI.
func RegisterSwagger(e *echo.Echo, specPath string) error {
	if specPath == "" {
		specPath = DefaultSwaggerPath
	}
	data, err := os.ReadFile(filepath.Clean(specPath))
	if err != nil {
		return fmt.Errorf("load swagger spec: %w", err)
	}
	jsonSpec, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("convert swagger spec: %w", err)
	}

	e.GET("/swagger/doc.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
