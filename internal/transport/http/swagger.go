package http

import (
	"net/http"
	"os"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/util"
)

// RegisterSwagger serves the hand-written OpenAPI YAML as JSON and the UI under /swagger.
// The file is read per request so edits show up without a restart.
func RegisterSwagger(e *echo.Echo, specPath string) {
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		data, err := os.ReadFile(specPath)
		if err != nil {
			requestLogger(c).Error("load swagger document", zap.String("path", specPath), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		jsonSpec, err := yaml.YAMLToJSON(data)
		if err != nil {
			requestLogger(c).Error("convert swagger document", zap.String("path", specPath), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
