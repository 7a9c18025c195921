package http

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	maxLoggedItems     = 3

	contextLoggerKey = "zap.logger"
)

// Traveler contact details never reach the logs.
var redactedKeys = []string{"password", "email", "phone", "full_name", "avatar"}

func registerLogging(e *echo.Echo, logger *zap.Logger) {
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextLoggerKey, logger)
			return next(c)
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Int64("latency_ms", v.Latency.Milliseconds()),
				zap.String("remote_ip", v.RemoteIP),
			}
			if body := c.Get(requestBodyLogKey); body != nil {
				fields = append(fields, zap.Any("request_body", body))
			}
			if body := c.Get(responseBodyLogKey); body != nil {
				fields = append(fields, zap.Any("response_body", body))
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

// requestLogger returns the router's zap logger tagged with the request
// method and route, or a no-op logger outside NewRouter.
func requestLogger(c echo.Context) *zap.Logger {
	logger, ok := c.Get(contextLoggerKey).(*zap.Logger)
	if !ok || logger == nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("method", c.Request().Method), zap.String("route", c.Path()))
}

func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	loweredType := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(loweredType, "application/json") || json.Valid(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return limitJSONSize(sanitizeJSON(data, ""))
		}
	}
	if containsBinaryBytes(body) {
		return "binary"
	}
	return clampString(string(body))
}

func isRedactedKey(lowerKey string) bool {
	for _, k := range redactedKeys {
		if strings.Contains(lowerKey, k) {
			return true
		}
	}
	return false
}

func sanitizeJSON(value any, keyHint string) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			lowerKey := strings.ToLower(key)
			if isRedactedKey(lowerKey) {
				result[key] = "redacted"
				continue
			}
			result[key] = sanitizeJSON(val, lowerKey)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item, keyHint)
		}
		return result
	case string:
		if containsBinaryBytes([]byte(v)) {
			return "binary"
		}
		return clampString(v)
	default:
		return v
	}
}

// limitJSONSize replaces oversized payloads with a short preview. Arrays keep
// their length and the first few items.
func limitJSONSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	preview := map[string]any{"_truncated": true}
	switch v := value.(type) {
	case []any:
		preview["_total_items"] = len(v)
		if len(v) > maxLoggedItems {
			v = v[:maxLoggedItems]
		}
		preview["_sample"] = v
	case map[string]any:
		preview["_fields"] = len(v)
	}
	return preview
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
