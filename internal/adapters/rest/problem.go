package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/example/kanban/internal/core/timestamp"
	apperrors "github.com/example/kanban/internal/errors"
)

const (
	problemContentType = "application/problem+json"
	problemTypeBase    = "https://kanban.example.com/errors/"
	internalDetail     = "An unexpected error occurred. Please try again later."
)

// problem is an RFC 9457 problem details body.
type problem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

func newProblem(status int, title, detail string) problem {
	return problem{
		Type:      problemTypeBase + slug(title),
		Title:     title,
		Status:    status,
		Detail:    detail,
		Timestamp: timestamp.Now(),
	}
}

// errorHandler renders every handler error as problem+json. Domain errors map
// through their code; unclassified errors become 500 without leaking details.
func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		p := classify(err)
		if p.Status >= http.StatusInternalServerError {
			entry(c, logger).WithError(err).Error("unexpected error")
		}

		data, mErr := sonic.ConfigStd.Marshal(p)
		if mErr != nil {
			logger.WithError(mErr).Error("failed to encode problem")
			_ = c.NoContent(http.StatusInternalServerError)
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(p.Status)
			return
		}
		_ = c.Blob(p.Status, problemContentType, data)
	}
}

func classify(err error) problem {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok && msg != "" {
			detail = msg
		} else if he.Message != nil {
			detail = fmt.Sprint(he.Message)
		}
		return newProblem(he.Code, http.StatusText(he.Code), detail)
	}

	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return newProblem(code.HTTPStatus(), code.Title(), internalDetail)
	}
	return newProblem(code.HTTPStatus(), code.Title(), err.Error())
}

func slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
