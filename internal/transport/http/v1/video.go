package v1

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/wrapped/internal/domain"
	"github.com/xiaot623/wrapped/internal/storage"
)

// CreateVideo runs a render job for the caller's year of memories and
// returns the output video filename. The job runs synchronously; the request
// blocks until the video exists or the job fails.
// POST /video (multipart: phone, token, year, mode, file)
func (h *Handler) CreateVideo(c echo.Context) error {
	ctx := c.Request().Context()

	phone := c.FormValue("phone")
	token := c.FormValue("token")
	year := c.FormValue("year")
	if phone == "" || token == "" || year == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "phone, token, and year are required"})
	}

	// Validate mode and year before any I/O.
	mode, err := domain.ParseMode(c.FormValue("mode"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if _, _, err := domain.YearRange(year); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	req := domain.RenderRequest{
		Phone: phone,
		Token: token,
		Year:  year,
		Mode:  mode,
	}

	var audio io.Reader
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read audio upload"})
		}
		defer f.Close()
		audio = f
	}

	result, err := h.service.RenderVideo(ctx, req, audio)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"videoUrl":    result.VideoFile,
		"frames":      result.Frames,
		"skippedDays": result.SkippedDays,
	})
}

// GetVideo serves a rendered video file.
// GET /video/:filename
func (h *Handler) GetVideo(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid filename"})
	}

	path := filepath.Join(h.exportsRoot, filename)
	f, err := os.Open(path)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "video not found"})
	}
	defer f.Close()

	return c.Stream(http.StatusOK, "video/mp4", f)
}

// renderError maps pipeline failures onto distinct, structured responses.
// Internal detail never leaks: render failures surface as a generic retry
// message.
func (h *Handler) renderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid token"})
	case errors.Is(err, storage.ErrJobInFlight):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNoMemories):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No memories found for that year"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not generate images; try again later"})
	}
}
