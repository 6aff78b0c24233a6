package handlers

import (
	"html"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// indexPath is served for the root path.
const indexPath = "/index.html"

// StaticHandler serves files from a public directory.
//
// Every request reads the whole file into memory before responding; there is
// no caching, no range support and no streaming.
type StaticHandler struct {
	baseDir string
	logger  *logging.Logger
}

// NewStaticHandler creates a StaticHandler serving files under baseDir.
// The directory is fixed here; the handler never consults the process working directory.
func NewStaticHandler(baseDir string, logger *logging.Logger) *StaticHandler {
	return &StaticHandler{baseDir: baseDir, logger: logger}
}

// Serve answers one request.
//
// Behavior:
//   - The path is percent-decoded first; a malformed escape is a 404
//   - Paths of length one or less ("" or "/") are served as /index.html
//   - The file is baseDir + path, read whole
//   - Found: 200, Content-Type from the extension (application/octet-stream
//     when unknown), Content-Length equal to the file size
//   - Missing: 404, text/html, the error text as body
//   - Any other read failure: 500, text/html, the error text as body
func (h *StaticHandler) Serve(c *fiber.Ctx) error {
	// c.Path is still percent-encoded; file names are not
	path, err := url.PathUnescape(c.Path())
	if err != nil {
		return h.fail(c, c.Path(), apperr.NewNotFound("static.path", err))
	}
	if len(path) <= 1 {
		path = indexPath
	}

	body, err := os.ReadFile(h.baseDir + path)
	if err != nil {
		return h.fail(c, path, apperr.Classify("static.read", err))
	}

	h.logger.Event(logging.EventFileServed, map[string]interface{}{
		"path":  path,
		"bytes": len(body),
	})

	c.Set(fiber.HeaderContentType, contentType(path))
	return c.Status(fiber.StatusOK).Send(body)
}

func (h *StaticHandler) fail(c *fiber.Ctx, path string, err error) error {
	status := apperr.KindOf(err).HTTPStatus()
	if status == http.StatusNotFound {
		h.logger.Event(logging.EventFileMissing, map[string]interface{}{"path": path})
	} else {
		h.logger.Error("static file read failed", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.Status(status).SendString(html.EscapeString(errorText(err)))
}

// errorText returns the message of the underlying cause, without the op prefix.
func errorText(err error) string {
	if e, ok := err.(*apperr.Error); ok && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

// contentType derives the MIME type from the path's extension.
func contentType(path string) string {
	if mime := utils.GetMIME(filepath.Ext(path)); mime != "" {
		return mime
	}
	return fiber.MIMEOctetStream
}
