package handler

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"siteapi/internal/config"
	"siteapi/internal/model"
	"siteapi/internal/service"
	"siteapi/internal/upload"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, cfg *config.AppConfig, cols service.CollectionService, gallery service.GalleryService, files upload.Store) {
	app.Get("/", Health())

	app.Post("/api/upload", UploadImage(files, cfg.UploadMaxBytes, cfg.TrustProxy))
	app.Get("/uploads/:filename", ServeUpload(files))

	app.Get("/api/leads", ListItems(cols, service.Leads))
	app.Post("/api/leads", CreateItem(cols, service.Leads))
	app.Delete("/api/leads/:id", DeleteItem(cols, service.Leads))

	app.Get("/api/messages", ListItems(cols, service.Messages))
	app.Post("/api/messages", CreateItem(cols, service.Messages))
	app.Delete("/api/messages/:id", DeleteItem(cols, service.Messages))

	app.Get("/api/gallery", ListItems(cols, service.Gallery))
	app.Post("/api/gallery", CreateItem(cols, service.Gallery))
	app.Delete("/api/gallery/:id", DeleteGalleryItem(gallery))
}

// Health is the root health check; it returns a plain confirmation string.
func Health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Site backend up and running")
	}
}

// UploadImage accepts a multipart form with an "image" field, stores the
// file, and returns its public URL.
func UploadImage(files upload.Store, maxBytes int64, trustProxy bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGE_REQUIRED", "image file is required")
		}
		if maxBytes > 0 && fh.Size > maxBytes {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		name, err := files.Save(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "could not store uploaded file")
		}

		return c.JSON(fiber.Map{"url": publicURL(c, trustProxy, name)})
	}
}

// ServeUpload streams a stored file back to the client.
func ServeUpload(files upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("filename")

		rc, err := files.Open(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, upload.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "could not read stored file")
		}

		if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
			c.Type(ext)
		}
		// fasthttp closes the stream once the response is sent.
		return c.SendStream(rc)
	}
}

// ListItems returns the full collection, most recent first.
func ListItems(cols service.CollectionService, col service.Collection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := cols.List(c.UserContext(), col)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if items == nil {
			items = []model.Item{}
		}
		return c.JSON(items)
	}
}

// CreateItem accepts any JSON object as the item body; no required-field
// validation is performed.
func CreateItem(cols service.CollectionService, col service.Collection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := model.Item{}
		if raw := c.Body(); len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
			}
		}

		item, err := cols.Create(c.UserContext(), col, body)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "could not persist item")
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// DeleteItem removes an item by id. Deleting an id that does not exist is
// still a success.
func DeleteItem(cols service.CollectionService, col service.Collection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := cols.Remove(c.UserContext(), col, c.Params("id")); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "could not persist deletion")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DeleteGalleryItem removes a gallery entry and best-effort reclaims its
// image file.
func DeleteGalleryItem(gallery service.GalleryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gallery.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "could not persist deletion")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// publicURL composes the fully-qualified URL a stored file is reachable at.
// Behind a TLS-terminating proxy the observed protocol is plain HTTP, so
// when trustProxy is set the X-Forwarded-Proto / X-Forwarded-Host headers
// decide the scheme and host. Without the flag both come from the
// connection itself; fiber's Protocol()/Hostname() are not used here since
// under the default config they accept forwarded headers from any peer.
func publicURL(c *fiber.Ctx, trustProxy bool, filename string) string {
	scheme := "http"
	if c.Context().IsTLS() {
		scheme = "https"
	}
	host := string(c.Request().URI().Host())

	if trustProxy {
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}
		if forwarded := c.Get("X-Forwarded-Host"); forwarded != "" {
			host = forwarded
		}
	}
	return scheme + "://" + host + upload.URLPrefix + filename
}
