// Package storage provides the admin endpoints for image uploads and the
// storage quota dashboard.
//
// Endpoints (mounted under /api/admin/storage):
//   - POST   /upload/{folder}  - Upload an image (multipart form, field "file")
//   - GET    /images/{folder}  - List images in a folder (?limit=&page=)
//   - DELETE /images           - Delete an image by its public URL
//   - GET    /stats            - Quota usage and per-folder counts
//
// Uploads are checked against the quota before the backend is touched:
// the per-file size cap, the total quota and the per-folder image caps
// all reject with a user-facing German message.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/glowsite/internal/app/store/images"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/app/system/quota"
	"github.com/dalemusser/glowsite/internal/app/system/timeouts"
	"github.com/dalemusser/glowsite/internal/domain/models"
	wafflestorage "github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// allowedContentTypes are the image types the public site can render.
var allowedContentTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// Handler handles image upload and quota requests.
type Handler struct {
	images  *images.Store
	backend wafflestorage.Store
	logger  *zap.Logger
}

// NewHandler creates a storage handler.
func NewHandler(img *images.Store, backend wafflestorage.Store, logger *zap.Logger) *Handler {
	return &Handler{images: img, backend: backend, logger: logger}
}

// UploadHandler handles POST /api/admin/storage/upload/{folder}.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	if !models.IsValidImageFolder(folder) {
		jsonutil.BadRequest(w, "Unbekannter Ordner: "+folder)
		return
	}

	if err := r.ParseMultipartForm(quota.MaxFileBytes + 1024); err != nil {
		jsonutil.BadRequest(w, fmt.Sprintf("Datei zu groß (max. %s).", quota.FormatBytes(quota.MaxFileBytes)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "Bitte wählen Sie eine Datei aus")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		jsonutil.BadRequest(w, "Nur Bilddateien sind erlaubt (JPG, PNG, WebP, GIF, SVG)")
		return
	}
	if e := strings.ToLower(filepath.Ext(header.Filename)); e != "" {
		ext = e
	}

	// Quota accounting fails open: when usage cannot be read the upload
	// proceeds rather than locking the admin out of their own site.
	usedBytes, err := h.images.TotalSize(r.Context())
	if err != nil {
		h.logger.Warn("failed to compute storage usage, allowing upload", zap.Error(err))
		usedBytes = 0
	}
	folderCount, err := h.images.CountByFolder(r.Context(), folder)
	if err != nil {
		h.logger.Warn("failed to count folder images, allowing upload", zap.Error(err))
		folderCount = 0
	}

	if ok, msg := quota.CanUploadToFolder(folder, folderCount, usedBytes, header.Size); !ok {
		jsonutil.Error(w, http.StatusRequestEntityTooLarge, msg)
		return
	}

	key := fmt.Sprintf("%s/%d-%s%s", folder, time.Now().UnixMilli(), uuid.New().String()[:8], ext)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload)
	defer cancel()

	if err := h.backend.Put(ctx, key, file, &wafflestorage.PutOptions{
		ContentType: contentType,
	}); err != nil {
		h.logger.Error("failed to store upload",
			zap.String("key", key),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Upload fehlgeschlagen")
		return
	}

	img, err := h.images.Create(ctx, images.CreateInput{
		Folder:      folder,
		Key:         key,
		URL:         h.backend.URL(key),
		Size:        header.Size,
		ContentType: contentType,
	})
	if err != nil {
		// Roll back the stored object so quota accounting stays accurate.
		_ = h.backend.Delete(ctx, key)
		h.logger.Error("failed to create image record", zap.String("key", key), zap.Error(err))
		jsonutil.InternalError(w, "Upload fehlgeschlagen")
		return
	}

	h.logger.Info("image uploaded",
		zap.String("folder", folder),
		zap.String("key", key),
		zap.Int64("size", header.Size),
	)
	jsonutil.Created(w, img)
}

// ListHandler handles GET /api/admin/storage/images/{folder}.
// The default page size covers the largest folder cap, so the admin UI
// gets everything in one request unless it asks for pages.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	if !models.IsValidImageFolder(folder) {
		jsonutil.BadRequest(w, "Unbekannter Ordner: "+folder)
		return
	}

	limit := int64(100)
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	page := int64(1)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}

	list, err := h.images.ListByFolder(r.Context(), folder, limit, page)
	if err != nil {
		h.logger.Error("failed to list images", zap.String("folder", folder), zap.Error(err))
		jsonutil.InternalError(w, "Bilder konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, list)
}

// DeleteHandler handles DELETE /api/admin/storage/images.
// The image is addressed by its public URL, which is what admin UI rows
// carry. The backend object is removed first; a stale database record is
// worse than an orphaned file.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		URL string `json:"url"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	if strings.TrimSpace(in.URL) == "" {
		jsonutil.BadRequest(w, "Bild-URL ist erforderlich")
		return
	}

	img, err := h.images.GetByURL(r.Context(), in.URL)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Bild nicht gefunden")
			return
		}
		h.logger.Error("failed to look up image", zap.Error(err))
		jsonutil.InternalError(w, "Bild konnte nicht gelöscht werden")
		return
	}

	if err := h.backend.Delete(r.Context(), img.Key); err != nil {
		h.logger.Error("failed to delete stored object",
			zap.String("key", img.Key),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Bild konnte nicht gelöscht werden")
		return
	}
	if err := h.images.Delete(r.Context(), img.ID); err != nil {
		h.logger.Error("failed to delete image record", zap.String("key", img.Key), zap.Error(err))
		jsonutil.InternalError(w, "Bild konnte nicht gelöscht werden")
		return
	}

	h.logger.Info("image deleted",
		zap.String("folder", img.Folder),
		zap.String("key", img.Key),
	)
	jsonutil.Message(w, "Bild gelöscht")
}

// StatsHandler handles GET /api/admin/storage/stats.
// Returns total usage against the quota plus per-folder image counts.
// A failed lookup answers with empty, unblocked stats instead of an error,
// so the dashboard stays usable while the database hiccups.
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	usedBytes, err := h.images.TotalSize(r.Context())
	if err != nil {
		h.logger.Warn("failed to compute storage usage, serving empty stats", zap.Error(err))
		jsonutil.Success(w, quota.BuildStats(0, nil))
		return
	}
	folderCounts, err := h.images.FolderCounts(r.Context())
	if err != nil {
		h.logger.Warn("failed to count folder images, serving empty stats", zap.Error(err))
		jsonutil.Success(w, quota.BuildStats(0, nil))
		return
	}

	jsonutil.Success(w, quota.BuildStats(usedBytes, folderCounts))
}
