package api

import (
	"io"
	"log"
	"net/http"

	"lenslight/internal/entities"
	apperrors "lenslight/internal/errors"
	"lenslight/internal/service"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 32 << 20

type GalleryHandler struct {
	Service *service.GalleryService
}

func NewGalleryHandler(svc *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{Service: svc}
}

func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	images, err := h.Service.ListImages(r.Context(), section)
	if err != nil {
		if apperrors.StatusOf(err) == http.StatusInternalServerError {
			log.Printf("Gallery listing failed: %v", err)
		}
		writeError(w, err)
		return
	}
	if images == nil {
		images = []entities.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, entities.GalleryResponse{Images: images})
}

// Upload accepts one or more multipart "file" parts plus a "section" field
// and runs them through the ingestion pipeline. Partial failure is still a
// 200; the batch report carries per-file outcomes.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid multipart form"))
		return
	}

	section := r.FormValue("section")
	fileHeaders := r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		writeError(w, apperrors.NewValidationError("No files provided"))
		return
	}

	var files []entities.UploadFile
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			writeError(w, apperrors.NewValidationError("Could not read uploaded file"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, apperrors.NewValidationError("Could not read uploaded file"))
			return
		}
		files = append(files, entities.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	report, err := h.Service.UploadBatch(r.Context(), files, section)
	if err != nil {
		writeError(w, err)
		return
	}

	// Single-file callers get the url at the top level, matching the
	// original endpoint shape.
	if len(report.Results) == 1 && report.Failed == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"url":       report.Results[0].URL,
			"succeeded": report.Succeeded,
			"failed":    report.Failed,
			"results":   report.Results,
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	publicID := r.URL.Query().Get("public_id")
	if err := h.Service.DeleteImage(r.Context(), publicID); err != nil {
		if apperrors.StatusOf(err) == http.StatusInternalServerError {
			log.Printf("Gallery delete failed: %v", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
