package entities

import "time"

// GalleryImage is derived from an object-storage listing. The store is the
// single source of truth; no independent index is kept.
type GalleryImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Section   string    `json:"section"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type GalleryResponse struct {
	Images []GalleryImage `json:"images"`
}

// UploadFile is one file handed to the ingestion pipeline.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileResult is the settled outcome of a single file within a batch.
type FileResult struct {
	TaskID string `json:"taskId"`
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult aggregates per-file outcomes. A batch with failures is still
// an HTTP success; callers wanting all-or-nothing layer that on top.
type BatchResult struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []FileResult `json:"results"`
}
