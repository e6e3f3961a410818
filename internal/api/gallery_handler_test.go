package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenslight/internal/auth"
	"lenslight/internal/entities"
	"lenslight/internal/service"
	"lenslight/internal/storage"
)

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}}
}

func (m *memObjectStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memObjectStore) List(ctx context.Context, prefix string) ([]storage.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.StoredObject
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.StoredObject{Key: key})
		}
	}
	return out, nil
}

func (m *memObjectStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjectStore) PublicURL(key string) string { return "https://cdn.test/" + key }

type passthroughCompressor struct{ failOnName bool }

func (p passthroughCompressor) Compress(data []byte) ([]byte, string, error) {
	if p.failOnName && bytes.Contains(data, []byte("bad")) {
		return nil, "", errors.New("corrupt image data")
	}
	return data, "image/jpeg", nil
}

type stubRoles struct{ roles map[string]string }

func (s stubRoles) GetRole(ctx context.Context, subjectID string) (string, error) {
	return s.roles[subjectID], nil
}

func galleryTestSetup(t *testing.T, failCompression bool) (*mux.Router, *memObjectStore, string) {
	t.Helper()
	store := newMemObjectStore()
	svc := service.NewGalleryService(store, passthroughCompressor{failOnName: failCompression}, "lifestyle", 3)
	handler := NewGalleryHandler(svc)

	jwtService := auth.NewJWTService("test-secret")
	mw := auth.NewMiddleware(jwtService, stubRoles{roles: map[string]string{"1": "admin"}})

	r := mux.NewRouter()
	r.HandleFunc("/gallery", handler.ListImages).Methods("GET")
	r.Handle("/gallery", mw.RequireAdmin(http.HandlerFunc(handler.DeleteImage))).Methods("DELETE")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/upload", handler.Upload).Methods("POST")

	token, err := jwtService.Issue("1", "admin@example.com", time.Hour)
	require.NoError(t, err)
	return r, store, token
}

func multipartUpload(t *testing.T, section string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("section", section))
	for name, data := range files {
		part, err := writer.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	t.Run("unauthorized upload writes nothing", func(t *testing.T) {
		router, store, _ := galleryTestSetup(t, false)
		body, contentType := multipartUpload(t, "event", map[string][]byte{"a.png": []byte("img")})
		req := httptest.NewRequest("POST", "/admin/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, store.objects)
	})

	t.Run("authorized single upload returns url", func(t *testing.T) {
		router, store, token := galleryTestSetup(t, false)
		body, contentType := multipartUpload(t, "event", map[string][]byte{"a.png": []byte("img")})
		req := httptest.NewRequest("POST", "/admin/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		url, _ := resp["url"].(string)
		assert.Contains(t, url, "https://cdn.test/gallery/event/")
		assert.Len(t, store.objects, 1)
	})

	t.Run("partial batch failure still returns 200 with report", func(t *testing.T) {
		router, store, token := galleryTestSetup(t, true)
		body, contentType := multipartUpload(t, "family", map[string][]byte{
			"one.png":  []byte("good-1"),
			"two.png":  []byte("bad-2"),
			"tree.png": []byte("good-3"),
		})
		req := httptest.NewRequest("POST", "/admin/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var report entities.BatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		assert.Len(t, store.objects, 2)

		var failedName string
		for _, r := range report.Results {
			if r.Error != "" {
				failedName = r.Name
				assert.Contains(t, r.Error, "corrupt image data")
			}
		}
		assert.Equal(t, "two.png", failedName)
	})

	t.Run("upload without files is a 400", func(t *testing.T) {
		router, _, token := galleryTestSetup(t, false)
		body, contentType := multipartUpload(t, "event", nil)
		req := httptest.NewRequest("POST", "/admin/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGalleryEndpoints(t *testing.T) {
	t.Run("listing reflects uploads", func(t *testing.T) {
		router, store, _ := galleryTestSetup(t, false)
		store.objects["gallery/event/1700000000100-a.jpg"] = nil
		store.objects["gallery/event/1700000000200-b.jpg"] = nil

		req := httptest.NewRequest("GET", "/gallery?section=event", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp entities.GalleryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Images, 2)
		assert.Contains(t, resp.Images[0].ID, "-b.jpg")
	})

	t.Run("empty gallery returns an empty array", func(t *testing.T) {
		router, _, _ := galleryTestSetup(t, false)
		req := httptest.NewRequest("GET", "/gallery?section=event", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"images":[]}`, rec.Body.String())
	})

	t.Run("delete requires admin", func(t *testing.T) {
		router, store, _ := galleryTestSetup(t, false)
		store.objects["gallery/event/1-a.jpg"] = nil

		req := httptest.NewRequest("DELETE", "/gallery?public_id=gallery/event/1-a.jpg", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Len(t, store.objects, 1)
	})

	t.Run("admin delete removes the object", func(t *testing.T) {
		router, store, token := galleryTestSetup(t, false)
		store.objects["gallery/event/1-a.jpg"] = nil

		req := httptest.NewRequest("DELETE", "/gallery?public_id=gallery/event/1-a.jpg", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, store.objects)
	})
}
