package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lenslight/internal/entities"
	apperrors "lenslight/internal/errors"
	"lenslight/internal/media"
	"lenslight/internal/storage"
	"lenslight/internal/utils"
)

const defaultGroupSize = 3

type GalleryService struct {
	Store          storage.ObjectStore
	Compressor     media.Compressor
	DefaultSection string
	// GroupSize caps how many files compress and upload concurrently.
	// Groups run sequentially.
	GroupSize int
	// UploadTimeout bounds each individual object put.
	UploadTimeout time.Duration
}

func NewGalleryService(store storage.ObjectStore, compressor media.Compressor, defaultSection string, groupSize int) *GalleryService {
	if defaultSection == "" {
		defaultSection = "lifestyle"
	}
	if groupSize <= 0 {
		groupSize = defaultGroupSize
	}
	return &GalleryService{
		Store:          store,
		Compressor:     compressor,
		DefaultSection: defaultSection,
		GroupSize:      groupSize,
		UploadTimeout:  30 * time.Second,
	}
}

// objectKey composes the storage path for an upload. The ceo section is the
// one exception to the gallery/<section>/ layout: its objects live at
// top-level ceo/.
func objectKey(section, filename string, now time.Time) string {
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), filename)
	if section == utils.CEOSection {
		return utils.CEOSection + "/" + name
	}
	return "gallery/" + section + "/" + name
}

// UploadBatch compresses and uploads the given files under a section tag.
// Files are processed in fixed-size concurrent groups; one file failing
// never aborts its siblings or later groups. The returned report carries
// every file's settled outcome.
func (s *GalleryService) UploadBatch(ctx context.Context, files []entities.UploadFile, section string) (*entities.BatchResult, error) {
	section = utils.NormalizeSection(section, s.DefaultSection)
	if !utils.IsValidSection(section) {
		return nil, apperrors.NewValidationError("Invalid section: " + section)
	}
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("No files provided")
	}

	results := make([]entities.FileResult, len(files))

	for start := 0; start < len(files); start += s.GroupSize {
		end := start + s.GroupSize
		if end > len(files) {
			end = len(files)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.uploadOne(ctx, files[i], section)
			}(i)
		}
		wg.Wait()
	}

	report := &entities.BatchResult{Results: results}
	for _, r := range results {
		if r.Error == "" {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

func (s *GalleryService) uploadOne(ctx context.Context, file entities.UploadFile, section string) entities.FileResult {
	result := entities.FileResult{
		TaskID: uuid.New().String(),
		Name:   file.Name,
	}

	data, contentType, err := s.Compressor.Compress(file.Data)
	if err != nil {
		log.Printf("Compression failed for %s: %v", file.Name, err)
		result.Error = err.Error()
		return result
	}

	key := objectKey(section, file.Name, time.Now())

	putCtx, cancel := context.WithTimeout(ctx, s.UploadTimeout)
	defer cancel()
	if err := s.Store.Put(putCtx, key, contentType, data); err != nil {
		log.Printf("Upload failed for %s: %v", file.Name, err)
		result.Error = err.Error()
		return result
	}

	result.URL = s.Store.PublicURL(key)
	return result
}

// ListImages reconstructs the gallery for a section (or "all") from the
// store listing, newest first.
func (s *GalleryService) ListImages(ctx context.Context, section string) ([]entities.GalleryImage, error) {
	section = utils.NormalizeSection(section, "all")
	var prefixes []string
	if section == "all" {
		prefixes = []string{"gallery/", "ceo/"}
	} else {
		if !utils.IsValidSection(section) {
			return nil, apperrors.NewValidationError("Invalid section: " + section)
		}
		prefixes = []string{utils.SectionPrefix(section)}
	}

	var images []entities.GalleryImage
	for _, prefix := range prefixes {
		objects, err := s.Store.List(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("error listing gallery objects: %w", err)
		}
		for _, obj := range objects {
			objSection := utils.SectionFromKey(obj.Key)
			if objSection == "" {
				continue
			}
			images = append(images, entities.GalleryImage{
				ID:        obj.Key,
				URL:       s.Store.PublicURL(obj.Key),
				Section:   objSection,
				CreatedAt: timestampFromKey(obj.Key),
			})
		}
	}

	// Newest first; objects with no parseable timestamp sort as oldest.
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	return images, nil
}

// DeleteImage removes one object by its full key.
func (s *GalleryService) DeleteImage(ctx context.Context, key string) error {
	if key == "" {
		return apperrors.NewValidationError("Missing public_id")
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		return fmt.Errorf("error deleting gallery object %s: %w", key, err)
	}
	return nil
}

// timestampFromKey parses the unix-millis prefix of the key's filename
// component (the digits before the first hyphen). Unparseable names map to
// the zero time.
func timestampFromKey(key string) time.Time {
	filename := key
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		filename = key[idx+1:]
	}
	dash := strings.Index(filename, "-")
	if dash <= 0 {
		return time.UnixMilli(0).UTC()
	}
	millis, err := strconv.ParseInt(filename[:dash], 10, 64)
	if err != nil {
		return time.UnixMilli(0).UTC()
	}
	return time.UnixMilli(millis).UTC()
}
