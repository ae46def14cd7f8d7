package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"cafe-site/internal/media"
	"cafe-site/internal/model"
	"cafe-site/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// galleryService implements GalleryService.
type galleryService struct {
	galleryRepo repository.GalleryRepository
	store       media.Store
	maxBytes    int64
	logger      zerolog.Logger
}

// NewGalleryService creates a new gallery service. Uploads larger than
// maxBytes are rejected.
func NewGalleryService(
	galleryRepo repository.GalleryRepository,
	store media.Store,
	maxBytes int64,
	logger zerolog.Logger,
) GalleryService {
	return &galleryService{
		galleryRepo: galleryRepo,
		store:       store,
		maxBytes:    maxBytes,
		logger:      logger.With().Str("service", "gallery").Logger(),
	}
}

// List returns gallery items, optionally only those of one type.
func (s *galleryService) List(ctx context.Context, typ model.GalleryType) ([]model.GalleryItem, error) {
	if typ != "" && typ != model.GalleryPhoto && typ != model.GalleryVideo {
		return nil, model.ValidationError(fmt.Sprintf("unknown gallery type %q", typ))
	}

	items, err := s.galleryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list gallery items")
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}

	if typ == "" {
		return items, nil
	}

	filtered := make([]model.GalleryItem, 0, len(items))
	for _, item := range items {
		if item.Type == typ {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Upload stores the media file and records it in the gallery. When the record
// cannot be written the stored object is removed again.
func (s *galleryService) Upload(ctx context.Context, upload model.GalleryUpload, body io.Reader) (*model.GalleryItem, error) {
	kind, err := media.KindOf(upload.ContentType)
	if err != nil {
		s.logger.Warn().Str("content_type", upload.ContentType).Msg("rejected upload with unsupported content type")
		return nil, err
	}
	if upload.Size > s.maxBytes {
		return nil, model.ValidationError(fmt.Sprintf("file exceeds the %d byte upload limit", s.maxBytes))
	}
	if len(upload.Caption) > 500 {
		return nil, model.ValidationError("caption must satisfy max=500")
	}
	if upload.SortOrder < 0 {
		return nil, model.ValidationError("sortOrder must satisfy gte=0")
	}

	key := media.NewKey(upload.Filename, upload.ContentType)
	url, err := s.store.Put(ctx, key, upload.ContentType, body, upload.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	item := &model.GalleryItem{
		ID:         uuid.NewString(),
		Type:       kind,
		URL:        url,
		StorageKey: key,
		Caption:    upload.Caption,
		SortOrder:  upload.SortOrder,
		CreatedAt:  time.Now(),
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", key).Msg("failed to remove orphaned media")
		}
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}

	s.logger.Info().
		Str("gallery_item_id", item.ID).
		Str("type", string(item.Type)).
		Str("key", key).
		Msg("gallery item uploaded")
	return item, nil
}

func (s *galleryService) Update(ctx context.Context, id string, req *model.GalleryUpdateRequest) (*model.GalleryItem, error) {
	if req == nil {
		return nil, model.ValidationError("request body is required")
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	item := &model.GalleryItem{ID: id, Caption: req.Caption, SortOrder: req.SortOrder}
	ok, err := s.galleryRepo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update gallery item: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}
	return item, nil
}

// Delete removes the media file, then the gallery record. If the file cannot
// be removed the record is kept so the delete can be retried.
func (s *galleryService) Delete(ctx context.Context, id string) error {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get gallery item: %w", err)
	}
	if item == nil {
		return model.ErrNotFound
	}

	if err := s.store.Delete(ctx, item.StorageKey); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	ok, err := s.galleryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}

	s.logger.Info().Str("gallery_item_id", id).Str("key", item.StorageKey).Msg("gallery item deleted")
	return nil
}
