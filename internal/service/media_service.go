package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/platform/objectstore"
	"github.com/mediahub/mediahub-api/internal/redact"
	"github.com/mediahub/mediahub-api/internal/store"
)

// allowedMediaPrefixes lists the top-level MIME types accepted for upload.
var allowedMediaPrefixes = []string{"image/", "video/", "audio/"}

// Upload is a validated media upload. Body is rewound after sniffing, so it
// must be seekable (multipart files are).
type Upload struct {
	Title       string
	Description string
	Body        io.ReadSeeker
	Size        int64
}

// MediaService provides media-related operations.
type MediaService interface {
	ListMedia(ctx context.Context) ([]domain.Media, error)
	GetMedia(ctx context.Context, id int64) (*domain.Media, error)

	// UploadMedia stores the bytes and the record. The owner is always the caller.
	UploadMedia(ctx context.Context, caller domain.Identity, upload Upload) (*domain.Media, error)

	// UpdateMedia changes title or description. Only the owner or an admin may do so.
	UpdateMedia(ctx context.Context, caller domain.Identity, id int64, update domain.MediaUpdate) (*domain.Media, error)

	// DeleteMedia removes the record and then the stored object.
	DeleteMedia(ctx context.Context, caller domain.Identity, id int64) error
}

// MediaServiceImpl implements MediaService.
type MediaServiceImpl struct {
	mediaStore store.MediaStore
	objects    objectstore.Store
	logger     *slog.Logger
}

var _ MediaService = (*MediaServiceImpl)(nil)

// NewMediaService creates a new MediaService.
func NewMediaService(
	mediaStore store.MediaStore,
	objects objectstore.Store,
	logger *slog.Logger,
) *MediaServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaServiceImpl{
		mediaStore: mediaStore,
		objects:    objects,
		logger:     logger.With("component", "media_service"),
	}
}

func (s *MediaServiceImpl) ListMedia(ctx context.Context) ([]domain.Media, error) {
	return s.mediaStore.List(ctx)
}

func (s *MediaServiceImpl) GetMedia(ctx context.Context, id int64) (*domain.Media, error) {
	return s.mediaStore.GetByID(ctx, id)
}

// sniff detects the content type from the leading bytes and rewinds body.
func sniff(body io.ReadSeeker) (*mimetype.MIME, error) {
	mtype, err := mimetype.DetectReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}
	return mtype, nil
}

func isAllowedMediaType(contentType string) bool {
	for _, prefix := range allowedMediaPrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// UploadMedia writes the object first and the record second. If the record
// cannot be created the object is removed again.
func (s *MediaServiceImpl) UploadMedia(
	ctx context.Context,
	caller domain.Identity,
	upload Upload,
) (*domain.Media, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if upload.Body == nil || upload.Size <= 0 {
		return nil, ErrEmptyFile
	}

	mtype, err := sniff(upload.Body)
	if err != nil {
		return nil, err
	}
	contentType := mtype.String()
	if !isAllowedMediaType(contentType) {
		log.Debug("rejected upload", "detected_type", contentType)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	media := &domain.Media{
		Filename:    objectstore.NewKey(mtype.Extension()),
		Filesize:    upload.Size,
		MediaType:   contentType,
		Title:       upload.Title,
		Description: upload.Description,
		OwnerID:     caller.SubjectID,
	}

	if err := s.objects.Put(ctx, media.Filename, contentType, upload.Body, upload.Size); err != nil {
		log.Error("failed to store uploaded object",
			"error", redact.Error(err),
			"key", media.Filename)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if err := s.mediaStore.Create(ctx, media); err != nil {
		s.removeObject(ctx, media.Filename)
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	log.Info("media uploaded",
		"media_id", media.ID,
		"user_id", media.OwnerID,
		"media_type", contentType,
		"size", media.Filesize)
	return media, nil
}

// UpdateMedia checks ownership against the stored record before writing.
func (s *MediaServiceImpl) UpdateMedia(
	ctx context.Context,
	caller domain.Identity,
	id int64,
	update domain.MediaUpdate,
) (*domain.Media, error) {
	current, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return current, nil
	}

	media, err := s.mediaStore.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update media: %w", err)
	}
	return media, nil
}

// DeleteMedia removes the record, then the object. A failure to remove the
// object is logged and does not fail the request.
func (s *MediaServiceImpl) DeleteMedia(ctx context.Context, caller domain.Identity, id int64) error {
	media, err := s.authorize(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.mediaStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	s.removeObject(ctx, media.Filename)
	return nil
}

// authorize loads the record and checks the caller against its owner. The
// check and the following write are separate statements; that is safe only
// because a media item's owner never changes after upload.
func (s *MediaServiceImpl) authorize(
	ctx context.Context,
	caller domain.Identity,
	id int64,
) (*domain.Media, error) {
	media, err := s.mediaStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(media.OwnerID) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("media modification forbidden",
			"caller_id", caller.SubjectID,
			"media_id", id,
			"owner_id", media.OwnerID)
		return nil, ErrForbidden
	}
	return media, nil
}

func (s *MediaServiceImpl) removeObject(ctx context.Context, key string) {
	removeObject(ctx, s.objects, logger.FromContextOrDefault(ctx, s.logger), key)
}

// removeObject deletes a stored object on a best-effort basis; failures are logged.
func removeObject(ctx context.Context, objects objectstore.Store, log *slog.Logger, key string) {
	if err := objects.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn("failed to remove stored object",
			"error", redact.Error(err),
			"key", key)
	}
}
