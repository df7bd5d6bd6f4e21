package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"
	"github.com/guibitar/fit-flow-control-sub001/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = apperrors.New(apperrors.KindNotFound, "exercise not found")
	ErrExerciseNameEmpty = apperrors.New(apperrors.KindValidation, "exercise name is required")
	ErrNoMedia           = apperrors.New(apperrors.KindNotFound, "exercise has no media")
	ErrInvalidMediaType  = apperrors.New(apperrors.KindValidation, "unsupported media content type")
)

// ExerciseMedia is the presigned upload grant returned by RequestMediaUpload.
// The caller PUTs the file to UploadURL before the grant expires; ObjectKey
// is already persisted on the exercise.
type ExerciseMedia struct {
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

// allowed content types for exercise demo media
var mediaContentTypes = map[string]string{
	"video/mp4":  ".mp4",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ExerciseService manages the shared exercise library. Reads are open to
// every authenticated user; writes are admin-only, enforced at the routing
// layer.
type ExerciseService interface {
	List(ctx context.Context, order int) ([]domain.Exercise, error)
	Filter(ctx context.Context, payload map[string]any, order int) ([]domain.Exercise, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Create(ctx context.Context, createdBy primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)
	Update(ctx context.Context, id primitive.ObjectID, payload map[string]any) (*domain.Exercise, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// RequestMediaUpload stores a fresh object key on the exercise and
	// returns a presigned PUT URL for it. Previous media is deleted from
	// storage best-effort.
	RequestMediaUpload(ctx context.Context, id primitive.ObjectID, contentType string) (*ExerciseMedia, error)

	// MediaDownloadURL returns a presigned GET URL for the exercise's media.
	MediaDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo, fileStorage: fileStorage}
}

var exerciseUpdateFields = map[string]bool{
	"name":          true,
	"muscleGroup":   true,
	"executionType": true,
	"description":   true,
	"videoUrl":      true,
	"imageUrl":      true,
}

var exerciseFilterFields = map[string]bool{
	"muscleGroup":   true,
	"executionType": true,
	"name":          true,
}

func (s *exerciseService) List(ctx context.Context, order int) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, order)
}

func (s *exerciseService) Filter(ctx context.Context, payload map[string]any, order int) ([]domain.Exercise, error) {
	eq, err := sanitizeFilter(payload, exerciseFilterFields)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.Filter(ctx, eq, order)
}

func (s *exerciseService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Create(ctx context.Context, createdBy primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, ErrExerciseNameEmpty
	}

	exercise.CreatedBy = createdBy
	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *exerciseService) Update(ctx context.Context, id primitive.ObjectID, payload map[string]any) (*domain.Exercise, error) {
	if raw, ok := payload["name"]; ok {
		if name, _ := raw.(string); name == "" {
			return nil, ErrExerciseNameEmpty
		}
	}
	set, unset := sanitizeUpdate(payload, exerciseUpdateFields)

	if err := s.exerciseRepo.Update(ctx, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the exercise and, best-effort, its stored media.
func (s *exerciseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	exercise, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if exercise.MediaKey != "" && s.fileStorage != nil {
		// Orphaned objects are harmless; the record is already gone.
		_ = s.fileStorage.DeleteObject(ctx, exercise.MediaKey)
	}
	return nil
}

func (s *exerciseService) RequestMediaUpload(ctx context.Context, id primitive.ObjectID, contentType string) (*ExerciseMedia, error) {
	ext, ok := mediaContentTypes[contentType]
	if !ok {
		return nil, ErrInvalidMediaType
	}

	exercise, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exercises/%s/%s%s", id.Hex(), uuid.NewString(), ext)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "failed to generate upload URL")
	}

	if err := s.exerciseRepo.Update(ctx, id, repository.Fields{"mediaKey": objectKey}, nil); err != nil {
		return nil, err
	}

	if exercise.MediaKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, exercise.MediaKey)
	}

	return &ExerciseMedia{ObjectKey: objectKey, UploadURL: uploadURL}, nil
}

func (s *exerciseService) MediaDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	exercise, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if exercise.MediaKey == "" {
		return "", ErrNoMedia
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, time.Hour)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindInternal, "failed to generate download URL")
	}
	return url, nil
}
