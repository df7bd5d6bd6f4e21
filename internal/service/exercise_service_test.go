package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: map[primitive.ObjectID]domain.Exercise{}}
}

func (r *fakeExerciseRepo) List(_ context.Context, _ int) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Exercise{}
	for _, ex := range r.exercises {
		out = append(out, ex)
	}
	return out, nil
}

func (r *fakeExerciseRepo) Filter(ctx context.Context, eq repository.Fields, order int) ([]domain.Exercise, error) {
	all, _ := r.List(ctx, order)
	out := []domain.Exercise{}
	for _, ex := range all {
		if group, ok := eq["muscleGroup"]; ok && ex.MuscleGroup != group {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

func (r *fakeExerciseRepo) Get(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := ex
	return &out, nil
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *exercise
	stored.ID = id
	r.exercises[id] = stored
	return id, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, id primitive.ObjectID, set repository.Fields, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := set["name"].(string); ok {
		ex.Name = name
	}
	if key, ok := set["mediaKey"].(string); ok {
		ex.MediaKey = key
	}
	r.exercises[id] = ex
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

// fakeFileStorage records presign and delete calls.
type fakeFileStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.local/upload/%s", objectKey), nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.local/download/%s", objectKey), nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, objectKey)
	return nil
}

type exerciseFixture struct {
	svc     ExerciseService
	repo    *fakeExerciseRepo
	storage *fakeFileStorage
	admin   primitive.ObjectID
}

func newExerciseFixture() *exerciseFixture {
	repo := newFakeExerciseRepo()
	store := &fakeFileStorage{}
	return &exerciseFixture{
		svc:     NewExerciseService(repo, store),
		repo:    repo,
		storage: store,
		admin:   primitive.NewObjectID(),
	}
}

func (f *exerciseFixture) seed(t *testing.T) *domain.Exercise {
	t.Helper()
	ex, err := f.svc.Create(context.Background(), f.admin, &domain.Exercise{
		Name:        "Barbell Squat",
		MuscleGroup: "legs",
	})
	require.NoError(t, err)
	return ex
}

func TestCreateExerciseRequiresName(t *testing.T) {
	f := newExerciseFixture()
	_, err := f.svc.Create(context.Background(), f.admin, &domain.Exercise{MuscleGroup: "legs"})
	assert.ErrorIs(t, err, ErrExerciseNameEmpty)
}

func TestCreateExerciseStampsAuthor(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)
	assert.Equal(t, f.admin, ex.CreatedBy)
	assert.False(t, ex.ID.IsZero())
}

func TestRequestMediaUploadRejectsUnknownType(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)

	_, err := f.svc.RequestMediaUpload(context.Background(), ex.ID, "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidMediaType)
}

func TestRequestMediaUploadMintsKey(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)

	media, err := f.svc.RequestMediaUpload(context.Background(), ex.ID, "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(media.ObjectKey, "exercises/"+ex.ID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(media.ObjectKey, ".mp4"))
	assert.Contains(t, media.UploadURL, media.ObjectKey)

	stored, err := f.repo.Get(context.Background(), ex.ID)
	require.NoError(t, err)
	assert.Equal(t, media.ObjectKey, stored.MediaKey)
}

func TestRequestMediaUploadReplacesOldObject(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)

	first, err := f.svc.RequestMediaUpload(context.Background(), ex.ID, "image/png")
	require.NoError(t, err)
	_, err = f.svc.RequestMediaUpload(context.Background(), ex.ID, "image/jpeg")
	require.NoError(t, err)

	assert.Contains(t, f.storage.deleted, first.ObjectKey)
}

func TestMediaDownloadURLWithoutMedia(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)

	_, err := f.svc.MediaDownloadURL(context.Background(), ex.ID)
	assert.ErrorIs(t, err, ErrNoMedia)
}

func TestDeleteExerciseRemovesMedia(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)

	media, err := f.svc.RequestMediaUpload(context.Background(), ex.ID, "image/gif")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), ex.ID))
	assert.Contains(t, f.storage.deleted, media.ObjectKey)

	err = f.svc.Delete(context.Background(), ex.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestUpdateExerciseRejectsBlankName(t *testing.T) {
	f := newExerciseFixture()
	ex := f.seed(t)

	_, err := f.svc.Update(context.Background(), ex.ID, map[string]any{"name": ""})
	assert.ErrorIs(t, err, ErrExerciseNameEmpty)
}
