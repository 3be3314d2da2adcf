package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
)

type mockExerciseStore struct {
	saveFn  func(name string, data []byte) (string, error)
	deleted []string
}

func (m *mockExerciseStore) Save(name string, data []byte) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(name, data)
	}
	return "/uploads/123-" + name, nil
}

func (m *mockExerciseStore) Delete(relPath string) error {
	m.deleted = append(m.deleted, relPath)
	return nil
}

func TestGenerateExercise(t *testing.T) {
	store := &mockExerciseStore{}
	svc := NewExerciseService(store, nil)

	file, err := svc.Generate("Conjugate ten verbs.")
	require.NoError(t, err)
	assert.Equal(t, "123-exercise.txt", file.Name)
	assert.Equal(t, "/uploads/123-exercise.txt", file.Path)
	assert.Equal(t, "Conjugate ten verbs.", string(file.Content))
}

func TestGenerateExerciseRequiresContent(t *testing.T) {
	svc := NewExerciseService(&mockExerciseStore{}, nil)

	_, err := svc.Generate("   ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGenerateExerciseStoreFailure(t *testing.T) {
	store := &mockExerciseStore{saveFn: func(name string, data []byte) (string, error) {
		return "", errors.New("disk full")
	}}
	svc := NewExerciseService(store, nil)

	_, err := svc.Generate("content")
	require.Error(t, err)
}

func TestCleanupDeletesGeneratedFile(t *testing.T) {
	store := &mockExerciseStore{}
	svc := NewExerciseService(store, nil)

	file, err := svc.Generate("content")
	require.NoError(t, err)

	svc.Cleanup(file)
	assert.Equal(t, []string{file.Path}, store.deleted)

	// nil is a no-op, not a panic
	svc.Cleanup(nil)
}
