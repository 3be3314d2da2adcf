package service

import (
	"path"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
)

type exerciseStore interface {
	Save(originalName string, data []byte) (string, error)
	Delete(relPath string) error
}

// ExerciseService packages generated exercise text into downloadable files.
type ExerciseService struct {
	files  exerciseStore
	logger *zap.Logger
}

// NewExerciseService constructs the service.
func NewExerciseService(files exerciseStore, logger *zap.Logger) *ExerciseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExerciseService{files: files, logger: logger}
}

// ExerciseFile describes a generated download.
type ExerciseFile struct {
	Name    string
	Path    string
	Content []byte
}

// Generate writes the content to a timestamped text file and returns it for
// streaming. The file is transient; callers should Cleanup after sending.
func (s *ExerciseService) Generate(content string) (*ExerciseFile, error) {
	if strings.TrimSpace(content) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no content provided")
	}

	// The store prefixes a timestamp, so concurrent downloads never collide.
	relPath, err := s.files.Save("exercise.txt", []byte(content))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate exercise file")
	}

	return &ExerciseFile{Name: path.Base(relPath), Path: relPath, Content: []byte(content)}, nil
}

// Cleanup removes a previously generated exercise file.
func (s *ExerciseService) Cleanup(file *ExerciseFile) {
	if file == nil {
		return
	}
	if err := s.files.Delete(file.Path); err != nil {
		s.logger.Warn("failed to remove exercise file", zap.String("path", file.Path), zap.Error(err))
	}
}
