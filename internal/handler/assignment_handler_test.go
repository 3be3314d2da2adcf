package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect/classconnect-api/internal/dto"
	"github.com/classconnect/classconnect-api/internal/middleware"
	"github.com/classconnect/classconnect-api/internal/models"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
	"github.com/classconnect/classconnect-api/pkg/response"
)

type mockAssignmentService struct {
	createFn    func(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error)
	listFn      func(ctx context.Context) ([]models.Assignment, error)
	getByIDFn   func(ctx context.Context, id string) (*models.Assignment, error)
	updateFn    func(ctx context.Context, id string, req dto.UpdateAssignmentRequest, file *dto.FileUpload, actor *models.JWTClaims) (*models.Assignment, error)
	deleteOneFn func(ctx context.Context, id string, actor *models.JWTClaims) error
	deleteAllFn func(ctx context.Context) error
}

func (m *mockAssignmentService) Create(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error) {
	return m.createFn(ctx, req, file)
}

func (m *mockAssignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	return m.listFn(ctx)
}

func (m *mockAssignmentService) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAssignmentService) Update(ctx context.Context, id string, req dto.UpdateAssignmentRequest, file *dto.FileUpload, actor *models.JWTClaims) (*models.Assignment, error) {
	return m.updateFn(ctx, id, req, file, actor)
}

func (m *mockAssignmentService) DeleteOne(ctx context.Context, id string, actor *models.JWTClaims) error {
	return m.deleteOneFn(ctx, id, actor)
}

func (m *mockAssignmentService) DeleteAll(ctx context.Context) error {
	return m.deleteAllFn(ctx)
}

func testContext(t *testing.T, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, fileName string, fileBody []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/assignments", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestCreateAssignmentWithFile(t *testing.T) {
	var gotReq dto.CreateAssignmentRequest
	var gotFile *dto.FileUpload
	svc := &mockAssignmentService{
		createFn: func(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error) {
			gotReq = req
			gotFile = file
			return &models.Assignment{ID: "a1", Title: req.Title, TeacherID: req.TeacherID}, nil
		},
	}
	h := NewAssignmentHandler(svc)

	req := multipartRequest(t, map[string]string{
		"title":     "Essay",
		"teacherId": "t1",
		"className": "5B",
	}, "file", "essay.pdf", []byte("pdf-bytes"))
	c, rec := testContext(t, req)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Essay", gotReq.Title)
	assert.Equal(t, "t1", gotReq.TeacherID)
	require.NotNil(t, gotFile)
	assert.Equal(t, "essay.pdf", gotFile.Filename)
	body, err := io.ReadAll(gotFile.Content)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(body))
}

func TestCreateAssignmentWithoutFile(t *testing.T) {
	svc := &mockAssignmentService{
		createFn: func(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error) {
			assert.Nil(t, file)
			return &models.Assignment{ID: "a1", Title: req.Title}, nil
		},
	}
	h := NewAssignmentHandler(svc)

	req := multipartRequest(t, map[string]string{"title": "Essay", "teacherId": "t1"}, "", "", nil)
	c, rec := testContext(t, req)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateAssignmentServiceError(t *testing.T) {
	svc := &mockAssignmentService{
		createFn: func(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "title and teacher ID are required")
		},
	}
	h := NewAssignmentHandler(svc)

	req := multipartRequest(t, map[string]string{"title": "  "}, "", "", nil)
	c, rec := testContext(t, req)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestListAssignments(t *testing.T) {
	svc := &mockAssignmentService{
		listFn: func(ctx context.Context) ([]models.Assignment, error) {
			return []models.Assignment{{ID: "a2", Title: "Newer"}, {ID: "a1", Title: "Older"}}, nil
		},
	}
	h := NewAssignmentHandler(svc)

	c, rec := testContext(t, httptest.NewRequest(http.MethodGet, "/api/assignments", nil))
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.Nil(t, envelope.Error)
	items, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestGetAssignmentNotFound(t *testing.T) {
	svc := &mockAssignmentService{
		getByIDFn: func(ctx context.Context, id string) (*models.Assignment, error) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		},
	}
	h := NewAssignmentHandler(svc)

	c, rec := testContext(t, httptest.NewRequest(http.MethodGet, "/api/assignments/missing", nil))
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAssignmentRequiresClaims(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	req := multipartRequest(t, map[string]string{"title": "Essay v2"}, "", "", nil)
	c, rec := testContext(t, req)
	c.Params = gin.Params{{Key: "id", Value: "a1"}}

	h.Update(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateAssignmentPassesActor(t *testing.T) {
	var gotActor *models.JWTClaims
	var gotReq dto.UpdateAssignmentRequest
	svc := &mockAssignmentService{
		updateFn: func(ctx context.Context, id string, req dto.UpdateAssignmentRequest, file *dto.FileUpload, actor *models.JWTClaims) (*models.Assignment, error) {
			gotActor = actor
			gotReq = req
			return &models.Assignment{ID: id, Title: *req.Title}, nil
		},
	}
	h := NewAssignmentHandler(svc)

	req := multipartRequest(t, map[string]string{"title": "Essay v2"}, "", "", nil)
	c, rec := testContext(t, req)
	c.Params = gin.Params{{Key: "id", Value: "a1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher})

	h.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotActor)
	assert.Equal(t, "t1", gotActor.UserID)
	require.NotNil(t, gotReq.Title)
	assert.Equal(t, "Essay v2", *gotReq.Title)
	assert.Nil(t, gotReq.Description)
}

func TestDeleteAssignment(t *testing.T) {
	svc := &mockAssignmentService{
		deleteOneFn: func(ctx context.Context, id string, actor *models.JWTClaims) error {
			assert.Equal(t, "a1", id)
			return nil
		},
	}
	h := NewAssignmentHandler(svc)

	c, rec := testContext(t, httptest.NewRequest(http.MethodDelete, "/api/assignments/a1", nil))
	c.Params = gin.Params{{Key: "id", Value: "a1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher})

	h.Delete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "assignment deleted", data["message"])
}

func TestDeleteAllAssignmentsHandler(t *testing.T) {
	called := false
	svc := &mockAssignmentService{
		deleteAllFn: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	h := NewAssignmentHandler(svc)

	c, rec := testContext(t, httptest.NewRequest(http.MethodDelete, "/api/assignments", nil))
	h.DeleteAll(c)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
