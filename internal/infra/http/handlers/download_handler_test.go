package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

type MockDownloadRepo struct {
	mock.Mock
}

func (m *MockDownloadRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

func (m *MockDownloadRepo) CreateWithQuota(ctx context.Context, d *entity.DocumentDownload, limit int) (int, error) {
	args := m.Called(ctx, d, limit)
	return args.Int(0), args.Error(1)
}

func TestDownloadHandlerLimitReachedIs422(t *testing.T) {
	repo := new(MockDownloadRepo)
	repo.On("CreateWithQuota", mock.Anything, mock.Anything, entity.DownloadLimit).
		Return(3, entity.ErrDownloadLimitReached)

	uc := usecase.NewDownloadUseCase(repo, nil, nil, nil)
	handler := NewDownloadHandler(uc)

	body := []byte(`{
		"email": "jane@boeing.com",
		"firstName": "Jane",
		"lastName": "Doe",
		"documentTitle": "Capability Statement",
		"documentUrl": "https://cdn.intelleges.com/docs/cap.pdf",
		"documentType": "capability"
	}`)

	req := httptest.NewRequest("POST", "/api/document-downloads/record-download", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.RecordDownload(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "DOWNLOAD_LIMIT_REACHED")
}

func TestDownloadHandlerCheckLimit(t *testing.T) {
	repo := new(MockDownloadRepo)
	repo.On("CountByEmail", mock.Anything, "jane@boeing.com").Return(2, nil)

	uc := usecase.NewDownloadUseCase(repo, nil, nil, nil)
	handler := NewDownloadHandler(uc)

	req := httptest.NewRequest("POST", "/api/document-downloads/check-limit",
		bytes.NewReader([]byte(`{"email":"Jane@Boeing.com"}`)))
	w := httptest.NewRecorder()

	handler.CheckLimit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"downloadCount":2`)
	assert.Contains(t, w.Body.String(), `"remainingDownloads":1`)
}

func TestDownloadHandlerValidationIs400(t *testing.T) {
	uc := usecase.NewDownloadUseCase(new(MockDownloadRepo), nil, nil, nil)
	handler := NewDownloadHandler(uc)

	req := httptest.NewRequest("POST", "/api/document-downloads/record-download",
		bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	w := httptest.NewRecorder()

	handler.RecordDownload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
