package sign

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"signdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func signBody(signature string) string {
	return `{
		"token": "tok-1",
		"signer_name": "Alice",
		"signer_email": "alice@example.com",
		"signature": "` + signature + `",
		"x": 100, "y": 200, "page": 0,
		"page_width": 800, "page_height": 1100
	}`
}

func TestPost_Success(t *testing.T) {
	t.Parallel()

	signature := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(signBody(signature)))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	signer.On("SignDocument", mock.Anything, mock.MatchedBy(func(req *models.SignRequest) bool {
		return req.Token == "tok-1" &&
			req.SignerName == "Alice" &&
			string(req.Signature) == "png-bytes" &&
			req.Click.X == 100 && req.Click.Y == 200 && req.Click.Page == 0
	})).Return(&models.DocumentView{ID: "doc123", Status: models.StatusSigned}, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusOK, w.Code)
	signer.AssertExpectations(t)
}

func TestPost_DataURLSignature(t *testing.T) {
	t.Parallel()

	signature := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(signBody(signature)))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	signer.On("SignDocument", mock.Anything, mock.MatchedBy(func(req *models.SignRequest) bool {
		return string(req.Signature) == "png-bytes"
	})).Return(&models.DocumentView{ID: "doc123", Status: models.StatusSigned}, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusOK, w.Code)
	signer.AssertExpectations(t)
}

func TestPost_BadSignatureEncoding(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(signBody("%%%not-base64%%%")))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	signer.AssertNotCalled(t, "SignDocument", mock.Anything, mock.Anything)
}

func TestPost_MissingToken(t *testing.T) {
	t.Parallel()

	body := `{"signer_name": "Alice", "signature": "aGk="}`
	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(body))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	signer.AssertNotCalled(t, "SignDocument", mock.Anything, mock.Anything)
}

func TestPost_AlreadySigned(t *testing.T) {
	t.Parallel()

	signature := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(signBody(signature)))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	signer.On("SignDocument", mock.Anything, mock.Anything).Return(nil, models.ErrAlreadySigned)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusConflict, w.Code)
	signer.AssertExpectations(t)
}

func TestPost_ExpiredLink(t *testing.T) {
	t.Parallel()

	signature := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(signBody(signature)))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	signer.On("SignDocument", mock.Anything, mock.Anything).Return(nil, models.ErrLinkExpired)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusGone, w.Code)
	signer.AssertExpectations(t)
}

func TestPost_InvalidPage(t *testing.T) {
	t.Parallel()

	signature := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/share/sign", strings.NewReader(signBody(signature)))
	w := httptest.NewRecorder()

	signer := new(mockSigner)
	signer.On("SignDocument", mock.Anything, mock.Anything).Return(nil, models.ErrInvalidPage)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Post(req.Context(), logger, w, req, signer)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	signer.AssertExpectations(t)
}
