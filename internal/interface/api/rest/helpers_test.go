// helpers_test.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"file-drop-api/internal/application/ports"
	domainFile "file-drop-api/internal/domain/file"
	domainConfig "file-drop-api/internal/domain/serviceconfig"
	"file-drop-api/pkg/rate"
)

type FakeUploadService struct {
	UploadFunc func(ctx context.Context, req ports.UploadRequest) (*domainFile.File, error)
}

func (f *FakeUploadService) Upload(ctx context.Context, req ports.UploadRequest) (*domainFile.File, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, req)
}

type FakeFileService struct {
	DownloadFunc       func(ctx context.Context, key string) (*ports.Object, *domainFile.File, error)
	InformationFunc    func(ctx context.Context, key string) (*domainFile.File, int64, error)
	FindFilesFunc      func(ctx context.Context) (domainFile.Files, error)
	DeleteFileByIDFunc func(ctx context.Context, id uuid.UUID) (*domainFile.File, error)
}

func (f *FakeFileService) Download(ctx context.Context, key string) (*ports.Object, *domainFile.File, error) {
	if f.DownloadFunc == nil {
		return nil, nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, key)
}
func (f *FakeFileService) Information(ctx context.Context, key string) (*domainFile.File, int64, error) {
	if f.InformationFunc == nil {
		return nil, 0, errors.New("not used")
	}
	return f.InformationFunc(ctx, key)
}
func (f *FakeFileService) FindFiles(ctx context.Context) (domainFile.Files, error) {
	if f.FindFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindFilesFunc(ctx)
}
func (f *FakeFileService) DeleteFileByID(ctx context.Context, id uuid.UUID) (*domainFile.File, error) {
	if f.DeleteFileByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteFileByIDFunc(ctx, id)
}

type FakeConfigService struct {
	GetFunc     func(ctx context.Context) (*domainConfig.ServiceConfig, error)
	OnboardFunc func(ctx context.Context, cfg *domainConfig.ServiceConfig) (*domainConfig.ServiceConfig, error)
	UpdateFunc  func(ctx context.Context, cfg *domainConfig.ServiceConfig) (*domainConfig.ServiceConfig, error)
}

func (f *FakeConfigService) Get(ctx context.Context) (*domainConfig.ServiceConfig, error) {
	if f.GetFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetFunc(ctx)
}
func (f *FakeConfigService) Onboard(ctx context.Context, cfg *domainConfig.ServiceConfig) (*domainConfig.ServiceConfig, error) {
	if f.OnboardFunc == nil {
		return nil, errors.New("not used")
	}
	return f.OnboardFunc(ctx, cfg)
}
func (f *FakeConfigService) Update(ctx context.Context, cfg *domainConfig.ServiceConfig) (*domainConfig.ServiceConfig, error) {
	if f.UpdateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateFunc(ctx, cfg)
}

// FakeRateLimiter admits everything unless AllowFunc says otherwise.
type FakeRateLimiter struct {
	AllowFunc func(ctx context.Context, clientID, endpoint string, rates []rate.Rate) (bool, rate.Rate, error)
}

func (f *FakeRateLimiter) Allow(ctx context.Context, clientID, endpoint string, rates []rate.Rate) (bool, rate.Rate, error) {
	if f.AllowFunc == nil {
		return true, rate.Rate{}, nil
	}
	return f.AllowFunc(ctx, clientID, endpoint, rates)
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "filedrop", Name: "general_counters"},
		[]string{"result"})
}

func SignJWT(secret, userID, role string, exp time.Duration) (string, error) {
	type Claims struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwtv5.RegisteredClaims
	}
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(exp)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	case []byte:
		reader = bytes.NewReader(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		if _, isStr := body.(string); !isStr {
			if _, isBytes := body.([]byte); !isBytes {
				req.Header.Set("Content-Type", "application/json")
			}
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipartReq(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if fileField != "" && fileName != "" && fileContent != nil {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, _ = fw.Write(fileContent)
	}

	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, path, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
