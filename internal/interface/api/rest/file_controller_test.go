// file_controller_test.go
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/domain/errs"
	domainFile "file-drop-api/internal/domain/file"
	jwtSvc "file-drop-api/internal/infrastructure/jwt"
	"file-drop-api/pkg/rate"
)

func setupRouterFC(t *testing.T, fs ports.FileService, limiter ports.RateLimiter) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	if limiter == nil {
		limiter = &FakeRateLimiter{}
	}
	secret := "test-secret"
	NewFileController(r, fs, limiter, zap.NewNop(), newTestCounter(), jwtSvc.New(secret))

	return r, secret
}

func someStoredFile() *domainFile.File {
	return &domainFile.File{
		UUID:                 uuid.New(),
		StorageKey:           "files/2026/08/31/abc/note.txt",
		FileName:             "note.txt",
		SizeBytes:            11,
		ExpiresAt:            time.Now().UTC().Add(time.Hour),
		ExpireAfterNDownload: 10,
		DownloadCount:        1,
		CreatedAt:            time.Now().UTC(),
	}
}

func TestFileController_DownloadHandler(t *testing.T) {
	rec := someStoredFile()

	tests := []struct {
		name       string
		path       string
		mockFS     func() ports.FileService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "400 empty key",
			path:       RouteApiV1 + "/download/",
			mockFS:     func() ports.FileService { return &FakeFileService{} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "404 unknown key",
			path: RouteApiV1 + "/download/files/nope",
			mockFS: func() ports.FileService {
				return &FakeFileService{
					DownloadFunc: func(ctx context.Context, key string) (*ports.Object, *domainFile.File, error) {
						return nil, nil, errs.ErrNotFound
					},
				}
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "410 expired",
			path: RouteApiV1 + "/download/" + rec.StorageKey,
			mockFS: func() ports.FileService {
				return &FakeFileService{
					DownloadFunc: func(ctx context.Context, key string) (*ports.Object, *domainFile.File, error) {
						return nil, nil, errs.ErrFileExpired
					},
				}
			},
			wantStatus: http.StatusGone,
		},
		{
			name: "200 streams content",
			path: RouteApiV1 + "/download/" + rec.StorageKey,
			mockFS: func() ports.FileService {
				return &FakeFileService{
					DownloadFunc: func(ctx context.Context, key string) (*ports.Object, *domainFile.File, error) {
						require.Equal(t, rec.StorageKey, key)
						obj := &ports.Object{
							Body:        io.NopCloser(strings.NewReader("hello world")),
							ContentType: "text/plain",
							Size:        11,
						}
						return obj, rec, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			wantBody:   "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterFC(t, tt.mockFS(), nil)
			rr := doReq(t, r, http.MethodGet, tt.path, nil, nil)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
				assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="note.txt"`)
			}
		})
	}
}

// "2req/sec": two rapid requests pass, the third gets 429
func TestFileController_DownloadRateLimited(t *testing.T) {
	rec := someStoredFile()

	fs := &FakeFileService{
		DownloadFunc: func(ctx context.Context, key string) (*ports.Object, *domainFile.File, error) {
			obj := &ports.Object{
				Body:        io.NopCloser(strings.NewReader("ok")),
				ContentType: "text/plain",
				Size:        2,
			}
			return obj, rec, nil
		},
	}

	calls := 0
	limiter := &FakeRateLimiter{
		AllowFunc: func(ctx context.Context, clientID, endpoint string, rates []rate.Rate) (bool, rate.Rate, error) {
			require.Equal(t, "download", endpoint)
			calls++
			if calls > 2 {
				return false, rate.Rate{Limit: 2, Window: time.Second}, nil
			}
			return true, rate.Rate{}, nil
		},
	}

	r, _ := setupRouterFC(t, fs, limiter)
	path := RouteApiV1 + "/download/" + rec.StorageKey

	for i := 0; i < 2; i++ {
		rr := doReq(t, r, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doReq(t, r, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

// a limiter outage must not take downloads with it
func TestFileController_DownloadLimiterFailsOpen(t *testing.T) {
	rec := someStoredFile()

	fs := &FakeFileService{
		DownloadFunc: func(ctx context.Context, key string) (*ports.Object, *domainFile.File, error) {
			obj := &ports.Object{
				Body:        io.NopCloser(strings.NewReader("ok")),
				ContentType: "text/plain",
				Size:        2,
			}
			return obj, rec, nil
		},
	}
	limiter := &FakeRateLimiter{
		AllowFunc: func(ctx context.Context, clientID, endpoint string, rates []rate.Rate) (bool, rate.Rate, error) {
			return false, rate.Rate{}, context.DeadlineExceeded
		},
	}

	r, _ := setupRouterFC(t, fs, limiter)
	rr := doReq(t, r, http.MethodGet, RouteApiV1+"/download/"+rec.StorageKey, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestFileController_InformationHandler(t *testing.T) {
	rec := someStoredFile()

	fs := &FakeFileService{
		InformationFunc: func(ctx context.Context, key string) (*domainFile.File, int64, error) {
			cp := *rec
			return &cp, 2048, nil
		},
	}

	r, _ := setupRouterFC(t, fs, nil)
	rr := doReq(t, r, http.MethodGet, RouteApiV1+"/information/"+rec.StorageKey, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "note.txt", resp["file_name"])
	assert.Equal(t, float64(2048), resp["size_bytes"])
	assert.Equal(t, "2.0 KiB", resp["size"])
}

func TestFileController_AdminFiles(t *testing.T) {
	rec := someStoredFile()

	authHeader := func(secret string) map[string]string {
		tok, _ := SignJWT(secret, "admin-1", "admin", time.Hour)
		return map[string]string{"Authorization": "Bearer " + tok}
	}

	t.Run("401 without token", func(t *testing.T) {
		r, _ := setupRouterFC(t, &FakeFileService{}, nil)
		rr := doReq(t, r, http.MethodGet, RouteAdminFiles, nil, nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("200 list", func(t *testing.T) {
		fs := &FakeFileService{
			FindFilesFunc: func(ctx context.Context) (domainFile.Files, error) {
				return domainFile.Files{rec}, nil
			},
		}
		r, secret := setupRouterFC(t, fs, nil)
		rr := doReq(t, r, http.MethodGet, RouteAdminFiles, nil, authHeader(secret))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, rec.StorageKey, resp.Data[0]["key"])
	})

	t.Run("400 delete with bad id", func(t *testing.T) {
		r, secret := setupRouterFC(t, &FakeFileService{}, nil)
		rr := doReq(t, r, http.MethodDelete, RouteAdminFiles+"/not-uuid", nil, authHeader(secret))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("202 delete enqueued", func(t *testing.T) {
		fs := &FakeFileService{
			DeleteFileByIDFunc: func(ctx context.Context, id uuid.UUID) (*domainFile.File, error) {
				require.Equal(t, rec.UUID, id)
				return rec, nil
			},
		}
		r, secret := setupRouterFC(t, fs, nil)
		rr := doReq(t, r, http.MethodDelete, RouteAdminFiles+"/"+rec.UUID.String(), nil, authHeader(secret))
		require.Equal(t, http.StatusAccepted, rr.Code)
	})
}
