package rest

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	filedto "file-drop-api/internal/interface/api/rest/dto/file"
	"file-drop-api/internal/interface/api/rest/middleware"
	"file-drop-api/internal/interface/api/rest/validator"
	"file-drop-api/pkg/rate"
)

const maxFormValueLen = 64

var uploadRates = rate.MustParse("10req/min", "200req/day")

type UploadController struct {
	uploadService ports.UploadService
	logger        *zap.Logger
}

func NewUploadController(
	r *gin.Engine,
	uploadService ports.UploadService,
	limiter ports.RateLimiter,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *UploadController {
	uc := &UploadController{
		uploadService: uploadService,
		logger:        logger,
	}

	r.POST(
		RouteUpload,
		middleware.RateLimit(limiter, "upload", uploadRates, logger, mCounter),
		uc.UploadHandler,
	)

	return uc
}

// UploadHandler consumes the multipart body in order so the file is streamed
// straight into object storage without buffering it whole. Metadata fields
// must precede the file part in the form.
func (uc *UploadController) UploadHandler(c *gin.Context) {
	mr, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart/form-data body is required"})
		return
	}

	var expireAfter, expireAfterNDownload string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed multipart body"})
			return
		}

		switch part.FormName() {
		case "expire_after":
			expireAfter = formValue(part)
		case "expire_after_n_download":
			expireAfterNDownload = formValue(part)
		case "file":
			uc.uploadFilePart(c, part, expireAfter, expireAfterNDownload)
			return
		default:
			_ = part.Close()
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
}

func (uc *UploadController) uploadFilePart(c *gin.Context, part *multipart.Part, expireAfter, expireAfterNDownload string) {
	expiry, downloads, verrs := validator.ValidateUploadForm(expireAfter, expireAfterNDownload)
	if verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	if part.FileName() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file part must carry a filename"})
		return
	}

	// Content-Length covers the whole form, not just the file; as a size
	// hint for the chunk policy the overestimate is harmless.
	rec, err := uc.uploadService.Upload(c.Request.Context(), ports.UploadRequest{
		Body:                 part,
		SizeHint:             c.Request.ContentLength,
		FileName:             part.FileName(),
		ContentType:          part.Header.Get("Content-Type"),
		ExpireAfterSeconds:   expiry,
		ExpireAfterNDownload: downloads,
	})
	if err != nil {
		respondErr(c, uc.logger, "Upload()", err)
		return
	}

	c.JSON(http.StatusCreated, filedto.UploadResponse{Key: rec.StorageKey})
}

func formValue(p *multipart.Part) string {
	b, _ := io.ReadAll(io.LimitReader(p, maxFormValueLen))
	_ = p.Close()
	return string(b)
}
