package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/infrastructure/jwt"
	filedto "file-drop-api/internal/interface/api/rest/dto/file"
	"file-drop-api/internal/interface/api/rest/middleware"
	"file-drop-api/internal/interface/api/rest/validator"
	"file-drop-api/pkg/rate"
)

var downloadRates = rate.MustParse("2req/sec", "1000req/day")

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	limiter ports.RateLimiter,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	r.GET(
		RouteDownload,
		middleware.RateLimit(limiter, "download", downloadRates, logger, mCounter),
		fc.DownloadHandler,
	)
	r.GET(RouteInformation, fc.InformationHandler)

	r.GET(RouteAdminFiles, middleware.AuthMiddleware(jwtService), fc.GetFilesHandler)
	r.DELETE(RouteAdminFile, middleware.AuthMiddleware(jwtService), fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	key, ok := validator.StorageKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}

	obj, rec, err := fc.fileService.Download(c.Request.Context(), key)
	if err != nil {
		respondErr(c, fc.logger, "Download()", err)
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", rec.FileName),
	})
}

func (fc *FileController) InformationHandler(c *gin.Context) {
	key, ok := validator.StorageKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}

	rec, size, err := fc.fileService.Information(c.Request.Context(), key)
	if err != nil {
		respondErr(c, fc.logger, "Information()", err)
		return
	}

	// serve the probed size, the record may lag behind the object
	rec.SizeBytes = uint64(size)

	c.JSON(http.StatusOK, filedto.ToResponseFile(*rec))
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	files, err := fc.fileService.FindFiles(c.Request.Context())
	if err != nil {
		respondErr(c, fc.logger, "FindFiles()", err)
		return
	}

	c.JSON(http.StatusOK, filedto.ResponseData{
		Data: filedto.ToResponseFiles(files),
	})
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	rec, err := fc.fileService.DeleteFileByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, fc.logger, "DeleteFileByID()", err)
		return
	}

	// deletion is enqueued, not applied inline
	c.JSON(http.StatusAccepted, filedto.ToResponseFile(*rec))
}
