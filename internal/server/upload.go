package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"github.com/labstack/echo/v4"

	"github.com/foodtok/foodtok-backend/internal/gcp"
	"github.com/foodtok/foodtok-backend/internal/services"
)

// ObjectUploader stores an uploaded video where the analysis pipeline can
// see it.
type ObjectUploader interface {
	Upload(ctx context.Context, objectName, contentType string, metadata map[string]string, content io.Reader) error
}

// GCSUploader stores uploads in a GCS bucket under videos/. Object metadata
// carries the postId/useAI pair the pipeline gates on.
type GCSUploader struct {
	bucket *storage.BucketHandle
}

// NewGCSUploader creates an uploader targeting the given bucket.
func NewGCSUploader(client *storage.Client, bucketName string) *GCSUploader {
	return &GCSUploader{bucket: client.Bucket(bucketName)}
}

// Upload writes the video as a new object; an existing object of the same
// name is left untouched.
func (u *GCSUploader) Upload(ctx context.Context, objectName, contentType string, metadata map[string]string, content io.Reader) error {
	return gcp.UploadObject(ctx, u.bucket, objectName, contentType, metadata, content)
}

type uploadResponse struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		uploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	if s.uploader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			uploadsTotal.WithLabelValues("error").Inc()
			return echo.NewHTTPError(http.StatusInternalServerError, "could not read upload")
		}
		defer file.Close()

		metadata := map[string]string{}
		if postID := c.FormValue("postId"); postID != "" {
			metadata[services.MetaPostID] = postID
		}
		if useAI := c.FormValue("useAI"); useAI != "" {
			metadata[services.MetaUseAI] = useAI
		}

		objectName := path.Join("videos", path.Base(fileHeader.Filename))
		contentType := fileHeader.Header.Get("Content-Type")
		if err := s.uploader.Upload(c.Request().Context(), objectName, contentType, metadata, file); err != nil {
			uploadsTotal.WithLabelValues("error").Inc()
			return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("storing video failed: %v", err))
		}
	}

	uploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, uploadResponse{
		Filename: fileHeader.Filename,
		Status:   "Video uploaded successfully",
	})
}
