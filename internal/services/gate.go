package services

import (
	"path"
	"strings"

	"github.com/foodtok/foodtok-backend/internal/models"
)

// FinalizeEventType is the CloudEvent type for a completed storage object
// write. Anything else on the subscription is unrelated traffic.
const FinalizeEventType = "google.cloud.storage.object.v1.finalized"

// Metadata keys a post upload must carry to opt in to analysis.
const (
	MetaUseAI  = "useAI"
	MetaPostID = "postId"
)

// videoExtensions maps recognized file extensions to a content type, used
// when the event carries no contentType of its own.
var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".avi":  "video/x-msvideo",
}

// ShouldAnalyze decides from event metadata alone whether the event warrants
// an analysis run. The notification stream carries every object write in the
// bucket, so rejection is the common case and must not touch any external
// service.
func ShouldAnalyze(e models.StorageEvent) bool {
	if e.Type != FinalizeEventType {
		return false
	}

	if !strings.HasPrefix(effectiveContentType(e), "video/") {
		return false
	}

	if e.Metadata[MetaUseAI] != "true" || e.Metadata[MetaPostID] == "" {
		return false
	}

	return true
}

// effectiveContentType returns the event's content type, falling back to an
// extension-based guess when the upload didn't set one.
func effectiveContentType(e models.StorageEvent) string {
	if e.ContentType != "" {
		return e.ContentType
	}
	ext := strings.ToLower(path.Ext(e.ObjectName))
	return videoExtensions[ext]
}
