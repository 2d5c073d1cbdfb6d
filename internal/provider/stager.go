package provider

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/domain"
	"github.com/xcaptain/facerank/internal/repository"
)

const stagingPrefix = "artifacts/"

// Stager uploads artifacts to S3 and hands out presigned URLs for providers
// whose APIs fetch images by URL instead of accepting a file upload.
type Stager struct {
	store repository.S3Repository
	ttl   time.Duration
	log   *zap.Logger
}

func NewStager(store repository.S3Repository, ttl time.Duration, log *zap.Logger) *Stager {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Stager{store: store, ttl: ttl, log: log}
}

func (s *Stager) UploadArtifact(ctx context.Context, data []byte, mimeType, displayName string) (domain.ArtifactRef, error) {
	key := stagingPrefix + uuid.New().String() + stagingExt(displayName, mimeType)

	if err := s.store.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("stage artifact: %w", err)
	}

	url, err := s.store.PresignURL(ctx, key, s.ttl)
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("presign artifact: %w", err)
	}

	s.log.Debug("Artifact staged",
		zap.String("key", key),
		zap.String("display_name", displayName),
		zap.Int("size", len(data)))

	return domain.ArtifactRef{Name: key, URI: url, MIMEType: mimeType}, nil
}

func stagingExt(displayName, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(displayName)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
