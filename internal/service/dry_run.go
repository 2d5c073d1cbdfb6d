package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/domain"
)

type dryRunService struct {
	log *zap.Logger
}

// NewDryRunService returns an AnalysisService that echoes file metadata and
// never contacts a provider.
func NewDryRunService(log *zap.Logger) AnalysisService {
	return &dryRunService{log: log}
}

func (s *dryRunService) Analyze(_ context.Context, file *domain.UploadedFile) (*domain.Analysis, error) {
	if file == nil || file.Size == 0 {
		return nil, domain.ErrNoFile
	}

	s.log.Info("File info",
		zap.String("filename", file.Name),
		zap.String("content_type", file.ContentType),
		zap.Int64("size", file.Size))

	return &domain.Analysis{Meta: file.Meta()}, nil
}
