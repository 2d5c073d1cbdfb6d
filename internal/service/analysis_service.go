package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/domain"
	"github.com/xcaptain/facerank/internal/provider"
)

// EvaluationPrompt is sent alongside every uploaded image.
const EvaluationPrompt = "Look at the attached image. If it is a photo of a person, rate how " +
	"attractive the person is on a scale from 1 to 10 and explain the rating. " +
	"If it is not a photo of a person, say that the image is not a photo of a person."

type AnalysisService interface {
	Analyze(ctx context.Context, file *domain.UploadedFile) (*domain.Analysis, error)
}

type analysisService struct {
	provider provider.Provider
	log      *zap.Logger
}

func NewAnalysisService(p provider.Provider, log *zap.Logger) AnalysisService {
	return &analysisService{
		provider: p,
		log:      log,
	}
}

// Analyze uploads the file and asks the provider to evaluate it. The two
// provider calls run in order and the generation call receives the exact
// reference the upload returned.
func (s *analysisService) Analyze(ctx context.Context, file *domain.UploadedFile) (*domain.Analysis, error) {
	if file == nil || file.Size == 0 {
		return nil, domain.ErrNoFile
	}

	ref, err := s.provider.UploadArtifact(ctx, file.Data, file.ContentType, file.Name)
	if err != nil {
		return nil, fmt.Errorf("upload artifact: %w", err)
	}
	if !ref.Complete() {
		return nil, fmt.Errorf("%w: uri=%q mime_type=%q", domain.ErrIncompleteReference, ref.URI, ref.MIMEType)
	}

	s.log.Info("Artifact uploaded",
		zap.String("filename", file.Name),
		zap.String("uri", ref.URI),
		zap.String("mime_type", ref.MIMEType))

	result, err := s.provider.GenerateEvaluation(ctx, ref, EvaluationPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate evaluation: %w", err)
	}

	s.log.Info("File analyzed",
		zap.String("filename", file.Name),
		zap.Int64("size", file.Size),
		zap.Int("result_length", len(result.Text)))

	return &domain.Analysis{Result: &result}, nil
}
