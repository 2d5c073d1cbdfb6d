package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/config"
	"github.com/xcaptain/facerank/internal/domain"
	"github.com/xcaptain/facerank/internal/repository"
)

// Provider is the AI capability the relay depends on. UploadArtifact
// transmits the raw bytes and returns a reference the provider can resolve;
// GenerateEvaluation answers prompt about the referenced artifact.
type Provider interface {
	UploadArtifact(ctx context.Context, data []byte, mimeType, displayName string) (domain.ArtifactRef, error)
	GenerateEvaluation(ctx context.Context, ref domain.ArtifactRef, prompt string) (domain.EvaluationResult, error)
}

// New builds the provider named in cfg. store is only consulted by providers
// that address images by URL and may be nil otherwise.
func New(ctx context.Context, cfg config.AIConfig, s3cfg config.S3Config, store repository.S3Repository, log *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case "gemini", "google":
		return NewGemini(ctx, cfg, log)
	case "openai":
		if store == nil {
			return nil, fmt.Errorf("openai provider requires an S3 staging store")
		}
		return NewOpenAI(cfg, NewStager(store, s3cfg.PresignTTL, log), log), nil
	case "anthropic", "claude":
		if store == nil {
			return nil, fmt.Errorf("anthropic provider requires an S3 staging store")
		}
		return NewAnthropic(cfg, NewStager(store, s3cfg.PresignTTL, log), log), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
