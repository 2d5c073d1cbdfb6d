package provider

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/config"
	"github.com/xcaptain/facerank/internal/domain"
)

// Anthropic stages the image in S3 and sends its presigned URL as an image
// block of a Messages API request.
type Anthropic struct {
	*Stager
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *zap.Logger
}

func NewAnthropic(cfg config.AIConfig, stager *Stager, log *zap.Logger) *Anthropic {
	opts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(cfg.APIKey),
		anthropicopt.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropicopt.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Anthropic{
		Stager:    stager,
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(maxTokens),
		log:       log,
	}
}

func (a *Anthropic) GenerateEvaluation(ctx context.Context, ref domain.ArtifactRef, prompt string) (domain.EvaluationResult, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlock(anthropic.URLImageSourceParam{URL: ref.URI}),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("anthropic generate: %w", err)
	}

	a.log.Debug("Anthropic evaluation generated",
		zap.String("model", string(msg.Model)),
		zap.String("stop_reason", string(msg.StopReason)))

	var b strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return domain.EvaluationResult{Text: b.String()}, nil
}
