package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/config"
	"github.com/xcaptain/facerank/internal/domain"
)

// OpenAI stages the image in S3 and passes its presigned URL as an image_url
// part of a chat completion.
type OpenAI struct {
	*Stager
	client *openai.Client
	model  string
	log    *zap.Logger
}

func NewOpenAI(cfg config.AIConfig, stager *Stager, log *zap.Logger) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		Stager: stager,
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		log:    log,
	}
}

func (o *OpenAI) GenerateEvaluation(ctx context.Context, ref domain.ArtifactRef, prompt string) (domain.EvaluationResult, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    ref.URI,
						Detail: openai.ImageURLDetailAuto,
					},
				},
				{
					Type: openai.ChatMessagePartTypeText,
					Text: prompt,
				},
			},
		}},
	})
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.EvaluationResult{}, errors.New("openai generate: no choices in response")
	}

	o.log.Debug("OpenAI evaluation generated",
		zap.String("model", resp.Model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)))

	return domain.EvaluationResult{Text: resp.Choices[0].Message.Content}, nil
}
