package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/xcaptain/facerank/internal/config"
	"github.com/xcaptain/facerank/internal/domain"
)

type fileUploader interface {
	UploadFile(ctx context.Context, name string, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini uploads through the Gemini Files API and generates with a
// file-data part referencing the uploaded file.
type Gemini struct {
	client *genai.Client
	files  fileUploader
	model  contentGenerator
	log    *zap.Logger
}

func NewGemini(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (*Gemini, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}

	return &Gemini{
		client: client,
		files:  client,
		model:  client.GenerativeModel(cfg.Model),
		log:    log,
	}, nil
}

func (g *Gemini) UploadArtifact(ctx context.Context, data []byte, mimeType, displayName string) (domain.ArtifactRef, error) {
	file, err := g.files.UploadFile(ctx, "", bytes.NewReader(data), &genai.UploadFileOptions{
		DisplayName: displayName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("gemini upload: %w", err)
	}
	if file == nil {
		return domain.ArtifactRef{}, nil
	}

	g.log.Debug("Gemini file uploaded",
		zap.String("name", file.Name),
		zap.String("uri", file.URI),
		zap.String("mime_type", file.MIMEType))

	return domain.ArtifactRef{Name: file.Name, URI: file.URI, MIMEType: file.MIMEType}, nil
}

func (g *Gemini) GenerateEvaluation(ctx context.Context, ref domain.ArtifactRef, prompt string) (domain.EvaluationResult, error) {
	resp, err := g.model.GenerateContent(ctx,
		genai.FileData{MIMEType: ref.MIMEType, URI: ref.URI},
		genai.Text(prompt),
	)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("gemini generate: %w", err)
	}

	return domain.EvaluationResult{Text: geminiText(resp)}, nil
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// geminiText joins the text parts of the first candidate. A response with no
// candidates or no text yields "".
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
