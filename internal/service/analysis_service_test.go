package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/domain"
)

type fakeProvider struct {
	ref       domain.ArtifactRef
	uploadErr error
	text      string
	genErr    error
	calls     []string
	gotData   []byte
	gotMIME   string
	gotName   string
	gotRef    domain.ArtifactRef
	gotPrompt string
}

func (f *fakeProvider) UploadArtifact(_ context.Context, data []byte, mimeType, displayName string) (domain.ArtifactRef, error) {
	f.calls = append(f.calls, "upload")
	f.gotData = data
	f.gotMIME = mimeType
	f.gotName = displayName
	return f.ref, f.uploadErr
}

func (f *fakeProvider) GenerateEvaluation(_ context.Context, ref domain.ArtifactRef, prompt string) (domain.EvaluationResult, error) {
	f.calls = append(f.calls, "generate")
	f.gotRef = ref
	f.gotPrompt = prompt
	return domain.EvaluationResult{Text: f.text}, f.genErr
}

func portrait() *domain.UploadedFile {
	data := make([]byte, 12345)
	return &domain.UploadedFile{Name: "portrait.jpg", ContentType: "image/jpeg", Size: int64(len(data)), Data: data}
}

func TestAnalyzeRelaysUploadThenGenerate(t *testing.T) {
	p := &fakeProvider{
		ref:  domain.ArtifactRef{URI: "mock://abc", MIMEType: "image/jpeg"},
		text: "8/10 — balanced features.",
	}
	svc := NewAnalysisService(p, zap.NewNop())
	file := portrait()

	got, err := svc.Analyze(context.Background(), file)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if len(p.calls) != 2 || p.calls[0] != "upload" || p.calls[1] != "generate" {
		t.Fatalf("calls = %v, want [upload generate]", p.calls)
	}
	if len(p.gotData) != 12345 || p.gotMIME != "image/jpeg" || p.gotName != "portrait.jpg" {
		t.Errorf("upload got len=%d mime=%q name=%q", len(p.gotData), p.gotMIME, p.gotName)
	}
	if p.gotRef != p.ref {
		t.Errorf("generate got ref %+v, want %+v", p.gotRef, p.ref)
	}
	if p.gotPrompt != EvaluationPrompt {
		t.Errorf("generate got prompt %q", p.gotPrompt)
	}
	if got.Result == nil || got.Result.Text != "8/10 — balanced features." {
		t.Errorf("result = %+v", got.Result)
	}
	if got.Meta != nil {
		t.Errorf("relay must not echo metadata")
	}
}

func TestAnalyzeEmptyResultPassesThrough(t *testing.T) {
	p := &fakeProvider{ref: domain.ArtifactRef{URI: "mock://abc", MIMEType: "image/jpeg"}}
	svc := NewAnalysisService(p, zap.NewNop())

	got, err := svc.Analyze(context.Background(), portrait())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if got.Result == nil || got.Result.Text != "" {
		t.Errorf("result = %+v", got.Result)
	}
}

func TestAnalyzeNoFile(t *testing.T) {
	for name, file := range map[string]*domain.UploadedFile{
		"nil":   nil,
		"empty": {Name: "empty.jpg", ContentType: "image/jpeg"},
	} {
		t.Run(name, func(t *testing.T) {
			p := &fakeProvider{}
			_, err := NewAnalysisService(p, zap.NewNop()).Analyze(context.Background(), file)
			if !errors.Is(err, domain.ErrNoFile) {
				t.Fatalf("err = %v, want ErrNoFile", err)
			}
			if len(p.calls) != 0 {
				t.Fatalf("calls = %v, want none", p.calls)
			}
		})
	}
}

func TestAnalyzeIncompleteReference(t *testing.T) {
	for name, ref := range map[string]domain.ArtifactRef{
		"missing uri":       {MIMEType: "image/jpeg"},
		"missing mime type": {URI: "mock://abc"},
	} {
		t.Run(name, func(t *testing.T) {
			p := &fakeProvider{ref: ref, text: "unused"}
			_, err := NewAnalysisService(p, zap.NewNop()).Analyze(context.Background(), portrait())
			if !errors.Is(err, domain.ErrIncompleteReference) {
				t.Fatalf("err = %v, want ErrIncompleteReference", err)
			}
			if len(p.calls) != 1 || p.calls[0] != "upload" {
				t.Fatalf("calls = %v, generation must not run", p.calls)
			}
		})
	}
}

func TestAnalyzeUpstreamFailures(t *testing.T) {
	upstream := errors.New("401 unauthenticated")

	p := &fakeProvider{uploadErr: upstream}
	if _, err := NewAnalysisService(p, zap.NewNop()).Analyze(context.Background(), portrait()); !errors.Is(err, upstream) {
		t.Errorf("upload failure: err = %v", err)
	}
	if len(p.calls) != 1 {
		t.Errorf("upload failure: calls = %v", p.calls)
	}

	p = &fakeProvider{ref: domain.ArtifactRef{URI: "mock://abc", MIMEType: "image/jpeg"}, genErr: upstream}
	if _, err := NewAnalysisService(p, zap.NewNop()).Analyze(context.Background(), portrait()); !errors.Is(err, upstream) {
		t.Errorf("generate failure: err = %v", err)
	}
	if len(p.calls) != 2 {
		t.Errorf("generate failure: calls = %v", p.calls)
	}
}

func TestDryRunEchoesMetadata(t *testing.T) {
	svc := NewDryRunService(zap.NewNop())

	got, err := svc.Analyze(context.Background(), portrait())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	want := domain.FileMeta{Name: "portrait.jpg", Type: "image/jpeg", Size: 12345}
	if got.Meta == nil || *got.Meta != want {
		t.Errorf("meta = %+v, want %+v", got.Meta, want)
	}
	if got.Result != nil {
		t.Errorf("dry run must not produce a result")
	}

	if _, err := svc.Analyze(context.Background(), nil); !errors.Is(err, domain.ErrNoFile) {
		t.Errorf("err = %v, want ErrNoFile", err)
	}
}
