package domain

type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

func (f *UploadedFile) Meta() *FileMeta {
	return &FileMeta{
		Name: f.Name,
		Type: f.ContentType,
		Size: f.Size,
	}
}

// ArtifactRef addresses content previously transmitted to an AI provider.
// Name is the provider-side handle when the provider has one.
type ArtifactRef struct {
	Name     string `json:"name,omitempty"`
	URI      string `json:"uri"`
	MIMEType string `json:"mime_type"`
}

// Complete reports whether the reference can be used in a generation request.
func (r ArtifactRef) Complete() bool {
	return r.URI != "" && r.MIMEType != ""
}

type EvaluationResult struct {
	Text string
}

type FileMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Analysis is the outcome of one analyze request. Exactly one of Meta and
// Result is set.
type Analysis struct {
	Meta   *FileMeta
	Result *EvaluationResult
}

type ResponsePayload struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *FileMeta `json:"data,omitempty"`
	Result  string    `json:"result,omitempty"`
}
