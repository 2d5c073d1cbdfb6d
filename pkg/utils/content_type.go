package utils

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// ResolveContentType returns the declared media type of an uploaded part.
// When the client declared none, the type is derived from the filename
// extension and, failing that, from the first bytes of the content.
func ResolveContentType(declared, filename string, data []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			mediaType, _, err := mime.ParseMediaType(byExt)
			if err == nil {
				return mediaType
			}
			return byExt
		}
	}

	if len(data) == 0 {
		return "application/octet-stream"
	}

	sniffed, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return sniffed
}
