// Package media validates uploaded video files and produces the text-safe
// payload sent to the model.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"aesthetica/internal/models"
)

// MaxUploadBytes caps direct uploads at 150 MiB. Larger files fail the
// API's inline-data path anyway, so they are rejected before any network
// call.
const MaxUploadBytes = 150 * 1024 * 1024

const defaultMIMEType = "video/mp4"

// acceptedExts is the intake whitelist. Acceptance is an OR of this and
// the declared MIME prefix: several platforms misreport or omit the MIME
// type for common video containers, so either signal suffices.
var acceptedExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mkv":  true,
	".m4v":  true,
}

// videoMIMETypes maps container extensions to the MIME type the model
// should receive. Resolution is independent of the accept check because
// declared types for these containers are unreliable or empty.
var videoMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".m4v":  "video/x-m4v",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",
}

// ErrNotVideo is returned for files that pass neither the MIME-prefix nor
// the extension check. The message is shown to the user as-is.
var ErrNotVideo = errors.New("O arquivo selecionado não parece ser um vídeo válido (MP4, MOV, etc).")

// Validate accepts a file when its declared type has a video/ prefix or
// its extension is whitelisted, and its size is within the upload ceiling.
// Rejections never reach the network.
func Validate(name string, size int64, declaredType string) error {
	isVideoType := strings.HasPrefix(declaredType, "video/")
	isVideoExt := acceptedExts[strings.ToLower(filepath.Ext(name))]
	if !isVideoType && !isVideoExt {
		return ErrNotVideo
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("O arquivo é muito grande (%.1fMB). O limite é 150MB.", float64(size)/(1024*1024))
	}
	return nil
}

// ResolveMIMEType picks the MIME type for the outbound request: extension
// table first, then the declared type, then a hardcoded default. The
// result is never empty.
func ResolveMIMEType(name, declaredType string) string {
	if mimeType, ok := videoMIMETypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mimeType
	}
	if declaredType != "" {
		return declaredType
	}
	return defaultMIMEType
}

// NewAsset validates the selected file and builds the in-memory asset with
// its resolved media type.
func NewAsset(name, declaredType string, data []byte) (*models.MediaAsset, error) {
	if err := Validate(name, int64(len(data)), declaredType); err != nil {
		return nil, err
	}
	return &models.MediaAsset{
		Name:         name,
		Size:         int64(len(data)),
		DeclaredType: declaredType,
		ResolvedType: ResolveMIMEType(name, declaredType),
		Data:         data,
	}, nil
}

// Payload is the base64 form of a video's bytes, suitable for a
// text-oriented request channel. Decoding it reproduces the original
// bytes exactly.
type Payload string

// Encode produces the payload for a byte buffer. Pure function: the same
// bytes always yield the same payload.
func Encode(data []byte) Payload {
	return Payload(base64.StdEncoding.EncodeToString(data))
}

// Decode reverses Encode.
func (p Payload) Decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(string(p))
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return data, nil
}

// NormalizePayload strips a data-URI prefix ("data:video/mp4;base64,...")
// when present. Browser FileReader output arrives in that form; only the
// binary payload after the comma is wanted.
func NormalizePayload(s string) Payload {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	return Payload(s)
}
