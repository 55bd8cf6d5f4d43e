package models

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/common"
)

type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageRemote
	ImageInline
)

func (k ImageKind) String() string {
	switch k {
	case ImageRemote:
		return "remote"
	case ImageInline:
		return "inline"
	default:
		return "none"
	}
}

// ImageRef is a decoded image reference: either a remote URL or an inline
// data URI payload.
type ImageRef struct {
	Kind ImageKind
	URL  string
	MIME string
	Data []byte
}

// ParseImageRef classifies s. Empty or nil input yields ImageNone.
func ParseImageRef(s *string) (ImageRef, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ImageRef{Kind: ImageNone}, nil
	}
	v := strings.TrimSpace(*s)

	if rest, ok := strings.CutPrefix(v, "data:"); ok {
		meta, payload, ok := strings.Cut(rest, ",")
		if !ok {
			return ImageRef{}, fmt.Errorf("%w: missing payload", common.ErrNotImageRef)
		}
		mime, isBase64 := strings.CutSuffix(meta, ";base64")
		if !isBase64 {
			return ImageRef{}, fmt.Errorf("%w: only base64 data URIs are supported", common.ErrNotImageRef)
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return ImageRef{}, fmt.Errorf("%w: %v", common.ErrNotImageRef, err)
		}
		return ImageRef{Kind: ImageInline, MIME: mime, Data: data}, nil
	}

	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ImageRef{}, fmt.Errorf("%w: %q", common.ErrNotImageRef, v)
	}
	return ImageRef{Kind: ImageRemote, URL: v}, nil
}

// Describe returns a one-line text rendering of the reference.
func (r ImageRef) Describe() string {
	switch r.Kind {
	case ImageRemote:
		return r.URL
	case ImageInline:
		return fmt.Sprintf("inline %s, %d bytes", r.MIME, len(r.Data))
	default:
		return "no image"
	}
}

// EncodeImage builds a base64 data URI from raw image bytes.
func EncodeImage(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: content type %s", common.ErrNotImageRef, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeImageFile reads path and returns it as a data URI.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return EncodeImage(data)
}
