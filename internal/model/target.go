package model

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
)

// ImageName is the display name used for screenshot scans.
const ImageName = "Image Analysis"

// ImageRef is an opaque reference to an uploaded screenshot. The blob itself
// is never interpreted here; it is handed to the analysis collaborator as is.
type ImageRef struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	// Digest is the hex sha256 of the uploaded bytes.
	Digest string `json:"digest,omitempty"`
}

// Target is the subject of an analysis run: a URL or an image, never both.
type Target struct {
	URL   string    `json:"url,omitempty"`
	Image *ImageRef `json:"image,omitempty"`
}

// NewTarget builds a Target from raw user input. An attached image takes
// precedence and the URL is dropped.
func NewTarget(rawURL string, image *ImageRef) Target {
	if image != nil {
		img := *image
		return Target{Image: &img}
	}
	return Target{URL: strings.TrimSpace(rawURL)}
}

// IsImage reports whether the target is an uploaded screenshot.
func (t Target) IsImage() bool { return t.Image != nil }

// IsEmpty reports whether neither a URL nor an image is set.
func (t Target) IsEmpty() bool { return t.Image == nil && t.URL == "" }

// DisplayName is the URL, or ImageName for screenshots.
func (t Target) DisplayName() string {
	if t.IsImage() || t.URL == "" {
		return ImageName
	}
	return t.URL
}

// Clone returns a copy that shares no pointers with t.
func (t Target) Clone() Target {
	if t.Image == nil {
		return t
	}
	img := *t.Image
	return Target{URL: t.URL, Image: &img}
}

// NewImageRef digests r into an ImageRef. The bytes themselves are not kept.
// It returns nil for an empty stream.
func NewImageRef(name, contentType string, r io.Reader) (*ImageRef, error) {
	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if name == "" {
		name = ImageName
	}
	return &ImageRef{
		Name:        name,
		ContentType: contentType,
		Size:        n,
		Digest:      hex.EncodeToString(h.Sum(nil)),
	}, nil
}
