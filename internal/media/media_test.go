package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedline/service/internal/media"
)

func TestResolveContentType(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		filename string
		want     string
	}{
		{"stored metadata wins over filename", "image/png", "x.mp4", "image/png"},
		{"mp4 extension", "", "clip.mp4", "video/mp4"},
		{"mp4 substring", "", "render-mp4-final", "video/mp4"},
		{"mov extension", "", "clip.mov", "video/quicktime"},
		{"quicktime substring", "", "some-quicktime-export", "video/quicktime"},
		{"jpg extension", "", "photo.jpg", "image/jpeg"},
		{"jpeg extension", "", "photo.jpeg", "image/jpeg"},
		{"png extension", "", "photo.png", "image/png"},
		{"no extension falls back", "", "noext", "application/octet-stream"},
		{"empty filename falls back", "", "", "application/octet-stream"},
		{"heuristics are case-sensitive", "", "CLIP.MP4", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, media.ResolveContentType(tt.stored, tt.filename))
		})
	}
}
