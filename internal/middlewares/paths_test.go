package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/login", true},
		{"/signup", true},
		{"/dashboard", false},
		{"/settings", false},
		{"/login/", false},
		{"/login/reset", false},
		{"/LOGIN", false},
		{"", false},
		{"/signup?ref=x", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPublicPath(tt.path))
		})
	}
}

func TestSkipGate(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/assets/app.js", true},
		{"/static/css/site.css", true},
		{"/images/avatars/1.webp", true},
		{"/api/auth/status", true},
		{"/api/", true},
		{"/favicon.ico", true},
		{"/logo.png", true},
		{"/photo.jpeg", true},
		{"/banner.svg", true},
		{"/", false},
		{"/login", false},
		{"/dashboard", false},
		{"/apiary", false},
		{"/assets", false},
		{"/pngfile", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, SkipGate(tt.path))
		})
	}
}
