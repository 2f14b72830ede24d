package cmd

import "testing"

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "simple path",
			url:      "https://cdn.example.com/report.pdf",
			expected: "report.pdf",
		},
		{
			name:     "nested path",
			url:      "https://cdn.example.com/a/b/c/image.png",
			expected: "image.png",
		},
		{
			name:     "no path falls back",
			url:      "https://cdn.example.com",
			expected: "attachment",
		},
		{
			name:     "root path falls back",
			url:      "https://cdn.example.com/",
			expected: "attachment",
		},
		{
			name:     "query string ignored",
			url:      "https://cdn.example.com/file.txt?token=abc",
			expected: "file.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filenameFromURL(tt.url); got != tt.expected {
				t.Errorf("filenameFromURL(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
