package util

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/slimroms/slimwallpaper/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper implements http.RoundTripper
type MockRoundTripper struct {
	StatusCode int
	Body       string
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: m.StatusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.Body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func TestCheckForUpdates(t *testing.T) {
	originalVersion := config.AppVersion
	defer func() { config.AppVersion = originalVersion }()

	tests := []struct {
		name            string
		currentVersion  string
		responseBody    string
		statusCode      int
		expectUpdate    bool
		expectError     bool
		expectedVersion string
	}{
		{
			name:            "Update Available",
			currentVersion:  "v1.0.0",
			responseBody:    `{"tag_name": "v1.1.0", "html_url": "http://release"}`,
			statusCode:      200,
			expectUpdate:    true,
			expectedVersion: "v1.1.0",
		},
		{
			name:            "No Update Available",
			currentVersion:  "1.1.0",
			responseBody:    `{"tag_name": "v1.1.0", "html_url": "http://release"}`,
			statusCode:      200,
			expectedVersion: "v1.1.0",
		},
		{
			name:            "Newer Local Version",
			currentVersion:  "v2.0.0",
			responseBody:    `{"tag_name": "1.1.0", "html_url": "http://release"}`,
			statusCode:      200,
			expectedVersion: "v1.1.0",
		},
		{
			name:            "Unknown Local Version",
			currentVersion:  "",
			responseBody:    `{"tag_name": "v1.1.0", "html_url": "http://release"}`,
			statusCode:      200,
			expectedVersion: "v1.1.0",
		},
		{
			name:            "Development Build",
			currentVersion:  "dev",
			responseBody:    `{"tag_name": "v1.1.0", "html_url": "http://release"}`,
			statusCode:      200,
			expectedVersion: "v1.1.0",
		},
		{
			name:            "Invalid Release Tag",
			currentVersion:  "v1.0.0",
			responseBody:    `{"tag_name": "nightly", "html_url": "http://release"}`,
			statusCode:      200,
			expectedVersion: "",
		},
		{
			name:           "API Error",
			currentVersion: "v1.0.0",
			responseBody:   `{"message": "Not Found"}`,
			statusCode:     404,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.AppVersion = tt.currentVersion
			client := &http.Client{Transport: &MockRoundTripper{StatusCode: tt.statusCode, Body: tt.responseBody}}

			result, err := CheckForUpdates(context.Background(), client)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectUpdate, result.UpdateAvailable)
			assert.Equal(t, tt.expectedVersion, result.LatestVersion)
		})
	}
}

func TestCanonicalVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", canonicalVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", canonicalVersion("v1.2.3"))
	assert.Equal(t, "", canonicalVersion(""), "Unset build version is unknown")
	assert.Equal(t, "", canonicalVersion("v"))
	assert.Equal(t, "", canonicalVersion("dev"))
}
