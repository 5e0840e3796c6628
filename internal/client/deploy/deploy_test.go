package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		basePath string
		want     Context
		wantErr  bool
	}{
		{name: "root", baseURL: "http://localhost:3000", want: Context{BaseURL: "http://localhost:3000"}},
		{name: "trailing slash", baseURL: "https://docs.example.com/", basePath: "/api-docs/",
			want: Context{BaseURL: "https://docs.example.com", BasePath: "/api-docs"}},
		{name: "path without slash", baseURL: "https://docs.example.com", basePath: "v2",
			want: Context{BaseURL: "https://docs.example.com", BasePath: "/v2"}},
		{name: "slash only", baseURL: "https://docs.example.com", basePath: "/",
			want: Context{BaseURL: "https://docs.example.com"}},
		{name: "bad scheme", baseURL: "ftp://docs.example.com", wantErr: true},
		{name: "no host", baseURL: "http://", wantErr: true},
		{name: "garbage", baseURL: "::", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.baseURL, tt.basePath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURLs(t *testing.T) {
	c, err := New("https://docs.example.com", "/api-docs")
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com/api-docs/", c.RootURL())
	assert.Equal(t, "https://docs.example.com/api-docs/login.html", c.LoginURL("/login.html"))
	assert.Equal(t, "https://docs.example.com/api-docs/guide/intro", c.URL("guide/intro"))
	assert.Equal(t, "/api-docs/login.html", c.Path("/login.html"))

	root, err := New("http://localhost:3000", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/", root.RootURL())
	assert.Equal(t, "http://localhost:3000/login.html", root.LoginURL("login.html"))
}

func TestIsLoginPage(t *testing.T) {
	c, err := New("https://docs.example.com", "/api-docs")
	require.NoError(t, err)

	assert.True(t, c.IsLoginPage("/api-docs/login.html", "/login.html"))
	assert.True(t, c.IsLoginPage("login.html", "/login.html"))
	assert.False(t, c.IsLoginPage("/api-docs/guide", "/login.html"))
}
