package siteconfig

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/docsauth/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enabledDoc = `{"features":{"auth":{"enabled":true,"provider":"password"}}}`

type countingSource struct {
	calls atomic.Int32
	data  []byte
	err   error
}

func (s *countingSource) Fetch(context.Context) ([]byte, error) {
	s.calls.Add(1)
	return s.data, s.err
}

func (s *countingSource) String() string { return "counting" }

func TestLoader_FetchesOnce(t *testing.T) {
	src := &countingSource{data: []byte(enabledDoc)}
	l := NewLoader(src)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := l.Load(context.Background())
			assert.NoError(t, err)
			assert.True(t, cfg.PasswordGuarded())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLoader_CachesFailure(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	l := NewLoader(src)

	_, err1 := l.Load(context.Background())
	_, err2 := l.Load(context.Background())

	assert.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-config.json")
	require.NoError(t, os.WriteFile(path, []byte(enabledDoc), 0o600))

	cfg, err := NewLoader(&FileSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.PasswordGuarded())

	_, err = NewLoader(&FileSource{Path: path + ".missing"}).Load(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config/app-config.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(enabledDoc))
	}))
	defer ts.Close()

	cfg, err := NewLoader(&HTTPSource{URL: ts.URL + "/config/app-config.json", Client: ts.Client()}).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.PasswordGuarded())

	_, err = NewLoader(&HTTPSource{URL: ts.URL + "/nope", Client: ts.Client()}).Load(context.Background())
	assert.Error(t, err)
}

type fakeS3 struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket, f.key = *in.Bucket, *in.Key
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Source(t *testing.T) {
	api := &fakeS3{body: []byte(enabledDoc)}
	src := &S3Source{Bucket: "docs", Key: "config/app-config.json", API: api}

	cfg, err := NewLoader(src).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.PasswordGuarded())
	assert.Equal(t, "docs", api.bucket)
	assert.Equal(t, "config/app-config.json", api.key)
	assert.Equal(t, "s3://docs/config/app-config.json", src.String())

	_, err = NewLoader(&S3Source{Bucket: "b", Key: "k", API: &fakeS3{err: errors.New("denied")}}).Load(context.Background())
	assert.Error(t, err)
}

func TestParseS3Location(t *testing.T) {
	tests := []struct {
		in      string
		bucket  string
		key     string
		wantErr bool
	}{
		{in: "s3://docs/app-config.json", bucket: "docs", key: "app-config.json"},
		{in: "s3://docs/a/b/c.json", bucket: "docs", key: "a/b/c.json"},
		{in: "s3://docs", wantErr: true},
		{in: "s3:///key", wantErr: true},
		{in: "https://docs/key", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, err := ParseS3Location(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestNewSource(t *testing.T) {
	base := func(loc string) *config.Config {
		c := &config.Config{}
		c.LoadDefaults()
		c.SiteConfigSource = loc
		c.S3AccessKey = "user"
		c.S3SecretKey = "password"
		c.S3BaseEndpoint = "http://127.0.0.1:9000"
		return c
	}
	ctx := context.Background()

	src, err := NewSource(ctx, base("config/app-config.json"), http.DefaultClient)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	src, err = NewSource(ctx, base("file:///etc/app-config.json"), http.DefaultClient)
	require.NoError(t, err)
	assert.Equal(t, "/etc/app-config.json", src.String())

	src, err = NewSource(ctx, base("https://docs.example.com/config/app-config.json"), http.DefaultClient)
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	src, err = NewSource(ctx, base("s3://docs/app-config.json"), http.DefaultClient)
	require.NoError(t, err)
	assert.IsType(t, &S3Source{}, src)

	_, err = NewSource(ctx, base("s3://docs"), http.DefaultClient)
	assert.Error(t, err)

	_, err = NewSource(ctx, base(" "), http.DefaultClient)
	assert.Error(t, err)
}
