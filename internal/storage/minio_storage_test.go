package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantSecure   bool
		wantErr      bool
	}{
		{"minio:9000", "minio:9000", false, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://minio:9000", "minio:9000", true, false},
		{"http://minio:9000/", "minio:9000", false, false},
		{"http://minio:9000/foo", "", false, true},
		{"", "", false, true},
	}

	for _, tt := range tests {
		ep, secure, err := normaliseEndpoint(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.wantEndpoint, ep)
		require.Equal(t, tt.wantSecure, secure)
	}
}

func TestNewMinioStorage_IncompleteConfig(t *testing.T) {
	_, err := NewMinioStorage(context.Background(), MinioOptions{Endpoint: "minio:9000"})
	require.Error(t, err)
}

// Runs against a live server when MINIO_TEST_ENDPOINT is set.
func TestMinioStorage_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_TEST_ENDPOINT not set")
	}
	ctx := context.Background()

	storage, err := NewMinioStorage(ctx, MinioOptions{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_TEST_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_TEST_SECRET_KEY"),
		Bucket:    "filevault-test",
	})
	require.NoError(t, err)

	n, err := storage.Save(ctx, "report.txt", strings.NewReader("quarterly"))
	require.NoError(t, err)
	require.Equal(t, int64(len("quarterly")), n)

	file, err := storage.Load(ctx, "report.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	file.Close()
	require.NoError(t, err)
	require.Equal(t, "quarterly", string(data))

	files, err := storage.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	_, err = storage.Load(ctx, "missing.txt")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = storage.Save(ctx, "../escape.txt", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrInvalidName)
}
