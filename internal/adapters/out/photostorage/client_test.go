package photostorage_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dispatch/internal/adapters/out/photostorage"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	var (
		gotPath        string
		gotAuth        string
		gotContentType string
		gotBody        []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := photostorage.NewClient(photostorage.Config{
		Endpoint:      server.URL,
		Bucket:        "pod",
		Token:         "secret",
		PublicBaseURL: "https://cdn.example.com/",
	}, server.Client())

	url, err := client.Upload(t.Context(), "p1", "image/jpeg", []byte("jpeg-bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPath, "/pod/deliveries/p1/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ".jpg"), gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, []byte("jpeg-bytes"), gotBody)
	assert.Equal(t, "https://cdn.example.com"+gotPath, url)
}

func TestClient_UploadDefaultsPublicURLToEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := photostorage.NewClient(photostorage.Config{Endpoint: server.URL, Bucket: "pod"}, nil)

	url, err := client.Upload(t.Context(), "p1", "image/png; charset=binary", []byte("png"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, server.URL+"/pod/deliveries/p1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestClient_UploadFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))
	defer server.Close()

	client := photostorage.NewClient(photostorage.Config{Endpoint: server.URL, Bucket: "pod"}, server.Client())

	t.Run("non-2xx is store unavailable", func(t *testing.T) {
		_, err := client.Upload(t.Context(), "p1", "image/jpeg", []byte("x"))
		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("unsupported content type", func(t *testing.T) {
		_, err := client.Upload(t.Context(), "p1", "application/pdf", []byte("x"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty photo", func(t *testing.T) {
		_, err := client.Upload(t.Context(), "p1", "image/jpeg", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("oversized photo", func(t *testing.T) {
		_, err := client.Upload(t.Context(), "p1", "image/jpeg", make([]byte, photostorage.MaxPhotoSize+1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("blank parcel id", func(t *testing.T) {
		_, err := client.Upload(t.Context(), "", "image/jpeg", []byte("x"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestClient_UploadUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := photostorage.NewClient(photostorage.Config{Endpoint: endpoint, Bucket: "pod"}, nil)

	_, err := client.Upload(t.Context(), "p1", "image/jpeg", []byte("x"))
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
}
