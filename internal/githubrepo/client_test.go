package githubrepo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a stub API server.
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	api := github.NewClient(nil)

	baseURL, err := url.Parse(serverURL + "/")
	require.NoError(t, err)

	api.BaseURL = baseURL

	return &Client{
		api:     api,
		limiter: NewRateLimiter(defaultMaxRequests, defaultWindow),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClientTreeFetchesNoBlobs(t *testing.T) {
	t.Parallel()

	var blobCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/widgets":
			_, _ = fmt.Fprint(w, `{"full_name":"acme/widgets","default_branch":"main","size":10}`)
		case "/repos/acme/widgets/git/trees/main":
			_, _ = fmt.Fprint(w, `{"sha":"tree-abc","tree":[{"path":"src/app.py","type":"blob","size":40,"sha":"blob-1"}]}`)
		case "/repos/acme/widgets/git/blobs/blob-1":
			blobCalls.Add(1)

			_, _ = fmt.Fprint(w, "def main():\n    pass\n")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	tree, err := client.Tree(context.Background(), "acme", "widgets")
	require.NoError(t, err)
	assert.Equal(t, "tree-abc", tree.SHA)
	assert.Zero(t, blobCalls.Load(), "tree fetch must not download blob content")

	files, err := client.Download(context.Background(), "acme", "widgets", tree)
	require.NoError(t, err)
	assert.EqualValues(t, 1, blobCalls.Load())
	assert.Equal(t, "def main():\n    pass\n", files["src/app.py"])
}

func TestClientDownloadSkipsVendoredEntries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/widgets":
			_, _ = fmt.Fprint(w, `{"full_name":"acme/widgets","default_branch":"main","size":10}`)
		case "/repos/acme/widgets/git/trees/main":
			_, _ = fmt.Fprint(w, `{"sha":"tree-def","tree":[`+
				`{"path":"node_modules/x/index.js","type":"blob","size":40,"sha":"blob-1"},`+
				`{"path":"lib","type":"tree","sha":"tree-sub"},`+
				`{"path":"lib/core.rb","type":"blob","size":30,"sha":"blob-2"}]}`)
		case "/repos/acme/widgets/git/blobs/blob-2":
			_, _ = fmt.Fprint(w, "module Core\nend\n")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	tree, err := client.Tree(context.Background(), "acme", "widgets")
	require.NoError(t, err)

	files, err := client.Download(context.Background(), "acme", "widgets", tree)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files, "lib/core.rb")
}

func TestClientTreeMapsNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Tree(context.Background(), "acme", "missing")
	require.ErrorIs(t, err, ErrRepoNotFound)
}

func TestClientTreeHonorsContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := client.Tree(ctx, "acme", "widgets")
	require.Error(t, err)
}
