package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra/github"
	"github.com/secmon-lab/ecocoder/pkg/utils/testutil"
)

var testRepo = model.RepositoryRef{Owner: "eco", Name: "sample", Ref: "main"}

func newTestClient(t *testing.T, mux *http.ServeMux) *github.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return gt.R1(github.New(
		github.WithToken("test-token"),
		github.WithBaseURL(srv.URL+"/"),
		github.WithRetry(3, 0),
	)).NoError(t)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	gt.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew(t *testing.T) {
	t.Run("missing credential is authentication error", func(t *testing.T) {
		_, err := github.New()
		gt.True(t, errors.Is(err, types.ErrAuthentication))
	})

	t.Run("app without install ID", func(t *testing.T) {
		_, err := github.New(github.WithApp(1234, 0, "pem"))
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("app with invalid private key", func(t *testing.T) {
		_, err := github.New(github.WithApp(1234, 5678, "invalid-key"))
		gt.True(t, errors.Is(err, types.ErrAuthentication))
	})

	t.Run("token", func(t *testing.T) {
		gt.R1(github.New(github.WithToken("ghp_xxx"))).NoError(t)
	})
}

func TestGetRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/eco/sample", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.Header.Get("Authorization")).Equal("Bearer test-token")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"name":           "sample",
			"owner":          map[string]any{"login": "eco"},
			"default_branch": "develop",
			"private":        true,
		})
	})
	client := newTestClient(t, mux)

	repo := gt.R1(client.GetRepository(context.Background(), "eco", "sample")).NoError(t)
	gt.V(t, repo.DefaultBranch).Equal("develop")
	gt.V(t, repo.Owner).Equal("eco")
	gt.True(t, repo.Private)
}

func TestResolveCommit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/eco/sample/commits/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789abcdef0123456789abcdef01234567"))
	})
	client := newTestClient(t, mux)

	sha := gt.R1(client.ResolveCommit(context.Background(), testRepo)).NoError(t)
	gt.V(t, sha).Equal(types.CommitSHA("0123456789abcdef0123456789abcdef01234567"))
}

func TestResolveCommitUnknownSHA(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/eco/sample/commits/{ref}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"message": "No commit found for SHA: " + r.PathValue("ref")})
	})
	client := newTestClient(t, mux)

	_, err := client.ResolveCommit(context.Background(), model.RepositoryRef{Owner: "eco", Name: "sample", Ref: "nope"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

func TestListTree(t *testing.T) {
	t.Run("complete tree", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /repos/eco/sample/git/trees/{sha}", func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.URL.Query().Get("recursive")).Equal("1")
			writeJSON(t, w, http.StatusOK, map[string]any{
				"sha": "root",
				"tree": []map[string]any{
					{"path": "z.go", "type": "blob", "sha": "b2", "size": 10},
					{"path": "pkg", "type": "tree", "sha": "t1"},
					{"path": "pkg/a.go", "type": "blob", "sha": "b1", "size": 20},
				},
				"truncated": false,
			})
		})
		client := newTestClient(t, mux)

		entries := gt.R1(client.ListTree(context.Background(), testRepo, "root")).NoError(t)
		gt.V(t, len(entries)).Equal(3)
		gt.V(t, entries[0].Path).Equal("pkg")
		gt.V(t, entries[1].Path).Equal("pkg/a.go")
		gt.V(t, entries[1].Size).Equal(int64(20))
		gt.V(t, entries[2].Path).Equal("z.go")
	})

	t.Run("truncated tree is completed by walking sub trees", func(t *testing.T) {
		var calls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("GET /repos/eco/sample/git/trees/{sha}", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			recursive := r.URL.Query().Get("recursive") == "1"
			switch sha := r.PathValue("sha"); {
			case sha == "root" && recursive:
				writeJSON(t, w, http.StatusOK, map[string]any{
					"sha":       "root",
					"tree":      []map[string]any{{"path": "main.go", "type": "blob", "sha": "b0"}},
					"truncated": true,
				})
			case sha == "root":
				writeJSON(t, w, http.StatusOK, map[string]any{
					"sha": "root",
					"tree": []map[string]any{
						{"path": "main.go", "type": "blob", "sha": "b0"},
						{"path": "pkg", "type": "tree", "sha": "t1"},
					},
				})
			case sha == "t1":
				writeJSON(t, w, http.StatusOK, map[string]any{
					"sha": "t1",
					"tree": []map[string]any{
						{"path": "deep", "type": "tree", "sha": "t2"},
						{"path": "util.go", "type": "blob", "sha": "b1"},
					},
				})
			case sha == "t2":
				writeJSON(t, w, http.StatusOK, map[string]any{
					"sha":  "t2",
					"tree": []map[string]any{{"path": "x.py", "type": "blob", "sha": "b2"}},
				})
			default:
				writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			}
		})
		client := newTestClient(t, mux)

		entries := gt.R1(client.ListTree(context.Background(), testRepo, "root")).NoError(t)
		var paths []string
		for _, e := range entries {
			if e.Type == model.TreeEntryBlob {
				paths = append(paths, e.Path)
			}
		}
		gt.V(t, paths).Equal([]string{"main.go", "pkg/deep/x.py", "pkg/util.go"})
		gt.V(t, calls.Load()).Equal(int32(4))
	})
}

func TestGetBlob(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/eco/sample/git/blobs/b1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("package main\n"))
	})
	client := newTestClient(t, mux)

	data := gt.R1(client.GetBlob(context.Background(), testRepo, "b1")).NoError(t)
	gt.V(t, string(data)).Equal("package main\n")
}

func TestGetArchiveURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/eco/sample/zipball/main", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://codeload.example.com/eco/sample/zip/main")
		w.WriteHeader(http.StatusFound)
	})
	client := newTestClient(t, mux)

	u := gt.R1(client.GetArchiveURL(context.Background(), testRepo)).NoError(t)
	gt.V(t, u.Host).Equal("codeload.example.com")
}

func TestErrorMapping(t *testing.T) {
	testCases := map[string]struct {
		handler   http.HandlerFunc
		want      error
		wantCalls int32
	}{
		"not found": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			},
			want:      types.ErrNotFound,
			wantCalls: 1,
		},
		"unknown commit": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"message": "No commit found for SHA: nope"})
			},
			want:      types.ErrNotFound,
			wantCalls: 1,
		},
		"other unprocessable entity": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"message": "Validation Failed"})
			},
			want:      nil,
			wantCalls: 1,
		},
		"unauthorized": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "Bad credentials"})
			},
			want:      types.ErrAuthentication,
			wantCalls: 1,
		},
		"rate limit": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Limit", "60")
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
				writeJSON(t, w, http.StatusForbidden, map[string]any{"message": "API rate limit exceeded"})
			},
			want:      types.ErrRateLimit,
			wantCalls: 1,
		},
		"too many requests": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusTooManyRequests, map[string]any{"message": "slow down"})
			},
			want:      types.ErrRateLimit,
			wantCalls: 1,
		},
		"server error is retried": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadGateway, map[string]any{"message": "upstream"})
			},
			want:      types.ErrNetwork,
			wantCalls: 3,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			mux := http.NewServeMux()
			mux.HandleFunc("GET /repos/eco/sample", func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tc.handler(w, r)
			})
			client := newTestClient(t, mux)

			_, err := client.GetRepository(context.Background(), "eco", "sample")
			gt.Error(t, err)
			if tc.want != nil {
				gt.True(t, errors.Is(err, tc.want))
			} else {
				gt.False(t, errors.Is(err, types.ErrNotFound))
			}
			gt.V(t, calls.Load()).Equal(tc.wantCalls)
		})
	}
}

func TestRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/eco/sample", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(t, w, http.StatusServiceUnavailable, map[string]any{"message": "unavailable"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"name": "sample", "owner": map[string]any{"login": "eco"}})
	})
	client := newTestClient(t, mux)

	repo := gt.R1(client.GetRepository(context.Background(), "eco", "sample")).NoError(t)
	gt.V(t, repo.Name).Equal("sample")
	gt.V(t, calls.Load()).Equal(int32(2))
}

func TestClientIntegration(t *testing.T) {
	token := testutil.GetEnvOrSkip(t, "TEST_GITHUB_TOKEN")
	client := gt.R1(github.New(github.WithToken(types.GitHubToken(token)))).NoError(t)

	ctx := context.Background()
	repo := gt.R1(client.GetRepository(ctx, "octocat", "Hello-World")).NoError(t)
	ref := model.RepositoryRef{Owner: "octocat", Name: "Hello-World", Ref: repo.DefaultBranch}
	sha := gt.R1(client.ResolveCommit(ctx, ref)).NoError(t)
	entries := gt.R1(client.ListTree(ctx, ref, sha)).NoError(t)
	gt.True(t, len(entries) > 0)
}
