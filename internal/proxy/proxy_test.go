package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path        string
	body        string
	contentType string
}

func newBackend(t *testing.T, status int, reply string) (*httptest.Server, chan recorded) {
	t.Helper()
	calls := make(chan recorded, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls <- recorded{path: r.URL.Path, body: string(b), contentType: r.Header.Get("Content-Type")}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newProxy(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()
	p, err := New(backendURL, 0, []string{"*"}, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(p.Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestForwardsBodyVerbatim(t *testing.T) {
	backend, calls := newBackend(t, http.StatusOK, `{"questions":[{"id":"base-0","text":"Q?","category":"technical"}]}`)
	proxy := newProxy(t, backend.URL+"/")

	body := `{"jobCategory":"Software Engineering","jobSkill":"Backend Development","extra":[1,2]}`
	status, out := post(t, proxy.URL+"/api/interview/start", body)

	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, out["questions"], 1)
	require.Len(t, calls, 1)
	got := <-calls
	assert.Equal(t, "/api/interview/start", got.path)
	assert.Equal(t, body, got.body)
	assert.Equal(t, "application/json", got.contentType)
}

func TestFailuresBecomeGeneric500(t *testing.T) {
	tests := []struct {
		name   string
		route  string
		status int
		reply  string
		body   string
		want   string
	}{
		{"backend error", "start", http.StatusBadGateway, `{"error":"upstream"}`, `{}`, "Failed to start interview session"},
		{"backend not json", "response", http.StatusOK, `not json`, `{}`, "Failed to process response"},
		{"request not json", "feedback", http.StatusOK, `{}`, `{oops`, "Failed to generate feedback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, _ := newBackend(t, tt.status, tt.reply)
			proxy := newProxy(t, backend.URL)

			status, out := post(t, proxy.URL+"/api/interview/"+tt.route, tt.body)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, map[string]interface{}{"error": tt.want}, out)
		})
	}
}

func TestBackendUnreachable(t *testing.T) {
	backend, _ := newBackend(t, http.StatusOK, `{}`)
	url := backend.URL
	backend.Close()

	proxy := newProxy(t, url)
	status, out := post(t, proxy.URL+"/api/interview/feedback", `{"responses":[]}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to generate feedback", out["error"])
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("localhost:3000", 0, nil, nil)
	assert.Error(t, err)
}
