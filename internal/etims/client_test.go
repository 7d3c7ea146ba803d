package etims

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors t.Chdir (Go 1.24+), which is unavailable on this toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

// newTestClient points a client at an httptest server with auth configured.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&Config{
		ETIMSURL:        server.URL,
		APIKey:          "key123456",
		APISecret:       "secret",
		NginxCookieName: "auth_cookie",
		Company:         "Savanna Traders Ltd",
		Brand:           "eTims CLI",
	})
	client.ActiveURL = server.URL
	client.Mode = "vpn"
	return client
}

func writeDoc(t *testing.T, w http.ResponseWriter, doc map[string]interface{}) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": doc}))
}

// methodRecorder captures /api/method calls and serves /api/resource docs.
type methodRecorder struct {
	t    *testing.T
	docs map[string]map[string]interface{} // resource path -> doc

	calls []methodCall
	reply map[string]interface{}
}

type methodCall struct {
	method string
	args   map[string]interface{}
}

func (h *methodRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if doc, ok := h.docs[r.URL.Path]; ok {
		writeDoc(h.t, w, doc)
		return
	}

	require.Equal(h.t, http.MethodPost, r.Method, "unexpected request to %s", r.URL.Path)
	require.Contains(h.t, r.URL.Path, "/api/method/", "unexpected request to %s", r.URL.Path)

	var args map[string]interface{}
	require.NoError(h.t, json.NewDecoder(r.Body).Decode(&args))

	h.calls = append(h.calls, methodCall{
		method: r.URL.Path[len("/api/method/"):],
		args:   args,
	})

	reply := h.reply
	if reply == nil {
		reply = map[string]interface{}{"message": nil}
	}
	json.NewEncoder(w).Encode(reply)
}

// requestDataOf decodes the request_data argument of a recorded call.
func requestDataOf(t *testing.T, call methodCall) map[string]interface{} {
	t.Helper()

	encoded, ok := call.args["request_data"].(string)
	require.True(t, ok, "request_data must be a JSON string, got %T", call.args["request_data"])

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &payload))
	return payload
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, ".etims-config")
	require.NoError(t, os.WriteFile(configFile, []byte(`
ETIMS_URL=https://erp.example.co.ke
ETIMS_API_KEY=abc
ETIMS_API_SECRET=def
ETIMS_COMPANY=Savanna Traders Ltd
`), 0o600))
	chdir(t, dir)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.co.ke", config.ETIMSURL)
	assert.Equal(t, "abc", config.APIKey)
	assert.Equal(t, "def", config.APISecret)
	assert.Equal(t, "Savanna Traders Ltd", config.Company)
	// Defaults
	assert.Equal(t, "auth_cookie", config.NginxCookieName)
	assert.Equal(t, "eTims CLI", config.Brand)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, ".etims-config")
	require.NoError(t, os.WriteFile(configFile, []byte(`
ETIMS_URL=https://erp.example.co.ke
ETIMS_API_KEY=abc
ETIMS_API_SECRET=def
ETIMS_COMPANY=File Co
`), 0o600))
	chdir(t, dir)
	t.Setenv("ETIMS_COMPANY", "Env Co")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Env Co", config.Company)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ETIMS_URL")
}

func TestRequestSetsAuthHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeDoc(t, w, map[string]interface{}{"name": "X"})
	}))

	_, err := client.Request("GET", "Item/X", nil)
	require.NoError(t, err)
	assert.Equal(t, "token key123456:secret", gotAuth)
}

func TestRequestSurfacesException(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"exception": "DoesNotExistError"})
	}))

	_, err := client.Request("GET", "Item/missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DoesNotExistError")
}

// Business errors in a method response belong to the server; the client only
// fails on HTTP-level problems.
func TestCallMethodDefersBusinessErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"exception":        "ValidationError: branch not active",
			"_server_messages": "[\"...\"]",
		})
	}))

	_, err := client.CallMethod(MethodSearchBranchRequest, map[string]interface{}{"request_data": "{}"})
	assert.NoError(t, err)
}

func TestCallMethodFailsOnHTTPError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.CallMethod(MethodSearchBranchRequest, map[string]interface{}{"request_data": "{}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCallMethodPostsToMethodPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"message": nil})
	}))

	_, err := client.CallMethod(MethodCreateBranchUser, map[string]interface{}{"request_data": "{}"})
	require.NoError(t, err)
	assert.Equal(t, "/api/method/"+MethodCreateBranchUser, gotPath)
}
