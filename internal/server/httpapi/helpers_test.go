package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/logging"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/snipkeeper/internal/server/config"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

type testEnv struct {
	srv    *Server
	tokens *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AvatarMaxBytes = 1024

	m := repomanager.NewInMemoryRepositoryManager()
	tokens := auth.NewTokenIssuer([]byte(cfg.SecretKey), time.Hour)
	us := services.NewUserService(m, tokens, auth.NewPasswordHasher(bcrypt.MinCost), avatars.NewDBStore())
	ss := services.NewSnippetService(m)

	srv := NewServer(cfg, logging.Nop{}, us, ss, tokens, prometheus.NewRegistry())
	return &testEnv{srv: srv, tokens: tokens}
}

// do sends a JSON request (body may be nil) and returns status and raw body.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

// registerAndLogin creates a user and returns its id and access token.
func (e *testEnv) registerAndLogin(t *testing.T, username, password string) (string, string) {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/users", credentialsRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = e.do(t, http.MethodPost, "/api/users/login", credentialsRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, status, string(body))
	res := decode[loginResponse](t, body)
	return res.User.ID, res.AccessToken
}

// multipartRequest builds a PUT /api/user/profile request.
func multipartRequest(t *testing.T, token, displayName string, file []byte, fileMime string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if displayName != "" {
		require.NoError(t, w.WriteField("displayName", displayName))
	}
	if file != nil {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="profilePicture"; filename="pic"`}
		if fileMime != "" {
			h["Content-Type"] = []string{fileMime}
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/user/profile", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
