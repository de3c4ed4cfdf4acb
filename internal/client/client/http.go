package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/dmitrijs2005/snipkeeper/internal/common"
)

type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL
// (for example http://127.0.0.1:5000/api).
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.accessToken = token
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", common.AuthScheme+" "+c.accessToken)
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out (when out is non-nil).
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/test", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", credentials{username, password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token. The token is not stored
// on the client; call SetToken to use it.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var out struct {
		AccessToken string      `json:"accessToken"`
		User        models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/users/login", credentials{username, password}, &out); err != nil {
		return "", nil, err
	}
	if out.AccessToken == "" {
		return "", nil, errors.New("login response has no token")
	}
	return out.AccessToken, &out.User, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/user/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile sends a multipart form with the display name and, when
// present, the avatar file.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if upd.DisplayName != "" {
		if err := mw.WriteField("displayName", upd.DisplayName); err != nil {
			return nil, err
		}
	}
	if len(upd.Avatar) > 0 {
		name := upd.AvatarName
		if name == "" {
			name = "avatar"
		}
		fw, err := mw.CreateFormFile("profilePicture", name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(upd.Avatar); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/user/profile", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListSnippets(ctx context.Context) ([]models.Snippet, error) {
	out := make([]models.Snippet, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/snippets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateSnippet(ctx context.Context, s models.NewSnippet) (*models.Snippet, error) {
	var out models.Snippet
	if err := c.doJSON(ctx, http.MethodPost, "/snippets", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateSnippet(ctx context.Context, id string, ch models.SnippetChanges) (*models.Snippet, error) {
	var out models.Snippet
	if err := c.doJSON(ctx, http.MethodPut, "/snippets/"+url.PathEscape(id), ch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteSnippet(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/snippets/"+url.PathEscape(id), nil, nil)
}
