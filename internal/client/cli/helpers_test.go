package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/snipkeeper/internal/client/client"
	"github.com/dmitrijs2005/snipkeeper/internal/client/config"
	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/dmitrijs2005/snipkeeper/internal/client/session"
	"github.com/stretchr/testify/require"
)

// fakeAPI records calls and answers from its fields.
type fakeAPI struct {
	token string

	user     models.User
	snippets []models.Snippet
	err      error

	registered  []string
	loggedIn    []string
	created     []models.NewSnippet
	updatedID   string
	changes     models.SnippetChanges
	deleted     []string
	profileUpds []models.ProfileUpdate
	tokensSeen  []string
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) seen() { f.tokensSeen = append(f.tokensSeen, f.token) }

func (f *fakeAPI) Ping(context.Context) (string, error) {
	return "Success! The backend is running.", f.err
}

func (f *fakeAPI) Register(_ context.Context, username, password string) (*models.User, error) {
	f.registered = append(f.registered, username+":"+password)
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "u1", Username: username}, nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (string, *models.User, error) {
	f.loggedIn = append(f.loggedIn, username+":"+password)
	if f.err != nil {
		return "", nil, f.err
	}
	u := f.user
	u.Username = username
	return "tok-" + username, &u, nil
}

func (f *fakeAPI) Profile(context.Context) (*models.User, error) {
	f.seen()
	if f.err != nil {
		return nil, f.err
	}
	u := f.user
	return &u, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.seen()
	f.profileUpds = append(f.profileUpds, upd)
	if f.err != nil {
		return nil, f.err
	}
	u := f.user
	if upd.DisplayName != "" {
		u.DisplayName = upd.DisplayName
	}
	if len(upd.Avatar) > 0 {
		u.HasAvatar = true
	}
	return &u, nil
}

func (f *fakeAPI) ListSnippets(context.Context) ([]models.Snippet, error) {
	f.seen()
	return f.snippets, f.err
}

func (f *fakeAPI) CreateSnippet(_ context.Context, s models.NewSnippet) (*models.Snippet, error) {
	f.seen()
	f.created = append(f.created, s)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Snippet{ID: "s-new", Title: s.Title, Language: s.Language, Code: s.Code}, nil
}

func (f *fakeAPI) UpdateSnippet(_ context.Context, id string, ch models.SnippetChanges) (*models.Snippet, error) {
	f.seen()
	f.updatedID, f.changes = id, ch
	if f.err != nil {
		return nil, f.err
	}
	return &models.Snippet{ID: id}, nil
}

func (f *fakeAPI) DeleteSnippet(_ context.Context, id string) error {
	f.seen()
	f.deleted = append(f.deleted, id)
	return f.err
}

type harness struct {
	api         *fakeAPI
	sessionFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:         &fakeAPI{user: models.User{ID: "u1", Username: "alice"}},
		sessionFile: filepath.Join(t.TempDir(), "snipctl", "session.json"),
	}

	t.Setenv("SNIPCTL_SESSION_FILE", h.sessionFile)
	t.Setenv("SNIPCTL_SERVER_URL", "http://snip.test/api")

	origClient, origTerm := newAPIClient, isTerminal
	newAPIClient = func(*config.Config) (client.Client, error) { return h.api, nil }
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() {
		newAPIClient = origClient
		isTerminal = origTerm
	})
	return h
}

// run executes snipctl with args, feeding input as stdin.
func (h *harness) run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(strings.NewReader(input), &out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, session.NewStore(h.sessionFile).Save(&models.Session{
		ServerURL:   "http://snip.test/api",
		AccessToken: "tok-alice",
		User:        models.User{ID: "u1", Username: "alice"},
	}))
}

func (h *harness) session(t *testing.T) (*models.Session, error) {
	t.Helper()
	return session.NewStore(h.sessionFile).Load()
}
