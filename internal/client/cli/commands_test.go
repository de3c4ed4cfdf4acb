package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/client/client"
	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/dmitrijs2005/snipkeeper/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "ping")
	require.NoError(t, err)
	assert.Equal(t, "Success! The backend is running.\n", out)
}

func TestRegister_PromptsForMissingValues(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "alice\npw\n", "register")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice:pw"}, h.api.registered)
	assert.Contains(t, out, "Registered alice (u1)")

	_, err = h.session(t)
	assert.ErrorIs(t, err, session.ErrNoSession, "register does not log in")
}

func TestRegister_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "\n", "register", "alice")
	assert.EqualError(t, err, "password is required")

	h.api.err = &client.APIError{StatusCode: 409, Message: "Username already taken"}
	_, err = h.run(t, "pw\n", "register", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username already taken")
}

func TestLoginLogout(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "pw\n", "login", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice:pw"}, h.api.loggedIn)
	assert.Contains(t, out, "Logged in as alice")

	sess, err := h.session(t)
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", sess.AccessToken)
	assert.Equal(t, "http://snip.test/api", sess.ServerURL)

	out, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	_, err = h.session(t)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestLogin_Rejected(t *testing.T) {
	h := newHarness(t)
	h.api.err = &client.APIError{StatusCode: 403, Message: "Not Allowed"}

	_, err := h.run(t, "wrong\n", "login", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Allowed")

	_, err = h.session(t)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestCommandsRequireLogin(t *testing.T) {
	for _, args := range [][]string{
		{"whoami"},
		{"list"},
		{"show", "s1"},
		{"add", "-t", "x", "-l", "go", "-f", "-"},
		{"edit", "s1", "-t", "x"},
		{"delete", "s1"},
		{"profile"},
	} {
		t.Run(args[0], func(t *testing.T) {
			h := newHarness(t)

			_, err := h.run(t, "code", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not logged in")
			assert.Empty(t, h.api.tokensSeen)
		})
	}
}

func TestExpiredSessionIsCleared(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.err = &client.APIError{StatusCode: 403, Message: "Invalid or expired token"}

	_, err := h.run(t, "", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")

	_, err = h.session(t)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestUnavailable(t *testing.T) {
	h := newHarness(t)
	h.api.err = client.ErrUnavailable

	_, err := h.run(t, "", "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach http://snip.test/api")
}

func TestList(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "No snippets yet\n", out)

	h.api.snippets = []models.Snippet{
		{ID: "s2", Title: "newer", Language: "go", UpdatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)},
		{ID: "s1", Title: "older", Language: "sql", UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	out, err = h.run(t, "", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "TITLE")
	assert.Regexp(t, `(?s)s2\s+newer\s+go.*s1\s+older\s+sql`, out)
	assert.Equal(t, []string{"tok-alice", "tok-alice"}, h.api.tokensSeen)
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.snippets = []models.Snippet{{ID: "s1", Title: "hello", Language: "go", Code: "fmt.Println(1)\n"}}

	out, err := h.run(t, "", "show", "s1")
	require.NoError(t, err)
	assert.Equal(t, "# hello (go)\nfmt.Println(1)\n", out)

	_, err = h.run(t, "", "show", "s9")
	assert.EqualError(t, err, "snippet s9 not found")
}

func TestAdd(t *testing.T) {
	t.Run("flags and file", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)
		path := filepath.Join(t.TempDir(), "main.go")
		require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o600))

		out, err := h.run(t, "", "add", "-t", "main", "-l", "go", "-f", path)
		require.NoError(t, err)
		assert.Equal(t, "Created s-new\n", out)
		assert.Equal(t, []models.NewSnippet{{Title: "main", Language: "go", Code: "package main\n"}}, h.api.created)
	})

	t.Run("stdin", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)

		_, err := h.run(t, "SELECT 1;\n", "add", "-t", "q", "-l", "sql", "-f", "-")
		require.NoError(t, err)
		require.Len(t, h.api.created, 1)
		assert.Equal(t, "SELECT 1;\n", h.api.created[0].Code)
	})

	t.Run("prompts", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)

		_, err := h.run(t, "hello\npython\nprint(1)\n\nprint(2)\n.\n", "add")
		require.NoError(t, err)
		assert.Equal(t, []models.NewSnippet{{Title: "hello", Language: "python", Code: "print(1)\n\nprint(2)"}}, h.api.created)
	})

	t.Run("server rejects", func(t *testing.T) {
		h := newHarness(t)
		h.login(t)
		h.api.err = &client.APIError{StatusCode: 400, Message: "invalid input: title"}

		_, err := h.run(t, "", "add", "-t", "x", "-l", "go", "-f", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid input")
	})
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.run(t, "", "edit", "s1")
	assert.ErrorContains(t, err, "nothing to change")

	out, err := h.run(t, "", "edit", "s1", "-t", "")
	require.NoError(t, err)
	assert.Equal(t, "Updated s1\n", out)
	require.NotNil(t, h.api.changes.Title, "an explicitly empty title is sent")
	assert.Equal(t, "", *h.api.changes.Title)
	assert.Nil(t, h.api.changes.Language)
	assert.Nil(t, h.api.changes.Code)

	_, err = h.run(t, "new code", "edit", "s1", "--language", "rust", "--file", "-")
	require.NoError(t, err)
	assert.Nil(t, h.api.changes.Title)
	assert.Equal(t, "rust", *h.api.changes.Language)
	assert.Equal(t, "new code", *h.api.changes.Code)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.run(t, "", "rm", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted s1\n", out)
	assert.Equal(t, []string{"s1"}, h.api.deleted)

	h.api.err = &client.APIError{StatusCode: 403, Message: "Forbidden"}
	_, err = h.run(t, "", "delete", "s2")
	require.Error(t, err)

	var apiErr *client.APIError
	assert.True(t, errors.As(err, &apiErr))
	_, serr := h.session(t)
	assert.NoError(t, serr, "a foreign snippet does not end the session")
}

func TestWhoami(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.user = models.User{ID: "u1", Username: "alice", DisplayName: "Alice", HasAvatar: true}

	out, err := h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: alice")
	assert.Contains(t, out, "Name:     Alice")
	assert.Contains(t, out, "http://snip.test/api/user/profile-picture/u1")
}

func TestProfileUpdate(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	out, err := h.run(t, "", "profile", "--name", "Alice", "--avatar", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated")

	require.Len(t, h.api.profileUpds, 1)
	assert.Equal(t, "Alice", h.api.profileUpds[0].DisplayName)
	assert.Equal(t, "me.png", h.api.profileUpds[0].AvatarName)
	assert.Equal(t, []byte("png"), h.api.profileUpds[0].Avatar)

	sess, err := h.session(t)
	require.NoError(t, err)
	assert.Equal(t, "Alice", sess.User.DisplayName)
	assert.True(t, sess.User.HasAvatar)
	assert.Equal(t, "tok-alice", sess.AccessToken)
}

func TestProfileUpdate_MissingAvatar(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.run(t, "", "profile", "--avatar", filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.Empty(t, h.api.profileUpds)
}

func TestServerFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "pw\n", "--server", "http://other:9/api", "login", "bob")
	require.NoError(t, err)

	sess, err := h.session(t)
	require.NoError(t, err)
	assert.Equal(t, "http://other:9/api", sess.ServerURL)
}
