package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runBrowser(t *testing.T, app *application, tokens session.TokenStore, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	b := newBrowser(app, tokens, &out)
	defer b.Close()

	err := b.run(context.Background(), strings.NewReader(strings.Join(script, "\n")+"\n"))
	require.NoError(t, err)
	return out.String()
}

func TestBrowsePaginates(t *testing.T) {
	app := newTestApplication(t)

	out := runBrowser(t, app, session.NewMemoryTokenStore(), "page 2", "page 3", "quit")

	assert.Contains(t, out, "article-1")
	assert.Contains(t, out, "pages: [1] 2")
	assert.Contains(t, out, "article-2")
	assert.Contains(t, out, "pages: 1 [2]")
	assert.Contains(t, out, "No articles are here... yet.")
}

func TestBrowseSessionCommands(t *testing.T) {
	app := newTestApplication(t)
	tokens := session.NewMemoryTokenStore()

	out := runBrowser(t, app, tokens,
		"feed",
		"login "+auth.DemoEmail+" wrong-password",
		"login "+auth.DemoEmail+" "+auth.DemoPassword,
		"whoami",
		"feed",
		"profile johndoe",
		"fav article-1",
		"logout",
		"whoami",
		"quit",
	)

	assert.Contains(t, out, "error: sign in to see your feed")
	assert.Contains(t, out, "error: Invalid credentials")
	assert.Contains(t, out, "Signed in as johndoe")
	assert.Contains(t, out, "johndoe <example@mail.com>")
	assert.Contains(t, out, "you=true")
	assert.Contains(t, out, "article-1 has 11 favorites")
	assert.Contains(t, out, "Signed out")
	assert.Contains(t, out, "not signed in")

	_, found, err := tokens.Get()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBrowseRestoresStoredSession(t *testing.T) {
	app := newTestApplication(t)
	tokens := &session.FileTokenStore{Path: filepath.Join(t.TempDir(), "token")}

	runBrowser(t, app, tokens, "login "+auth.DemoEmail+" "+auth.DemoPassword, "quit")

	out := runBrowser(t, app, tokens, "whoami")
	assert.Contains(t, out, "Signed in as johndoe")
	assert.Contains(t, out, "johndoe <example@mail.com>")
}

func TestBrowseDropsRejectedToken(t *testing.T) {
	app := newTestApplication(t)
	tokens := session.NewMemoryTokenStore()
	require.NoError(t, tokens.Save("garbage"))

	out := runBrowser(t, app, tokens, "whoami")
	assert.Contains(t, out, "Stored session is no longer valid")
	assert.Contains(t, out, "not signed in")

	_, found, err := tokens.Get()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBrowseFiltersAndUsage(t *testing.T) {
	app := newTestApplication(t)

	out := runBrowser(t, app, session.NewMemoryTokenStore(),
		"author janedoe",
		"tag",
		"page zero",
		"bogus",
		"me",
		"exit",
		"whoami",
	)

	assert.Contains(t, out, "article-2")
	assert.Contains(t, out, "error: usage: tag NAME")
	assert.Contains(t, out, `error: page must be a positive integer, got "zero"`)
	assert.Contains(t, out, `error: unknown command "bogus", try help`)
	assert.Equal(t, 1, strings.Count(out, "not signed in"))
}

func TestRootCommandBrowse(t *testing.T) {
	t.Setenv("CONDUIT_JWT_SECRET", "root-command-secret")
	t.Setenv("CONDUIT_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	root := newRootCommand(slog.New(slog.DiscardHandler))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("tag TypeScript\nquit\n"))
	root.SetArgs([]string{"browse", "--env-file", filepath.Join(t.TempDir(), "missing.env"), "--limit", "5"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "article-1")
	assert.Contains(t, out.String(), "article-2")
	assert.Contains(t, out.String(), "pages: [1]")
}
