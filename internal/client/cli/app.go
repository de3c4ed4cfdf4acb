package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/snipkeeper/internal/client/client"
	"github.com/dmitrijs2005/snipkeeper/internal/client/config"
	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
	"github.com/dmitrijs2005/snipkeeper/internal/client/session"
)

// newAPIClient is a test seam for the HTTP client constructor.
var newAPIClient = func(cfg *config.Config) (client.Client, error) {
	return client.NewHTTPClient(cfg.ServerURL, cfg.Timeout)
}

// App carries what every command needs. It is populated by the root
// command's PersistentPreRunE once flags are parsed.
type App struct {
	configPath string
	serverURL  string

	config   *config.Config
	api      client.Client
	sessions *session.Store
	reader   *bufio.Reader
	out      io.Writer
}

func newApp(in io.Reader, out io.Writer) *App {
	return &App{reader: bufio.NewReader(in), out: out}
}

func (a *App) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.ServerURL = a.serverURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	api, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	a.config = cfg
	a.api = api
	a.sessions = session.NewStore(cfg.SessionFile)
	return nil
}

// authorize loads the stored session and hands its token to the API client.
func (a *App) authorize() (*models.Session, error) {
	sess, err := a.sessions.Load()
	if errors.Is(err, session.ErrNoSession) {
		return nil, errors.New("not logged in, run `snipctl login` first")
	}
	if err != nil {
		return nil, err
	}
	a.api.SetToken(sess.AccessToken)
	return sess, nil
}

// explain turns API errors into messages for the user. A rejected token
// also drops the stale session.
func (a *App) explain(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.sessions.Clear()
		return errors.New("session expired, run `snipctl login` again")
	}
	if errors.Is(err, client.ErrUnavailable) {
		return fmt.Errorf("cannot reach %s: %w", a.config.ServerURL, err)
	}
	return err
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
