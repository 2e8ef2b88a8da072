package auth

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/calctl/internal/logging"
	"github.com/teemow/calctl/internal/store"
)

// ErrAuthorizationFailed is wrapped by every handshake failure: listener
// timeout, user cancellation, a provider error in the redirect, or a rejected
// code exchange.
var ErrAuthorizationFailed = errors.New("authorization failed")

// Scopes requested during the handshake. Full calendar read/write access;
// no partial-scope negotiation is supported.
var Scopes = []string{calendar.CalendarScope}

// defaultTimeout bounds the wait for the browser redirect in automatic mode.
const defaultTimeout = 2 * time.Minute

// callbackPath is the loopback listener's redirect path.
const callbackPath = "/oauth2/callback"

// manualRedirectURI is an intentionally unreachable redirect target for the
// manual flow: the provider sends the browser there, the page never loads, and
// the user copies the URL (carrying the code) from the address bar.
const manualRedirectURI = "http://localhost:1"

// Options configures a single handshake attempt.
type Options struct {
	// Manual selects the paste-the-redirect-URL flow instead of the loopback
	// listener.
	Manual bool

	// Timeout bounds the whole handshake. Zero means defaultTimeout.
	Timeout time.Duration

	// Input is where the manual flow reads the pasted redirect from.
	// Defaults to os.Stdin.
	Input io.Reader

	// Status is where user guidance is printed. Defaults to os.Stderr.
	Status io.Writer
}

// Test seams.
var (
	oauthEndpoint = google.Endpoint
	openBrowserFn = openBrowser
	randomStateFn = randomState
)

// Authorize runs the OAuth2 authorization-code handshake and returns the
// refresh token for the newly authorized account. It is a one-shot blocking
// sequence: any failure surfaces immediately and the caller must re-invoke
// the whole handshake to try again.
func Authorize(ctx context.Context, creds store.ClientCredentials, opts Options) (string, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Status == nil {
		opts.Status = os.Stderr
	}

	state, err := randomStateFn()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if opts.Manual {
		return authorizeManual(ctx, creds, state, opts)
	}
	return authorizeAuto(ctx, creds, state, opts)
}

// authorizeManual prints the consent URL and reads the pasted redirect URL
// (or bare authorization code) back from opts.Input.
func authorizeManual(ctx context.Context, creds store.ClientCredentials, state string, opts Options) (string, error) {
	cfg := oauthConfig(creds, manualRedirectURI)
	authURL := cfg.AuthCodeURL(state, authCodeOptions()...)

	fmt.Fprintln(opts.Status, "Visit this URL to authorize:")
	fmt.Fprintln(opts.Status, authURL)
	fmt.Fprintln(opts.Status)
	fmt.Fprintln(opts.Status, "After authorizing you will be redirected to a localhost URL that won't load.")
	fmt.Fprintln(opts.Status, "Copy that URL from the address bar and paste it here.")
	fmt.Fprint(opts.Status, "Paste redirect URL (or code): ")

	line, err := bufio.NewReader(opts.Input).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: read redirect url: %v", ErrAuthorizationFailed, err)
	}

	code, gotState, err := extractCode(strings.TrimSpace(line))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	if gotState != "" && gotState != state {
		return "", fmt.Errorf("%w: state mismatch", ErrAuthorizationFailed)
	}

	return exchange(ctx, cfg, code)
}

// authorizeAuto opens the browser and waits for the provider to redirect back
// to a loopback listener. The listener accepts at most one redirect and its
// port is released on every exit path.
func authorizeAuto(ctx context.Context, creds store.ClientCredentials, state string, opts Options) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("%w: listen for callback: %v", ErrAuthorizationFailed, err)
	}
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	redirectURI := fmt.Sprintf("http://127.0.0.1:%d%s", port, callbackPath)
	cfg := oauthConfig(creds, redirectURI)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           callbackHandler(state, codeCh, errCh),
	}
	defer func() { _ = srv.Close() }()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- err:
			default:
			}
		}
	}()

	authURL := cfg.AuthCodeURL(state, authCodeOptions()...)

	fmt.Fprintln(opts.Status, "Opening browser for authorization...")
	fmt.Fprintln(opts.Status, "If the browser doesn't open, visit this URL:")
	fmt.Fprintln(opts.Status, authURL)
	if err := openBrowserFn(authURL); err != nil {
		slog.Debug("could not open browser", logging.Err(err))
	}

	select {
	case code := <-codeCh:
		return exchange(ctx, cfg, code)
	case err := <-errCh:
		return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	case <-ctx.Done():
		return "", fmt.Errorf("%w: timed out waiting for redirect", ErrAuthorizationFailed)
	}
}

// callbackHandler captures the single authorization redirect. Subsequent
// requests are ignored because the channels are buffered with capacity one.
func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != callbackPath {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if e := q.Get("error"); e != "" {
			select {
			case errCh <- fmt.Errorf("provider returned %q", e):
			default:
			}
			fmt.Fprint(w, cancelledPage)
			return
		}
		if q.Get("state") != state {
			select {
			case errCh <- errors.New("state mismatch"):
			default:
			}
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, errorPage)
			return
		}
		code := q.Get("code")
		if code == "" {
			select {
			case errCh <- errors.New("redirect carried no authorization code"):
			default:
			}
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, errorPage)
			return
		}
		select {
		case codeCh <- code:
		default:
		}
		fmt.Fprint(w, successPage)
	})
}

// exchange trades the authorization code for tokens. A response without a
// refresh token is a failure: the handshake exists to obtain one.
func exchange(ctx context.Context, cfg *oauth2.Config, code string) (string, error) {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: exchange code: %v", ErrAuthorizationFailed, err)
	}
	if tok.RefreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token received", ErrAuthorizationFailed)
	}

	slog.Debug("authorization code exchanged",
		slog.String("refresh_token", logging.SanitizeToken(tok.RefreshToken)))
	return tok.RefreshToken, nil
}

func oauthConfig(creds store.ClientCredentials, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     oauthEndpoint,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
	}
}

// authCodeOptions requests offline access with forced consent so the provider
// always issues a refresh token, even for a previously authorized client.
func authCodeOptions() []oauth2.AuthCodeOption {
	return []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// extractCode parses a pasted redirect URL, or accepts a bare authorization
// code for providers configured to display one.
func extractCode(input string) (code, state string, err error) {
	if input == "" {
		return "", "", errors.New("empty input")
	}
	if !strings.Contains(input, "://") {
		return input, "", nil
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", "", fmt.Errorf("parse redirect url: %w", err)
	}
	code = parsed.Query().Get("code")
	if code == "" {
		return "", "", errors.New("no code found in redirect url")
	}
	return code, parsed.Query().Get("state"), nil
}

const successPage = `<html><body><h1>Authorized</h1><p>You can close this window and return to the terminal.</p></body></html>`

const cancelledPage = `<html><body><h1>Authorization cancelled</h1><p>You can close this window.</p></body></html>`

const errorPage = `<html><body><h1>Authorization error</h1><p>Something went wrong. Close this window and try again.</p></body></html>`
