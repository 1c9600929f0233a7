package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

// DefaultTimeout bounds a single rendezvous request.
const DefaultTimeout = 15 * time.Second

// HTTP is the JSON client for the rendezvous service.
type HTTP struct {
	Base string
	HTTP *http.Client
	Log  zerolog.Logger
}

// NewHTTP returns a client for base with the given per-request timeout.
func NewHTTP(base string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
		Log:  zerolog.Nop(),
	}
}

// StartMigration registers the destination public key and returns its PIN.
func (c *HTTP) StartMigration(
	ctx context.Context,
	username domain.Username,
	pub domain.P256Public,
) (domain.PIN, error) {
	spki, err := crypto.ExportPublicSPKI(pub)
	if err != nil {
		return "", err
	}
	var out startResponse
	in := startRequest{Username: username.String(), PublicKey: crypto.B64(spki)}
	if err := c.post(ctx, pathStartMigration, in, &out); err != nil {
		return "", err
	}
	if out.PIN == "" {
		return "", fmt.Errorf("%w: empty pin in response", domain.ErrRendezvousUnavailable)
	}
	return domain.PIN(out.PIN), nil
}

// FetchPublicKey returns the destination key registered under pin.
func (c *HTTP) FetchPublicKey(ctx context.Context, pin domain.PIN) (domain.P256Public, error) {
	var out publicKeyResponse
	q := url.Values{"pin": {pin.String()}}
	if err := c.getJSON(ctx, pathGetPublicKey+"?"+q.Encode(), &out); err != nil {
		return domain.P256Public{}, err
	}
	raw, err := crypto.FromB64(out.PublicKey)
	if err != nil {
		return domain.P256Public{}, domain.ErrInvalidKeyEncoding
	}
	return crypto.ImportPublic(raw)
}

// SubmitPayload posts the sealed frame for (username, pin).
func (c *HTTP) SubmitPayload(
	ctx context.Context,
	username domain.Username,
	pin domain.PIN,
	frame string,
) error {
	in := submitRequest{Username: username.String(), PIN: pin.String(), EncryptedData: frame}
	return c.post(ctx, pathCompleteMigrate, in, &statusResponse{})
}

// FetchPayload returns the sealed frame, or domain.ErrNotYetAvailable while
// the source has not submitted.
func (c *HTTP) FetchPayload(
	ctx context.Context,
	username domain.Username,
	pin domain.PIN,
) (string, error) {
	var out payloadResponse
	q := url.Values{"username": {username.String()}, "pin": {pin.String()}}
	if err := c.getJSON(ctx, pathFetchPayload+"?"+q.Encode(), &out); err != nil {
		return "", err
	}
	if out.EncryptedData == "" {
		return "", domain.ErrNotYetAvailable
	}
	return out.EncryptedData, nil
}

// Health checks that the service answers.
func (c *HTTP) Health(ctx context.Context) error {
	return c.getJSON(ctx, pathHealth, &statusResponse{})
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTP) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrRendezvousUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("rendezvous request")

	if resp.StatusCode/100 != 2 {
		return statusError(req, resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrRendezvousUnavailable, req.URL.Path, err)
		}
	}
	return nil
}

// statusError maps a non-2xx response onto the domain error taxonomy.
func statusError(req *http.Request, resp *http.Response) error {
	var body errorBody
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	_ = json.Unmarshal(b, &body)

	switch body.Code {
	case codeNotYetAvailable:
		return domain.ErrNotYetAvailable
	case codePinNotFound, codePinExpired:
		return fmt.Errorf("%w: %s", domain.ErrPinNotFound, body.Error)
	}
	// Servers without error codes signal the waiting state by message only.
	if resp.StatusCode/100 == 4 && notYetAvailable(body.Error) {
		return domain.ErrNotYetAvailable
	}

	switch {
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s %s: %s", domain.ErrRendezvousUnavailable, req.Method, req.URL.Path, resp.Status)
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: %s", domain.ErrPinNotFound, resp.Status)
	}
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}
	return errors.New("rendezvous " + req.Method + " " + req.URL.Path + ": " + msg)
}

func notYetAvailable(msg string) bool {
	msg = strings.TrimSpace(msg)
	return msg != "" && (strings.EqualFold(msg, domain.ErrNotYetAvailable.Error()) ||
		strings.EqualFold(msg, "not yet available"))
}

var _ domain.RendezvousClient = (*HTTP)(nil)
