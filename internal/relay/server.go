package relay

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

// Server defaults.
const (
	DefaultPinTTL     = 5 * time.Minute
	DefaultSweepEvery = 30 * time.Second

	pinDigits      = 6
	pinMaxAttempts = 16
	maxBodyBytes   = 64 << 10
)

var errPinSpaceExhausted = errors.New("could not allocate a free pin")

// ServerConfig configures a rendezvous Server.
type ServerConfig struct {
	PinTTL time.Duration
	Clock  clock.Clock
	Log    zerolog.Logger
}

// Server is an in-memory rendezvous service. Each PIN maps to one
// MigrationRequest that lives until its payload is fetched or it expires.
type Server struct {
	ttl   time.Duration
	clock clock.Clock
	log   zerolog.Logger
	mux   *http.ServeMux

	mu    sync.Mutex
	byPIN map[domain.PIN]*domain.MigrationRequest

	newPIN func() (domain.PIN, error)
}

// NewServer returns a Server with routes installed.
func NewServer(cfg ServerConfig) *Server {
	if cfg.PinTTL <= 0 {
		cfg.PinTTL = DefaultPinTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	s := &Server{
		ttl:    cfg.PinTTL,
		clock:  cfg.Clock,
		log:    cfg.Log,
		mux:    http.NewServeMux(),
		byPIN:  make(map[domain.PIN]*domain.MigrationRequest),
		newPIN: randomPIN,
	}
	s.mux.HandleFunc("POST "+pathStartMigration, s.handleStart)
	s.mux.HandleFunc("GET "+pathGetPublicKey, s.handleGetPublicKey)
	s.mux.HandleFunc("POST "+pathCompleteMigrate, s.handleComplete)
	s.mux.HandleFunc("GET "+pathFetchPayload, s.handleFetch)
	s.mux.HandleFunc("GET "+pathHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	})
	return s
}

// ServeHTTP dispatches the request and writes one access log line.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.clock.Now()
	rid := uuid.NewString()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	rec.Header().Set("X-Request-Id", rid)

	s.mux.ServeHTTP(rec, r)

	s.log.Info().
		Str("request_id", rid).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("took", s.clock.Since(start)).
		Msg("request")
}

// Sweep removes expired requests and returns how many were dropped.
func (s *Server) Sweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for pin, req := range s.byPIN {
		if !now.Before(req.ExpiresAt) {
			delete(s.byPIN, pin)
			n++
		}
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = DefaultSweepEvery
	}
	t := s.clock.Ticker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug().Int("dropped", n).Msg("expired migration requests purged")
			}
		}
	}
}

// Pending returns the number of live requests.
func (s *Server) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byPIN)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var in startRequest
	if err := decodeBody(w, r, &in); err != nil || in.Username == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "username and P2 are required")
		return
	}
	raw, err := crypto.FromB64(in.PublicKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "P2 is not base64")
		return
	}
	if _, err := crypto.ImportPublic(raw); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "P2 is not a P-256 public key")
		return
	}

	now := s.clock.Now()
	s.mu.Lock()
	pin, err := s.allocatePINLocked()
	if err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("pin allocation")
		writeError(w, http.StatusServiceUnavailable, "", "try again")
		return
	}
	req := &domain.MigrationRequest{
		ID:        uuid.NewString(),
		Username:  domain.Username(in.Username),
		PIN:       pin,
		PublicKey: raw,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.byPIN[pin] = req
	s.mu.Unlock()

	s.log.Info().
		Str("migration", req.ID).
		Str("username", in.Username).
		Time("expires_at", req.ExpiresAt).
		Msg("migration started")
	writeJSON(w, http.StatusOK, startResponse{
		PIN:       pin.String(),
		ExpiresAt: req.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetPublicKey(w http.ResponseWriter, r *http.Request) {
	pin := domain.PIN(r.URL.Query().Get("pin"))
	if pin == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "pin is required")
		return
	}
	s.mu.Lock()
	req, status, code := s.lookupLocked(pin, "")
	var pub []byte
	if req != nil {
		pub = req.PublicKey
	}
	s.mu.Unlock()

	if req == nil {
		writeError(w, status, code, "invalid or expired pin")
		return
	}
	writeJSON(w, http.StatusOK, publicKeyResponse{PublicKey: crypto.B64(pub)})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var in submitRequest
	if err := decodeBody(w, r, &in); err != nil ||
		in.Username == "" || in.PIN == "" || in.EncryptedData == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "username, pin and encrypted_data are required")
		return
	}
	if _, err := crypto.FromB64(in.EncryptedData); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "encrypted_data is not base64")
		return
	}

	s.mu.Lock()
	req, status, code := s.lookupLocked(domain.PIN(in.PIN), domain.Username(in.Username))
	if req != nil {
		req.EncryptedData = in.EncryptedData
	}
	s.mu.Unlock()

	if req == nil {
		writeError(w, status, code, "invalid pin or username")
		return
	}
	s.log.Info().Str("migration", req.ID).Int("payload_len", len(in.EncryptedData)).Msg("payload stored")
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pin, username := domain.PIN(q.Get("pin")), domain.Username(q.Get("username"))
	if pin == "" || username == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "username and pin are required")
		return
	}

	s.mu.Lock()
	req, status, code := s.lookupLocked(pin, username)
	var payload string
	if req != nil && req.EncryptedData != "" {
		payload = req.EncryptedData
		delete(s.byPIN, pin)
	}
	s.mu.Unlock()

	switch {
	case req == nil:
		writeError(w, status, code, "invalid pin or username")
	case payload == "":
		writeError(w, http.StatusNotFound, codeNotYetAvailable, "migration not yet completed by source device")
	default:
		s.log.Info().Str("migration", req.ID).Msg("payload delivered")
		writeJSON(w, http.StatusOK, payloadResponse{EncryptedData: payload})
	}
}

// lookupLocked finds a live request for pin. A non-empty username must match
// the registration. Expired requests are removed.
func (s *Server) lookupLocked(
	pin domain.PIN,
	username domain.Username,
) (*domain.MigrationRequest, int, string) {
	req, ok := s.byPIN[pin]
	if !ok {
		return nil, http.StatusNotFound, codePinNotFound
	}
	if !s.clock.Now().Before(req.ExpiresAt) {
		delete(s.byPIN, pin)
		return nil, http.StatusGone, codePinExpired
	}
	if username != "" && req.Username != username {
		return nil, http.StatusNotFound, codePinNotFound
	}
	return req, http.StatusOK, ""
}

func (s *Server) allocatePINLocked() (domain.PIN, error) {
	for range pinMaxAttempts {
		pin, err := s.newPIN()
		if err != nil {
			return "", err
		}
		if _, taken := s.byPIN[pin]; !taken {
			return pin, nil
		}
	}
	return "", errPinSpaceExhausted
}

// randomPIN draws a uniformly random decimal PIN.
func randomPIN() (domain.PIN, error) {
	limit := big.NewInt(1)
	for range pinDigits {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return domain.PIN(fmt.Sprintf("%0*d", pinDigits, n.Int64())), nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

var _ http.Handler = (*Server)(nil)
