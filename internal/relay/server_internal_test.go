package relay

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
)

func TestRandomPIN_Format(t *testing.T) {
	for range 50 {
		pin, err := randomPIN()
		require.NoError(t, err)
		require.Len(t, pin.String(), pinDigits)
		for _, r := range pin.String() {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestServer_PinCollisionRetried(t *testing.T) {
	srv := NewServer(ServerConfig{Log: zerolog.Nop()})
	seq := []domain.PIN{"111111", "111111", "222222"}
	srv.newPIN = func() (domain.PIN, error) {
		p := seq[0]
		seq = seq[1:]
		return p, nil
	}

	kp, err := crypto.GenerateP256()
	require.NoError(t, err)
	body := `{"username":"alice","P2":"` + crypto.B64(kp.Public.Slice()) + `"}`

	for _, want := range []string{"111111", "222222"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, pathStartMigration, strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pin":"`+want+`"`)
	}
}

func TestServer_PinSpaceExhausted(t *testing.T) {
	srv := NewServer(ServerConfig{Log: zerolog.Nop()})
	srv.newPIN = func() (domain.PIN, error) { return "333333", nil }
	srv.byPIN["333333"] = &domain.MigrationRequest{PIN: "333333"}

	_, err := srv.allocatePINLocked()
	assert.ErrorIs(t, err, errPinSpaceExhausted)
}
