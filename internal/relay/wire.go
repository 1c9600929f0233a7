package relay

// Paths served by the rendezvous service.
const (
	pathStartMigration  = "/start_migration"
	pathGetPublicKey    = "/get_migration_pubkey"
	pathCompleteMigrate = "/complete_migration"
	pathFetchPayload    = "/fetch_migration_data"
	pathHealth          = "/healthz"
)

// Error codes carried in errorBody.Code.
const (
	codePinNotFound     = "pin_not_found"
	codePinExpired      = "pin_expired"
	codeNotYetAvailable = "not_yet_available"
	codeBadRequest      = "bad_request"
)

type startRequest struct {
	Username  string `json:"username"`
	PublicKey string `json:"P2"`
}

type startResponse struct {
	PIN       string `json:"pin"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type publicKeyResponse struct {
	PublicKey string `json:"P2"`
}

type submitRequest struct {
	Username      string `json:"username"`
	PIN           string `json:"pin"`
	EncryptedData string `json:"encrypted_data"`
}

type payloadResponse struct {
	EncryptedData string `json:"encrypted_data"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
