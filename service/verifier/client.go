package verifier

import (
	"errors"
	"net/http"
	"time"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status not accepted")
	ErrMissingEndpoint = errors.New("verifier endpoint not configured")
)

// HeaderApiKey authenticates this service to the verification authority
const HeaderApiKey = "X-Api-Key"

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// Endpoint receives attestations as a json POST
	Endpoint string
	ApiKey   string
}
