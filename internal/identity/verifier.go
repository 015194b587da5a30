package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for every verification failure. Callers must
// not be able to distinguish a malformed token from an expired one or from
// an unreachable provider.
var ErrUnauthorized = errors.New("identity: unauthorized")

// Verifier resolves a bearer token to a stable subject identifier.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// HTTPVerifier implements Verifier against the identity provider's user
// endpoint.
type HTTPVerifier struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	parser  *jwt.Parser
	logger  *log.Logger
}

// NewHTTPVerifier constructs an HTTP-backed verifier.
func NewHTTPVerifier(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) (*HTTPVerifier, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse identity url: %w", err)
	}
	return &HTTPVerifier{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		parser: jwt.NewParser(),
		logger: logger,
	}, nil
}

// Verify resolves the token to a subject.
//
// The token is first parsed unverified: a structurally broken token or one
// whose exp already passed is rejected without the provider round trip.
// Signature verification itself stays with the provider.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	if err := v.precheck(token); err != nil {
		return "", ErrUnauthorized
	}

	endpoint := *v.baseURL
	endpoint.Path = endpoint.Path + "/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", ErrUnauthorized
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if v.apiKey != "" {
		req.Header.Set("X-API-Key", v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Printf("identity: provider unreachable: %v", err)
		return "", ErrUnauthorized
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrUnauthorized
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		v.logger.Printf("identity: decode provider response: %v", err)
		return "", ErrUnauthorized
	}
	if payload.ID == "" {
		return "", ErrUnauthorized
	}
	return payload.ID, nil
}

func (v *HTTPVerifier) precheck(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := v.parser.ParseUnverified(token, claims); err != nil {
		return err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return err
	}
	if exp != nil && exp.Before(time.Now()) {
		return jwt.ErrTokenExpired
	}
	return nil
}
