// Package xauth_service runs the OAuth2 PKCE exchange against X so a wallet
// can prove control of a handle before linking it on-chain. The service only
// verifies the handle; the actual link_x transaction is signed by the wallet.
package xauth_service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/imroc/req"
	"github.com/tidwall/gjson"

	"agentgrind-service/conf"
)

const (
	authorizeUrl = "https://twitter.com/i/oauth2/authorize"
	tokenUrl     = "https://api.x.com/2/oauth2/token"
	usersMeUrl   = "https://api.x.com/2/users/me?user.fields=username"

	oauthScope = "users.read tweet.read offline.access"

	// Pending authorizations expire after this long.
	sessionTTL = 10 * time.Minute
)

var (
	// ErrNotConfigured X client credentials are missing from configuration
	ErrNotConfigured = errors.New("x oauth not configured")

	// ErrInvalidState callback state does not match any pending authorization
	ErrInvalidState = errors.New("invalid or expired oauth state")

	// ErrExchangeFailed the token exchange or user lookup was rejected
	ErrExchangeFailed = errors.New("oauth exchange failed")
)

type session struct {
	wallet    string
	verifier  string
	expiresAt time.Time
}

// XAuthService X OAuth PKCE flow service
type XAuthService struct {
	clientId     string
	clientSecret string
	redirectUrl  string

	mu       sync.Mutex
	sessions map[string]session
}

// NewXAuthService create an X OAuth service from global configuration.
func NewXAuthService() *XAuthService {
	return &XAuthService{
		clientId:     conf.Cfg.X.ClientId,
		clientSecret: conf.Cfg.X.ClientSecret,
		redirectUrl:  conf.Cfg.X.RedirectUrl,
		sessions:     make(map[string]session),
	}
}

// StartLink begin the PKCE flow for a wallet. Returns the authorization URL
// the user must visit; the state parameter ties the callback back to the
// wallet.
func (s *XAuthService) StartLink(wallet string) (string, error) {
	if s.clientId == "" {
		return "", ErrNotConfigured
	}

	state, err := randomToken(24)
	if err != nil {
		return "", err
	}
	verifier, err := randomToken(32)
	if err != nil {
		return "", err
	}
	challenge := sha256.Sum256([]byte(verifier))

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[state] = session{
		wallet:    wallet,
		verifier:  verifier,
		expiresAt: time.Now().Add(sessionTTL),
	}
	s.mu.Unlock()

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", s.clientId)
	q.Set("redirect_uri", s.redirectUrl)
	q.Set("scope", oauthScope)
	q.Set("state", state)
	q.Set("code_challenge", base64.RawURLEncoding.EncodeToString(challenge[:]))
	q.Set("code_challenge_method", "S256")

	return authorizeUrl + "?" + q.Encode(), nil
}

// LinkResult outcome of a completed OAuth callback
type LinkResult struct {
	Wallet  string `json:"wallet"`
	XHandle string `json:"x_handle"`
}

// HandleCallback finish the PKCE flow: validate state, exchange the code for
// an access token, and resolve the authenticated username. The caller then
// builds and signs the on-chain link_x transaction with the returned handle.
func (s *XAuthService) HandleCallback(state, code string) (*LinkResult, error) {
	sess, err := s.consumeSession(state)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.exchangeCode(code, sess.verifier)
	if err != nil {
		return nil, err
	}
	username, err := s.fetchUsername(accessToken)
	if err != nil {
		return nil, err
	}

	return &LinkResult{Wallet: sess.wallet, XHandle: username}, nil
}

func (s *XAuthService) exchangeCode(code, verifier string) (string, error) {
	basic := base64.StdEncoding.EncodeToString([]byte(s.clientId + ":" + s.clientSecret))

	resp, err := req.Post(tokenUrl,
		req.Header{
			"Authorization": "Basic " + basic,
			"Content-Type":  "application/x-www-form-urlencoded",
		},
		req.Param{
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  s.redirectUrl,
			"code_verifier": verifier,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrExchangeFailed, err)
	}
	body, err := resp.ToString()
	if err != nil {
		return "", fmt.Errorf("%w: read token response: %v", ErrExchangeFailed, err)
	}
	if resp.Response().StatusCode != 200 {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrExchangeFailed, resp.Response().StatusCode)
	}

	accessToken := gjson.Get(body, "access_token").String()
	if accessToken == "" {
		return "", fmt.Errorf("%w: missing access_token", ErrExchangeFailed)
	}
	return accessToken, nil
}

func (s *XAuthService) fetchUsername(accessToken string) (string, error) {
	resp, err := req.Get(usersMeUrl, req.Header{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return "", fmt.Errorf("%w: users/me request: %v", ErrExchangeFailed, err)
	}
	body, err := resp.ToString()
	if err != nil {
		return "", fmt.Errorf("%w: read users/me response: %v", ErrExchangeFailed, err)
	}
	if resp.Response().StatusCode != 200 {
		return "", fmt.Errorf("%w: users/me returned %d", ErrExchangeFailed, resp.Response().StatusCode)
	}

	username := gjson.Get(body, "data.username").String()
	if username == "" {
		return "", fmt.Errorf("%w: missing username", ErrExchangeFailed)
	}
	return username, nil
}

// consumeSession validate and burn a pending state. Single use: a replayed
// state fails even if the first exchange never completed.
func (s *XAuthService) consumeSession(state string) (session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[state]
	delete(s.sessions, state)
	s.mu.Unlock()

	if !ok || time.Now().After(sess.expiresAt) {
		return session{}, ErrInvalidState
	}
	return sess, nil
}

func (s *XAuthService) pruneLocked() {
	now := time.Now()
	for state, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, state)
		}
	}
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
