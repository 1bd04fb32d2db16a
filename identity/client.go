// Package identity wraps the external email/password identity provider's
// REST surface. The provider owns accounts and credentials; this layer only
// exchanges them for tokens and mirrors the resulting identity into the
// session cookie.
package identity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

const defaultEndpoint = "https://identitytoolkit.googleapis.com/v1"

// Account is the provider's view of a signed-in user.
type Account struct {
	UID       string
	Email     string
	IDToken   string
	ExpiresIn time.Duration
}

// Client issues calls against the provider REST API.
type Client struct {
	cfg   Config
	httpc *http.Client
	log   *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for provider calls.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger overrides the client's logger.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) { c.log = logger }
}

// NewClient creates a provider client from a parsed configuration.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{cfg: cfg, httpc: http.DefaultClient, log: log.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider defers config parsing and client construction until the first
// call, mirroring the page behavior of initializing the SDK on demand from
// the embedded config block.
type Provider struct {
	configJSON []byte
	opts       []ClientOption

	once   sync.Once
	client *Client
	err    error
}

// NewProvider holds the raw embedded config blob for lazy initialization.
func NewProvider(configJSON []byte, opts ...ClientOption) *Provider {
	return &Provider{configJSON: configJSON, opts: opts}
}

func (p *Provider) init() (*Client, error) {
	p.once.Do(func() {
		cfg, err := ParseConfig(p.configJSON)
		if err != nil {
			p.err = fmt.Errorf("initialize identity provider: %w", err)
			return
		}
		p.client = NewClient(cfg, p.opts...)
	})
	return p.client, p.err
}

// SignIn exchanges credentials for an authenticated account.
func (p *Provider) SignIn(ctx context.Context, email, password string) (Account, error) {
	c, err := p.init()
	if err != nil {
		return Account{}, err
	}
	return c.SignIn(ctx, email, password)
}

// SignUp creates a provider account.
func (p *Provider) SignUp(ctx context.Context, email, password string) (Account, error) {
	c, err := p.init()
	if err != nil {
		return Account{}, err
	}
	return c.SignUp(ctx, email, password)
}

// UpdateDisplayName pushes a display name to the provider profile.
func (p *Provider) UpdateDisplayName(ctx context.Context, idToken, name string) error {
	c, err := p.init()
	if err != nil {
		return err
	}
	return c.UpdateDisplayName(ctx, idToken, name)
}

// DeleteAccount removes the provider account the token belongs to.
func (p *Provider) DeleteAccount(ctx context.Context, idToken string) error {
	c, err := p.init()
	if err != nil {
		return err
	}
	return c.DeleteAccount(ctx, idToken)
}

// SignOut discards client-held credentials. The provider keeps no
// server-side session for password sign-in, so this is purely local.
func (p *Provider) SignOut() {}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID   string `json:"localId"`
	Email     string `json:"email"`
	IDToken   string `json:"idToken"`
	ExpiresIn string `json:"expiresIn"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Account, error) {
	return c.credentialCall(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) SignUp(ctx context.Context, email, password string) (Account, error) {
	return c.credentialCall(ctx, "accounts:signUp", email, password)
}

func (c *Client) credentialCall(ctx context.Context, action, email, password string) (Account, error) {
	var resp accountResponse
	err := c.post(ctx, action, credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return Account{}, err
	}
	acct := Account{UID: resp.LocalID, Email: resp.Email, IDToken: resp.IDToken}
	if secs, convErr := strconv.Atoi(resp.ExpiresIn); convErr == nil {
		acct.ExpiresIn = time.Duration(secs) * time.Second
	}
	return acct, nil
}

func (c *Client) UpdateDisplayName(ctx context.Context, idToken, name string) error {
	body := struct {
		IDToken           string `json:"idToken"`
		DisplayName       string `json:"displayName"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}{IDToken: idToken, DisplayName: name}
	return c.post(ctx, "accounts:update", body, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, idToken string) error {
	body := struct {
		IDToken string `json:"idToken"`
	}{IDToken: idToken}
	return c.post(ctx, "accounts:delete", body, nil)
}

type providerErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, action string, body, out any) error {
	endpoint := c.cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	url := fmt.Sprintf("%s/%s?key=%s", endpoint, action, c.cfg.APIKey)

	payload, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode provider request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.WithFields(log.Fields{"action": action, "error": err.Error()}).Error("identity request failed")
		return err
	}
	defer resp.Body.Close()

	c.log.WithFields(log.Fields{
		"action":   action,
		"status":   resp.StatusCode,
		"total_ms": time.Since(start).Milliseconds(),
	}).Debug("identity request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var perr providerErrorResponse
		if decErr := sonic.Unmarshal(raw, &perr); decErr != nil || perr.Error.Message == "" {
			return &ProviderError{Code: "UNKNOWN", Status: resp.StatusCode}
		}
		return &ProviderError{
			Code:   normalizeProviderCode(perr.Error.Message),
			Status: resp.StatusCode,
		}
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
