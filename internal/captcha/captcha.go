// Package captcha verifies reCAPTCHA tokens submitted with the admin login
// form.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// VerifyURL is Google's siteverify endpoint.
const VerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	// ErrMissingToken 表示表单没有携带验证码令牌。
	ErrMissingToken = errors.New("captcha token is missing")
	// ErrRejected 表示验证服务判定令牌无效。
	ErrRejected = errors.New("captcha verification failed")
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Verifier checks tokens against the siteverify API.
type Verifier struct {
	secret   string
	siteKey  string
	enabled  bool
	endpoint string
	client   httpDoer
}

// New creates a verifier. A disabled verifier accepts every request.
func New(enabled bool, siteKey, secret string) *Verifier {
	return &Verifier{
		secret:   secret,
		siteKey:  siteKey,
		enabled:  enabled,
		endpoint: VerifyURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetHTTPClient 替换用于访问验证服务的 HTTP 客户端，主要面向测试场景。
func (v *Verifier) SetHTTPClient(client httpDoer) {
	if client != nil {
		v.client = client
	}
}

// SetEndpoint overrides the siteverify URL.
func (v *Verifier) SetEndpoint(endpoint string) {
	if strings.TrimSpace(endpoint) != "" {
		v.endpoint = endpoint
	}
}

// Enabled reports whether tokens are checked.
func (v *Verifier) Enabled() bool {
	return v != nil && v.enabled
}

// SiteKey is rendered into the login form.
func (v *Verifier) SiteKey() string {
	if v == nil {
		return ""
	}
	return v.siteKey
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks token for the client at remoteIP.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("call captcha service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha service returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode captcha response: %w", err)
	}
	if !result.Success {
		if len(result.ErrorCodes) > 0 {
			return fmt.Errorf("%w: %s", ErrRejected, strings.Join(result.ErrorCodes, ", "))
		}
		return ErrRejected
	}
	return nil
}
