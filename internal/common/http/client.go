// internal/common/http/client.go
package http

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// TrustMode selects how server certificates are verified.
type TrustMode string

const (
	TrustSystem     TrustMode = "system"
	TrustSkipVerify TrustMode = "skip-verify"
	TrustCustomCA   TrustMode = "custom-ca"
)

var ErrCABundle = errors.New("CA bundle unusable")

// TLSOptions mirrors the two translator TLS settings. SkipVerify wins over CABundle.
type TLSOptions struct {
	SkipVerify bool
	CABundle   string
}

// Mode reports which trust mode the options resolve to.
func (o TLSOptions) Mode() TrustMode {
	switch {
	case o.SkipVerify:
		return TrustSkipVerify
	case o.CABundle != "":
		return TrustCustomCA
	default:
		return TrustSystem
	}
}

// TLSConfig builds the tls.Config for the resolved mode. System mode returns nil
// so the transport keeps Go's default verification against the host store.
func (o TLSOptions) TLSConfig() (*tls.Config, error) {
	switch o.Mode() {
	case TrustSkipVerify:
		return &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}, nil //nolint:gosec // explicit opt-in
	case TrustCustomCA:
		pem, err := os.ReadFile(o.CABundle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCABundle, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: no PEM certificates in %s", ErrCABundle, o.CABundle)
		}
		return &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
	default:
		return nil, nil
	}
}

type Client struct {
	resty *resty.Client
	mode  TrustMode
}

// NewClient returns a client whose every request is bounded by timeout.
func NewClient(timeout time.Duration, opts TLSOptions) (*Client, error) {
	tlsConfig, err := opts.TLSConfig()
	if err != nil {
		return nil, err
	}

	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "canara-formfill/1.0")
	if tlsConfig != nil {
		rc.SetTLSClientConfig(tlsConfig)
	}

	return &Client{resty: rc, mode: opts.Mode()}, nil
}

// R starts a new request.
func (c *Client) R() *resty.Request {
	return c.resty.R()
}

// Mode reports the trust mode the client was built with.
func (c *Client) Mode() TrustMode {
	return c.mode
}
