package config

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
)

// Enabled reports whether mutual TLS is configured.
func (t *TLS) Enabled() bool {
	return t != nil && t.Cert != "" && t.Key != "" && t.CACert != ""
}

// Validate rejects a partially configured TLS section.
func (t *TLS) Validate() error {
	if t == nil || t.Enabled() {
		return nil
	}

	set := 0
	for _, v := range []string{t.Cert, t.Key, t.CACert} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 0 {
		return errors.New("mutual TLS requires all of tls_cert, tls_key and ca_tls_cert")
	}

	return nil
}

// ServerConfig builds a TLS config that requires and verifies client certificates.
func (t *TLS) ServerConfig() (*tls.Config, error) {
	cert, caPool, err := t.load()
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		ClientCAs:    caPool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS13,
	}, nil
}

// ClientConfig builds a TLS config presenting the client certificate.
func (t *TLS) ClientConfig() (*tls.Config, error) {
	cert, caPool, err := t.load()
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS13,
	}, nil
}

func (t *TLS) load() (tls.Certificate, *x509.CertPool, error) {
	if !t.Enabled() {
		return tls.Certificate{}, nil, errors.New("missing TLS configuration; require tls_cert, tls_key and ca_tls_cert")
	}

	cert, err := tls.X509KeyPair([]byte(t.Cert), []byte(t.Key))
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("failed to load key pair: %w", err)
	}

	caPool := x509.NewCertPool()
	if ok := caPool.AppendCertsFromPEM([]byte(t.CACert)); !ok {
		return tls.Certificate{}, nil, errors.New("failed to append CA certificate to pool")
	}

	return cert, caPool, nil
}
