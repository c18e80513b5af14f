// Package testcert generates a throwaway CA with server and client certificates for tests.
package testcert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Bundle holds PEM encoded material signed by one CA.
type Bundle struct {
	CACert string

	ServerCert string
	ServerKey  string

	caCert *x509.Certificate
	caKey  *ecdsa.PrivateKey
}

// New creates a CA and a server certificate valid for localhost and 127.0.0.1.
func New(t *testing.T) *Bundle {
	t.Helper()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	caTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "prn test ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	require.NoError(t, err)
	caCert, err := x509.ParseCertificate(caDER)
	require.NoError(t, err)

	b := &Bundle{
		CACert: encode("CERTIFICATE", caDER),
		caCert: caCert,
		caKey:  caKey,
	}

	b.ServerCert, b.ServerKey = b.issue(t, 2, &x509.Certificate{
		Subject:     pkix.Name{CommonName: "localhost"},
		DNSNames:    []string{"localhost"},
		IPAddresses: []net.IP{net.ParseIP("127.0.0.1")},
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})

	return b
}

// Client issues a client certificate. A non-empty spiffeID adds the URI SAN spiffe://<spiffeID>.
func (b *Bundle) Client(t *testing.T, spiffeID string) (certPEM, keyPEM string) {
	t.Helper()

	template := &x509.Certificate{
		Subject:     pkix.Name{CommonName: "client"},
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	if spiffeID != "" {
		template.URIs = []*url.URL{{Scheme: "spiffe", Host: spiffeID}}
	}

	return b.issue(t, time.Now().UnixNano(), template)
}

func (b *Bundle) issue(t *testing.T, serial int64, template *x509.Certificate) (certPEM, keyPEM string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template.SerialNumber = big.NewInt(serial)
	template.NotBefore = time.Now().Add(-time.Hour)
	template.NotAfter = time.Now().Add(time.Hour)
	template.KeyUsage = x509.KeyUsageDigitalSignature

	der, err := x509.CreateCertificate(rand.Reader, template, b.caCert, &key.PublicKey, b.caKey)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	return encode("CERTIFICATE", der), encode("EC PRIVATE KEY", keyDER)
}

func encode(blockType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}
