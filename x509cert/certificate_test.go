package x509cert

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", name))
	require.NoError(t, err)
	return data
}

func emitJSON(t *testing.T, cert Certificate) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, cert.EmitJSON(&buf))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), "output must be well-formed JSON: %s", buf.String())
	return out
}

// S1: self-signed RSA v3 certificate.
func TestParseS1SelfSignedRSA(t *testing.T) {
	data := readTestdata(t, "s1_rsa.der")
	cert := Parse(data)
	require.False(t, cert.Malformed)

	assert.Equal(t, int64(2), cert.Version) // v3
	assert.Equal(t, "2df81ef12a0e7ed429034be70397a73732fd817c", hexLowerOf(cert.SerialNumber.Value.Bytes()))
	assert.Equal(t, "example.com", cert.Issuer.String())
	assert.Equal(t, "example.com", cert.Subject.String())
	assert.Equal(t, "rsaEncryption", cert.SPKI.Algorithm.Name())

	out := emitJSON(t, cert)
	validity := out["validity"].([]interface{})
	require.Len(t, validity, 2)
	notBefore := validity[0].(map[string]interface{})
	assert.Equal(t, "2026-08-03T10:49:06Z", notBefore["notBefore"])
	notAfter := validity[1].(map[string]interface{})
	assert.Equal(t, "2027-08-03T10:49:06Z", notAfter["notAfter"])
}

// S2: version/serialNumber disambiguation — a 1-byte INTEGER under 3
// with no explicit [0] tag must be read as the version, and the
// following INTEGER as the real serial number.
func TestParseS2AmbiguousVersionSerialNumber(t *testing.T) {
	data := readTestdata(t, "s2_ambiguous_version.der")
	cert := Parse(data)
	require.False(t, cert.Malformed)

	assert.True(t, cert.HasVersion)
	assert.Equal(t, int64(2), cert.Version)
	assert.Equal(t, []byte{0x2a}, cert.SerialNumber.Value.Bytes())
}

// S3: BasicConstraints cA=true, pathLenConstraint rendered as a
// literal decimal, not hex.
func TestParseS3BasicConstraints(t *testing.T) {
	data := readTestdata(t, "s3_ca.der")
	cert := Parse(data)
	require.False(t, cert.Malformed)

	out := emitJSON(t, cert)
	exts := out["extensions"].([]interface{})
	var found bool
	for _, e := range exts {
		obj := e.(map[string]interface{})
		if bc, ok := obj["BasicConstraints"]; ok {
			found = true
			bcObj := bc.(map[string]interface{})
			assert.Equal(t, true, bcObj["ca"])
			assert.Equal(t, float64(1), bcObj["pathLenConstraint"])
			assert.Equal(t, true, obj["critical"])
		}
	}
	assert.True(t, found, "expected a BasicConstraints extension in output")
}

// S4: SubjectAltName with multiple dNSName entries.
func TestParseS4SubjectAltName(t *testing.T) {
	data := readTestdata(t, "s4_san.der")
	cert := Parse(data)
	require.False(t, cert.Malformed)

	out := emitJSON(t, cert)
	exts := out["extensions"].([]interface{})
	var dnsNames []string
	for _, e := range exts {
		obj := e.(map[string]interface{})
		san, ok := obj["subject_alt_name"]
		if !ok {
			continue
		}
		for _, n := range san.([]interface{}) {
			nObj := n.(map[string]interface{})
			if dns, ok := nObj["dns_name"]; ok {
				dnsNames = append(dnsNames, dns.(string))
			}
		}
	}
	// Order must be preserved exactly as encoded, not just as a set.
	assert.Equal(t, []string{
		"multi.example.com", "www.multi.example.com", "alt.example.com",
	}, dnsNames)
}

// S5: ECDSA on a weak named curve (prime192v1 / secp192r1).
func TestParseS5WeakCurve(t *testing.T) {
	data := readTestdata(t, "s5_ec_weak.der")
	cert := Parse(data)
	require.False(t, cert.Malformed)

	assert.Equal(t, "id-ecPublicKey", cert.SPKI.Algorithm.Name())
	assert.True(t, cert.IsWeak())
}

// S6: a truncated signature BIT STRING must not abort the decode; the
// rest of the certificate still renders.
func TestParseS6TruncatedSignature(t *testing.T) {
	data := readTestdata(t, "s6_truncated_signature.der")
	cert := Parse(data)
	require.False(t, cert.Malformed)
	assert.True(t, cert.Signature.IsNull())

	out := emitJSON(t, cert)
	assert.Equal(t, `""`, mustMarshal(out["signature"]))
}

// A certificate with no extensions must omit the "extensions" key
// entirely, not emit an empty array.
func TestEmitJSONOmitsExtensionsKeyWhenEmpty(t *testing.T) {
	var cert Certificate
	out := emitJSON(t, cert)
	assert.NotContains(t, out, "extensions")
}

// Determinism: encoding the same certificate twice yields byte-identical output.
func TestEmitJSONIsDeterministic(t *testing.T) {
	data := readTestdata(t, "s1_rsa.der")
	cert := Parse(data)

	var a, b bytes.Buffer
	require.NoError(t, cert.EmitJSON(&a))
	require.NoError(t, cert.EmitJSON(&b))
	assert.Equal(t, a.String(), b.String())
}

// Malformed input (not a SEQUENCE at all) must not panic and must be
// flagged, not silently treated as an empty certificate.
func TestParseMalformedInput(t *testing.T) {
	cert := Parse([]byte{0x04, 0x01, 0x00})
	assert.True(t, cert.Malformed)
}

func TestParseEmptyInput(t *testing.T) {
	cert := Parse(nil)
	assert.True(t, cert.Malformed)
}

func hexLowerOf(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

func mustMarshal(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
