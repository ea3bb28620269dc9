package x509cert

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/mercury-project/mercury/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrefixMatchesFullDecodeS1(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "s1_rsa.der"))
	require.NoError(t, err)

	full := Parse(data)
	prefix := ParsePrefix(data)

	assert.Equal(t, full.SerialNumber.Value.Bytes(), prefix.SerialNumber.Value.Bytes())

	// IssuerRaw is the raw, undecoded issuer SEQUENCE bytes; decoding it
	// independently must agree with the full decode's Issuer.
	rawCursor := der.NewCursor(prefix.IssuerRaw)
	issuerFromRaw := ParseName(&rawCursor)
	assert.Equal(t, full.Issuer.String(), issuerFromRaw.String())
}

func TestParsePrefixAmbiguousVersionAgreesWithFullDecode(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "s2_ambiguous_version.der"))
	require.NoError(t, err)

	full := Parse(data)
	prefix := ParsePrefix(data)

	// The two decode paths must never disagree about which field is the
	// serial number in the version/serialNumber ambiguous case.
	assert.Equal(t, full.SerialNumber.Value.Bytes(), prefix.SerialNumber.Value.Bytes())
}

func TestCertPrefixEmitJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "s1_rsa.der"))
	require.NoError(t, err)

	prefix := ParsePrefix(data)
	var buf bytes.Buffer
	prefix.EmitJSON(&buf)
	assert.Contains(t, buf.String(), `"serial_number":"2df81ef12a0e7ed429034be70397a73732fd817c"`)
	assert.Contains(t, buf.String(), `"issuer":"`+hex.EncodeToString(prefix.IssuerRaw)+`"`)
}

func TestCertPrefixEmitJSONHex(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "s1_rsa.der"))
	require.NoError(t, err)

	prefix := ParsePrefix(data)
	require.Greater(t, prefix.GetLength(), 0)
	require.Less(t, prefix.GetLength(), len(data))

	var buf bytes.Buffer
	prefix.EmitJSONHex(&buf)
	assert.Contains(t, buf.String(), `"cert_prefix":"`)
}
