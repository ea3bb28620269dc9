package x509cert

import (
	"bytes"
	"testing"

	"github.com/mercury-project/mercury/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extensionTLV(oidContent []byte, critical bool, value []byte) []byte {
	parts := [][]byte{oidBytes(oidContent)}
	if critical {
		parts = append(parts, tlvBytes(der.TagBoolean, []byte{0xFF}))
	}
	parts = append(parts, tlvBytes(der.TagOctetString, value))
	return seq(parts...)
}

const basicConstraintsOID = "\x55\x1d\x13" // 2.5.29.19

func TestParseExtensionsExplicitTag(t *testing.T) {
	bc := seq(tlvBytes(der.TagBoolean, []byte{0xFF}), tlvBytes(der.TagInteger, []byte{0x03}))
	ext := extensionTLV([]byte(basicConstraintsOID), true, bc)
	body := tlvBytes(der.ContextExplicit(3), seq(ext))

	c := der.NewCursor(body)
	exts := ParseExtensions(&c)
	require.Len(t, exts, 1)
	assert.True(t, exts[0].Critical)
	assert.Equal(t, "id-ce-basicConstraints", exts[0].Name())
}

func TestParseExtensionsToleratesBareSequence(t *testing.T) {
	bc := seq(tlvBytes(der.TagBoolean, []byte{0xFF}))
	ext := extensionTLV([]byte(basicConstraintsOID), false, bc)
	body := seq(ext) // no [3] EXPLICIT wrapper

	c := der.NewCursor(body)
	exts := ParseExtensions(&c)
	require.Len(t, exts, 1)
	assert.False(t, exts[0].Critical)
}

func TestExtensionEmitJSONBasicConstraints(t *testing.T) {
	bc := seq(tlvBytes(der.TagBoolean, []byte{0xFF}), tlvBytes(der.TagInteger, []byte{0x03}))
	ext := extensionTLV([]byte(basicConstraintsOID), true, bc)
	body := seq(ext)

	c := der.NewCursor(body)
	exts := ParseExtensions(&c)
	require.Len(t, exts, 1)

	var buf bytes.Buffer
	exts[0].EmitJSON(&buf)
	assert.JSONEq(t, `{
		"id-ce-basicConstraints":"30060101ff020103",
		"critical":true,
		"BasicConstraints":{"ca":true,"pathLenConstraint":3}
	}`, buf.String())
}

func TestEmitKeyUsageBitFlags(t *testing.T) {
	// digitalSignature (bit0) and keyCertSign (bit5) set: 0b10000100 = 0x84
	bits := tlvBytes(der.TagBitString, []byte{0x02, 0x84})
	c := der.NewCursor(bits)
	var buf bytes.Buffer
	emitKeyUsage(&buf, &c)
	assert.JSONEq(t, `{
		"digital_signature":true,"non_repudiation":false,"key_encipherment":false,
		"data_encipherment":false,"key_agreement":false,"key_cert_sign":true,
		"crl_sign":false,"encipher_only":false,"decipher_only":false
	}`, buf.String())
}

func TestEmitExtKeyUsage(t *testing.T) {
	// id-kp-serverAuth (1.3.6.1.5.5.7.3.1) is not in the OID dictionary,
	// so it must render as the hex of its raw content bytes.
	serverAuth := []byte{0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x03, 0x01}
	body := seq(oidBytes(serverAuth))
	c := der.NewCursor(body)
	var buf bytes.Buffer
	emitExtKeyUsage(&buf, &c)
	assert.JSONEq(t, `["2b06010505070301"]`, buf.String())
}

func TestParseNameConstraintsBothSubtrees(t *testing.T) {
	permittedName := tlvBytes(der.ContextImplicit(GeneralNameDNSName), []byte("permitted.example.com"))
	excludedName := tlvBytes(der.ContextImplicit(GeneralNameDNSName), []byte("excluded.example.com"))
	permittedSubtree := seq(permittedName)
	excludedSubtree := seq(excludedName)
	// [n] IMPLICIT GeneralSubtrees reuses the context tag in place of the
	// SEQUENCE OF's own tag, so the content is the concatenation of
	// GeneralSubtree elements directly, not wrapped in another SEQUENCE.
	permitted := tlvBytes(der.ContextImplicitConstructed(0), permittedSubtree)
	excluded := tlvBytes(der.ContextImplicitConstructed(1), excludedSubtree)

	c := der.NewCursor(append(append([]byte{}, permitted...), excluded...))
	nc := parseNameConstraints(&c)
	require.Len(t, nc.Permitted, 1)
	require.Len(t, nc.Excluded, 1)

	var buf bytes.Buffer
	nc.EmitJSON(&buf)
	assert.JSONEq(t, `{
		"permitted_subtrees":[{"base":{"dns_name":"permitted.example.com"},"minimum":0}],
		"excluded_subtrees":[{"base":{"dns_name":"excluded.example.com"},"minimum":0}]
	}`, buf.String())
}

func TestParseAuthorityKeyIdentifier(t *testing.T) {
	kid := tlvBytes(der.ContextImplicit(0), []byte{0xAA, 0xBB})
	c := der.NewCursor(kid)
	aki := parseAuthorityKeyIdentifier(&c)

	var buf bytes.Buffer
	aki.EmitJSON(&buf)
	assert.JSONEq(t, `{"key_identifier":"aabb"}`, buf.String())
}
