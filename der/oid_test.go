package der

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownOID(t *testing.T) {
	// 2.5.4.3 commonName: 0x55 0x04 0x03
	assert.Equal(t, "commonName", Lookup([]byte{0x55, 0x04, 0x03}))
}

func TestLookupUnknownOID(t *testing.T) {
	assert.Equal(t, UnknownOID, Lookup([]byte{0x2A, 0x03, 0x04}))
}

func TestOidEncoderRoundTripsKnownArcs(t *testing.T) {
	// rsaEncryption 1.2.840.113549.1.1.1, well-known DER bytes.
	want := []byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x01}
	assert.Equal(t, "rsaEncryption", Lookup(want))
}

func TestIsWeakCurveName(t *testing.T) {
	assert.True(t, IsWeakCurveName("prime192v1"))
	assert.True(t, IsWeakCurveName("secp224r1"))
	assert.False(t, IsWeakCurveName("prime256v1"))
	assert.False(t, IsWeakCurveName("secp384r1"))
	assert.False(t, IsWeakCurveName(UnknownOID))
}

func TestEncodeBase128MultiByteArc(t *testing.T) {
	// id-ce-SignedCertificateTimestampList uses arc 11129, a multi-byte
	// base-128 value: 11129 = 0x2B79 -> 0xD6 0x79 (high bit continuation).
	got := encodeBase128(11129)
	assert.Equal(t, []byte{0xD6, 0x79}, got)
}
