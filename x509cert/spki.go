package x509cert

import (
	"io"

	"github.com/mercury-project/mercury/der"
)

// SubjectPublicKeyInfo ::= SEQUENCE {
//
//	algorithm         AlgorithmIdentifier,
//	subjectPublicKey  BIT STRING }
type SubjectPublicKeyInfo struct {
	Algorithm        AlgorithmIdentifier
	SubjectPublicKey der.TLV // raw BIT STRING TLV, unused-bits byte still present
}

// ParseSubjectPublicKeyInfo decodes a SubjectPublicKeyInfo SEQUENCE.
func ParseSubjectPublicKeyInfo(c *der.Cursor) SubjectPublicKeyInfo {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return SubjectPublicKeyInfo{}
	}
	inner := seq.Value
	algo := ParseAlgorithmIdentifier(&inner)
	key, err := der.DecodeExpected(&inner, der.TagBitString)
	if err != nil {
		return SubjectPublicKeyInfo{Algorithm: algo}
	}
	return SubjectPublicKeyInfo{Algorithm: algo, SubjectPublicKey: key}
}

// rsaPublicKey is RSAPublicKey ::= SEQUENCE { modulus INTEGER, publicExponent INTEGER }.
type rsaPublicKey struct {
	Modulus  der.TLV
	Exponent der.TLV
}

func parseRSAPublicKey(c *der.Cursor) rsaPublicKey {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return rsaPublicKey{}
	}
	inner := seq.Value
	modulus, _ := der.DecodeExpected(&inner, der.TagInteger)
	exponent, _ := der.DecodeExpected(&inner, der.TagInteger)
	return rsaPublicKey{Modulus: modulus, Exponent: exponent}
}

// EmitJSON writes {"algorithm":{...},"subject_public_key":...}. When
// the algorithm is rsaEncryption, subject_public_key is rendered as
// {"modulus":"hex","exponent":"hex"}; when id-ecPublicKey, as the raw
// EC point bytes in hex; otherwise as the raw key bytes in hex.
func (s SubjectPublicKeyInfo) EmitJSON(w io.Writer) {
	io.WriteString(w, `{"algorithm":`)
	s.Algorithm.EmitJSON(w)
	io.WriteString(w, `,"subject_public_key":`)

	keyBytes := der.StripBitStringPrefix(safeBytes(s.SubjectPublicKey))
	switch s.Algorithm.Name() {
	case "rsaEncryption":
		keyCursor := der.NewCursor(keyBytes)
		pub := parseRSAPublicKey(&keyCursor)
		io.WriteString(w, `{"modulus":`)
		der.RenderInteger(w, safeBytes(pub.Modulus))
		io.WriteString(w, `,"exponent":`)
		der.RenderInteger(w, safeBytes(pub.Exponent))
		io.WriteString(w, "}")
	case "id-ecPublicKey":
		der.RenderHex(w, keyBytes)
	default:
		der.RenderHex(w, keyBytes)
	}
	io.WriteString(w, "}")
}
