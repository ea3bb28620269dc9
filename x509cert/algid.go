package x509cert

import (
	"io"

	"github.com/mercury-project/mercury/der"
)

// AlgorithmIdentifier ::= SEQUENCE {
//
//	algorithm   OBJECT IDENTIFIER,
//	parameters  ANY DEFINED BY algorithm OPTIONAL }
type AlgorithmIdentifier struct {
	Algorithm  der.TLV
	Parameters der.TLV // zero value if absent
}

// ParseAlgorithmIdentifier decodes an AlgorithmIdentifier SEQUENCE.
func ParseAlgorithmIdentifier(c *der.Cursor) AlgorithmIdentifier {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return AlgorithmIdentifier{}
	}
	inner := seq.Value
	algo, err := der.DecodeExpected(&inner, der.TagOID)
	if err != nil || algo.IsNull() {
		return AlgorithmIdentifier{}
	}
	var params der.TLV
	if !inner.Empty() {
		params, _ = der.DecodeAny(&inner)
	}
	return AlgorithmIdentifier{Algorithm: algo, Parameters: params}
}

// Name returns the algorithm OID's symbolic name, or der.UnknownOID.
func (a AlgorithmIdentifier) Name() string {
	if a.Algorithm.Length == 0 {
		return der.UnknownOID
	}
	return der.Lookup(a.Algorithm.Value.Bytes())
}

// ParameterName returns the parameters' symbolic OID name if
// parameters are themselves an OBJECT IDENTIFIER (e.g. an EC curve
// name), or "" otherwise.
func (a AlgorithmIdentifier) ParameterName() string {
	if a.Parameters.Tag != der.TagOID {
		return ""
	}
	return der.Lookup(a.Parameters.Value.Bytes())
}

// EmitJSON writes {"algorithm":"<name>"[,"parameters":...]}.
func (a AlgorithmIdentifier) EmitJSON(w io.Writer) {
	io.WriteString(w, `{"algorithm":`)
	der.RenderOID(w, safeBytes(a.Algorithm))
	if a.Parameters.Length > 0 || a.Parameters.Tag == der.TagNull {
		io.WriteString(w, `,"parameters":`)
		if a.Parameters.Tag == der.TagOID {
			der.RenderOID(w, a.Parameters.Value.Bytes())
		} else {
			der.RenderHex(w, a.Parameters.Value.Bytes())
		}
	}
	io.WriteString(w, "}")
}

func safeBytes(t der.TLV) []byte {
	if t.Length == 0 {
		return nil
	}
	return t.Value.Bytes()
}
