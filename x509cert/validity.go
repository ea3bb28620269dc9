package x509cert

import (
	"io"

	"github.com/mercury-project/mercury/der"
)

// Validity ::= SEQUENCE {
//
//	notBefore  Time,
//	notAfter   Time }
//
// Time ::= CHOICE { utcTime UTCTime, generalTime GeneralizedTime }
type Validity struct {
	NotBefore der.TLV
	NotAfter  der.TLV
}

// ParseValidity decodes a Validity SEQUENCE.
func ParseValidity(c *der.Cursor) Validity {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return Validity{}
	}
	inner := seq.Value
	notBefore, _ := der.DecodeAny(&inner)
	notAfter, _ := der.DecodeAny(&inner)
	return Validity{NotBefore: notBefore, NotAfter: notAfter}
}

// EmitJSON writes the validity as a two-element array of single-key
// objects: [{"notBefore":"..."},{"notAfter":"..."}].
func (v Validity) EmitJSON(w io.Writer) {
	io.WriteString(w, "[{")
	emitTimeField(w, "notBefore", v.NotBefore)
	io.WriteString(w, "},{")
	emitTimeField(w, "notAfter", v.NotAfter)
	io.WriteString(w, "}]")
}

func emitTimeField(w io.Writer, name string, t der.TLV) {
	io.WriteString(w, `"`+name+`":`)
	if t.Length == 0 && t.Tag != der.TagUTCTime && t.Tag != der.TagGeneralizedTime {
		io.WriteString(w, "null")
		return
	}
	der.RenderTime(w, t.Tag, t.Value.Bytes())
}
