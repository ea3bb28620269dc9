package x509cert

import (
	"encoding/hex"
	"io"

	"github.com/mercury-project/mercury/der"
)

// CertPrefix decodes only the leading portion of a Certificate needed
// to identify it — serialNumber and issuer — stopping before validity.
// This is a fingerprinting mode: it avoids paying for the rest of the
// certificate when only the issuer and serial number are needed to
// deduplicate or index observations. The issuer is kept as its raw,
// undecoded SEQUENCE bytes rather than a parsed Name: this mode never
// pays for attribute decoding, and emits the issuer as hex.
type CertPrefix struct {
	SerialNumber der.TLV
	IssuerRaw    []byte

	// consumed is the number of prefix bytes read from the original
	// buffer, for EmitJSONHex's cert_prefix hex dump.
	consumed int
	raw      []byte
}

// ParsePrefix decodes a certificate far enough to populate
// serialNumber and issuer, matching parseTBSCertificate's version /
// serialNumber disambiguation exactly so the two modes never disagree
// about which field is which.
func ParsePrefix(buf []byte) CertPrefix {
	c := der.NewCursor(buf)
	outer, err := der.DecodeExpected(&c, der.TagSequence)
	if err != nil || outer.IsNull() {
		return CertPrefix{}
	}
	tbs, err := der.DecodeExpected(&outer.Value, der.TagSequence)
	if err != nil || tbs.IsNull() {
		return CertPrefix{}
	}
	inner := tbs.Value

	versionTag, err := der.DecodeExpected(&inner, der.ContextExplicit(0))
	var serial der.TLV
	if err == nil && !versionTag.IsNull() {
		s, err := der.DecodeExpected(&inner, der.TagInteger)
		if err == nil {
			serial = s
		}
	} else {
		first, err := der.DecodeExpected(&inner, der.TagInteger)
		if err == nil && !first.IsNull() {
			firstBytes := first.Value.Bytes()
			if len(firstBytes) == 1 && firstBytes[0] < 3 {
				s, err := der.DecodeExpected(&inner, der.TagInteger)
				if err == nil {
					serial = s
				}
			} else {
				serial = first
			}
		}
	}

	ParseAlgorithmIdentifier(&inner) // signature AlgorithmIdentifier, discarded

	issuerStart := inner
	_, err = der.DecodeExpected(&inner, der.TagSequence)
	issuerRaw := issuerStart.Bytes()[:issuerStart.Remaining()-inner.Remaining()]

	// Everything left in the TBS, after the TBS inside the outer
	// SEQUENCE, and after the outer SEQUENCE lies beyond the issuer.
	consumed := len(buf) - inner.Remaining() - outer.Value.Remaining() - c.Remaining()
	return CertPrefix{SerialNumber: serial, IssuerRaw: issuerRaw, consumed: consumed, raw: buf}
}

// GetLength returns the number of leading bytes of the original buffer
// that were consumed to decode the prefix.
func (p CertPrefix) GetLength() int {
	return p.consumed
}

// EmitJSON writes {"serial_number":"...","issuer":"..."}, with issuer
// rendered as the hex of its raw, undecoded SEQUENCE bytes.
func (p CertPrefix) EmitJSON(w io.Writer) {
	io.WriteString(w, `{"serial_number":`)
	der.RenderInteger(w, safeBytes(p.SerialNumber))
	io.WriteString(w, `,"issuer":`)
	der.RenderHex(w, p.IssuerRaw)
	io.WriteString(w, "}")
}

// EmitJSONHex writes {"cert_prefix":"<hex of the consumed prefix
// bytes>"}, the raw-bytes rendering mode for callers that want to
// re-feed the prefix elsewhere rather than its decoded fields.
func (p CertPrefix) EmitJSONHex(w io.Writer) {
	io.WriteString(w, `{"cert_prefix":"`)
	io.WriteString(w, hex.EncodeToString(p.raw[:p.consumed]))
	io.WriteString(w, `"}`)
}
