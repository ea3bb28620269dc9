// Package x509cert implements the RFC 5280 X.509 certificate grammar
// on top of package der, and assembles a fully-decoded certificate into
// newline-delimited JSON. Every Parse* function follows the same shape:
// it reads what it can from a *der.Cursor and returns a populated
// struct, leaving fields at their zero value when a sub-element is
// malformed or absent rather than aborting the whole decode.
package x509cert

import (
	"io"

	"github.com/mercury-project/mercury/der"
)

// Attribute is one AttributeTypeAndValue inside a RelativeDistinguishedName:
//
//	AttributeTypeAndValue ::= SEQUENCE {
//	    type     AttributeType,
//	    value    AttributeValue }
type Attribute struct {
	TypeOID der.TLV
	Value   der.TLV
}

// ParseAttribute decodes one AttributeTypeAndValue SEQUENCE from c. If
// the SEQUENCE, its OID, or its value fail to decode, the returned
// Attribute has a zero TypeOID or Value (EmitJSON then renders "{}").
func ParseAttribute(c *der.Cursor) Attribute {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return Attribute{}
	}
	inner := seq.Value
	typeOID, err := der.DecodeExpected(&inner, der.TagOID)
	if err != nil || typeOID.IsNull() {
		return Attribute{}
	}
	value, err := der.DecodeAny(&inner)
	if err != nil {
		return Attribute{}
	}
	return Attribute{TypeOID: typeOID, Value: value}
}

// EmitJSON writes the attribute as a single-key JSON object keyed by
// the attribute type's symbolic OID name, e.g.
// {"commonName":"example.com"}. An attribute type not in the OID
// dictionary is keyed "unknown_oid", with the value's content bytes
// rendered as hex, e.g. {"unknown_oid":"78"}. An attribute with an
// empty type or value renders as {}, never aborting the enclosing Name.
func (a Attribute) EmitJSON(w io.Writer) {
	if a.TypeOID.Length == 0 || a.Value.Length == 0 {
		io.WriteString(w, "{}")
		return
	}
	name := der.Lookup(a.TypeOID.Value.Bytes())
	io.WriteString(w, "{")
	if name != der.UnknownOID {
		quoteKey(w, name)
		io.WriteString(w, ":")
		der.RenderString(w, a.Value.Tag, a.Value.Value.Bytes())
	} else {
		io.WriteString(w, `"unknown_oid":`)
		der.RenderHex(w, a.Value.Value.Bytes())
	}
	io.WriteString(w, "}")
}

func quoteKey(w io.Writer, s string) {
	// attribute names come only from der.Lookup, which returns Go
	// string literals with no characters needing JSON escaping; a
	// plain quote avoids pulling encoding/json into the hot path.
	io.WriteString(w, `"`+s+`"`)
}

// Name is an ordered sequence of Attributes decoded from an
// RDNSequence (SEQUENCE OF SET OF AttributeTypeAndValue), in input
// order.
type Name struct {
	Attributes []Attribute
}

// ParseName decodes an RDNSequence from c.
func ParseName(c *der.Cursor) Name {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return Name{}
	}
	var n Name
	inner := seq.Value
	for !inner.Empty() {
		set, err := der.DecodeExpected(&inner, der.TagSet)
		if err != nil || set.IsNull() {
			break
		}
		rdn := set.Value
		for !rdn.Empty() {
			before := rdn
			attr := ParseAttribute(&rdn)
			if rdn.Remaining() == before.Remaining() {
				// no forward progress: stop to avoid looping forever
				// on malformed input.
				break
			}
			n.Attributes = append(n.Attributes, attr)
		}
	}
	return n
}

// EmitJSON writes the Name as a JSON array of single-key attribute
// objects, in input order.
func (n Name) EmitJSON(w io.Writer) {
	io.WriteString(w, "[")
	for i, a := range n.Attributes {
		if i > 0 {
			io.WriteString(w, ",")
		}
		a.EmitJSON(w)
	}
	io.WriteString(w, "]")
}

// String returns the first commonName attribute's value, or "" if
// none is present, as a convenience for tests and log lines.
func (n Name) String() string {
	for _, a := range n.Attributes {
		if der.Lookup(a.TypeOID.Value.Bytes()) == "commonName" {
			return string(a.Value.Value.Bytes())
		}
	}
	return ""
}
