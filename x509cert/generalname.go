package x509cert

import (
	"io"

	"github.com/mercury-project/mercury/der"
)

// GeneralName tag numbers (RFC 5280 §4.2.1.6), independent of the
// class/constructed bits encoded in the context tag octet.
const (
	GeneralNameOtherName   = 0
	GeneralNameRFC822Name  = 1
	GeneralNameDNSName     = 2
	GeneralNameX400Address = 3
	GeneralNameDirectory   = 4
	GeneralNameEDIParty    = 5
	GeneralNameURI         = 6
	GeneralNameIPAddress   = 7
	GeneralNameRegisteredID = 8
)

// GeneralName is one CHOICE alternative of a GeneralNames SEQUENCE.
// TagNumber is the CHOICE tag (0..8); TLV is the full context-tagged
// element as decoded (its Value is the IA5String/OCTET
// STRING/SEQUENCE/OID content depending on TagNumber).
type GeneralName struct {
	TagNumber int
	TLV       der.TLV
}

// ParseGeneralName decodes one GeneralName from c.
func ParseGeneralName(c *der.Cursor) (GeneralName, bool) {
	tlv, err := der.DecodeAny(c)
	if err != nil || tlv.IsNull() {
		return GeneralName{}, false
	}
	return GeneralName{TagNumber: int(tlv.Tag & 0x1F), TLV: tlv}, true
}

// EmitJSON writes the single-key JSON object for this GeneralName
// variant. Unrecognized tag numbers (including x400Address, which the
// spec does not name a key for) render as
// {"SAN explicit tag":"HH"}.
func (g GeneralName) EmitJSON(w io.Writer) {
	content := safeBytes(g.TLV)
	switch g.TagNumber {
	case GeneralNameOtherName:
		io.WriteString(w, `{"other_name":`)
		emitOtherName(w, g.TLV.Value)
		io.WriteString(w, "}")
	case GeneralNameRFC822Name:
		io.WriteString(w, `{"rfc822_name":`)
		der.RenderString(w, der.TagIA5String, content)
		io.WriteString(w, "}")
	case GeneralNameDNSName:
		io.WriteString(w, `{"dns_name":`)
		der.RenderString(w, der.TagIA5String, content)
		io.WriteString(w, "}")
	case GeneralNameDirectory:
		io.WriteString(w, `{"directory_name":`)
		inner := g.TLV.Value
		name := ParseName(&inner)
		name.EmitJSON(w)
		io.WriteString(w, "}")
	case GeneralNameEDIParty:
		io.WriteString(w, `{"edi_party_name":`)
		der.RenderHex(w, content)
		io.WriteString(w, "}")
	case GeneralNameURI:
		io.WriteString(w, `{"uri":`)
		der.RenderString(w, der.TagIA5String, content)
		io.WriteString(w, "}")
	case GeneralNameIPAddress:
		io.WriteString(w, `{"ip_address":`)
		der.RenderIPAddress(w, content)
		io.WriteString(w, "}")
	case GeneralNameRegisteredID:
		io.WriteString(w, `{"registered_id":`)
		der.RenderOID(w, content)
		io.WriteString(w, "}")
	default:
		io.WriteString(w, `{"SAN explicit tag":`)
		der.RenderHex(w, []byte{byte(g.TagNumber)})
		io.WriteString(w, "}")
	}
}

// OtherName ::= SEQUENCE { type-id OBJECT IDENTIFIER, value [0] EXPLICIT ANY }
func emitOtherName(w io.Writer, c der.Cursor) {
	typeID, err := der.DecodeExpected(&c, der.TagOID)
	if err != nil || typeID.IsNull() {
		io.WriteString(w, "{}")
		return
	}
	valueTag, err := der.DecodeExpected(&c, der.ContextExplicit(0))
	io.WriteString(w, `{"type_id":`)
	der.RenderOID(w, typeID.Value.Bytes())
	io.WriteString(w, `,"value":`)
	if err != nil || valueTag.IsNull() {
		io.WriteString(w, `""`)
	} else {
		der.RenderHex(w, valueTag.Value.Bytes())
	}
	io.WriteString(w, "}")
}

// parseGeneralNames decodes a GeneralNames SEQUENCE OF GeneralName from
// a SEQUENCE TLV's value cursor.
func parseGeneralNames(c der.Cursor) []GeneralName {
	var names []GeneralName
	for !c.Empty() {
		before := c
		gn, ok := ParseGeneralName(&c)
		if !ok || c.Remaining() == before.Remaining() {
			break
		}
		names = append(names, gn)
	}
	return names
}

func emitGeneralNames(w io.Writer, names []GeneralName) {
	io.WriteString(w, "[")
	for i, n := range names {
		if i > 0 {
			io.WriteString(w, ",")
		}
		n.EmitJSON(w)
	}
	io.WriteString(w, "]")
}
