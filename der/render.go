package der

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

// jsonString returns s as a JSON string literal, with control
// characters, '"' and '\' escaped, and invalid UTF-8 replaced by the
// Unicode replacement character — exactly the behavior encoding/json
// already gives a Go string, which is why this is the only escaping
// logic in the package.
func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal of a string cannot fail in practice; fall back
		// to an empty string rather than ever propagating a panic.
		return `""`
	}
	return string(b)
}

// RenderHex writes b as a lowercase hex JSON string, e.g. "0a1b".
func RenderHex(w io.Writer, b []byte) {
	fmt.Fprintf(w, "%q", hex.EncodeToString(b))
}

// RenderInteger writes the content bytes of a DER INTEGER as a
// lowercase hex string, preserving any leading zero sign byte exactly
// as encoded.
func RenderInteger(w io.Writer, b []byte) {
	RenderHex(w, b)
}

// RenderOID writes an OBJECT IDENTIFIER's symbolic name if known, else
// its raw content bytes as hex.
func RenderOID(w io.Writer, content []byte) {
	name := Lookup(content)
	if name == UnknownOID {
		RenderHex(w, content)
		return
	}
	fmt.Fprintf(w, "%q", name)
}

// StripBitStringPrefix removes the leading "unused bits" byte from a
// BIT STRING's content and returns the remaining bits as bytes. If b is
// empty it is returned unchanged (a malformed/empty BIT STRING renders
// as an empty byte slice rather than panicking).
func StripBitStringPrefix(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	return b[1:]
}

// RenderBitStringHex writes a BIT STRING's bits (after stripping the
// unused-bits prefix byte) as a hex JSON string.
func RenderBitStringHex(w io.Writer, content []byte) {
	RenderHex(w, StripBitStringPrefix(content))
}

// RenderBitStringFlags writes a BIT STRING's bits (after stripping the
// unused-bits prefix) as a JSON object with one boolean field per
// entry in names, in order, bit 0 first. Bits beyond len(names) are
// ignored; names beyond the bit length are reported false.
func RenderBitStringFlags(w io.Writer, content []byte, names []string) {
	bits := StripBitStringPrefix(content)
	fmt.Fprint(w, "{")
	for i, name := range names {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, "%q:%s", name, boolLiteral(bitSet(bits, i)))
	}
	fmt.Fprint(w, "}")
}

func bitSet(bits []byte, i int) bool {
	byteIdx := i / 8
	if byteIdx >= len(bits) {
		return false
	}
	bitIdx := 7 - (i % 8)
	return bits[byteIdx]&(1<<uint(bitIdx)) != 0
}

func boolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// RenderBoolean writes a DER BOOLEAN's value: true if any content byte
// is non-zero, else false. An empty content (malformed) renders false.
func RenderBoolean(w io.Writer, content []byte) {
	v := false
	for _, b := range content {
		if b != 0 {
			v = true
			break
		}
	}
	fmt.Fprint(w, boolLiteral(v))
}

// BooleanValue reports a DER BOOLEAN's logical value without writing
// anything, for callers that need the value rather than its rendering
// (e.g. BasicConstraints.cA).
func BooleanValue(content []byte) bool {
	for _, b := range content {
		if b != 0 {
			return true
		}
	}
	return false
}

// RenderString writes the content bytes of a character-string type
// (PrintableString, UTF8String, IA5String, TeletexString,
// UniversalString, BMPString) as a JSON string. BMPString content is
// first decoded from UCS-2BE; all others are treated as raw bytes
// reinterpreted as UTF-8 text (matching source behavior — see
// SPEC_FULL.md §11), with invalid sequences replaced per jsonString.
func RenderString(w io.Writer, tag byte, content []byte) {
	if tag == TagBMPString {
		if s, ok := decodeBMPString(content); ok {
			fmt.Fprint(w, jsonString(s))
			return
		}
	}
	fmt.Fprint(w, jsonString(string(content)))
}

// decodeBMPString decodes UCS-2BE content (no BOM) into a Go string. It
// reports ok=false on malformed input rather than erroring, so the
// caller can fall back to raw-byte rendering per the "never abort"
// policy. A fresh decoder is built per call because x/text decoders
// carry transform state, which keeps concurrent calls independent.
func decodeBMPString(content []byte) (string, bool) {
	if len(content)%2 != 0 {
		return "", false
	}
	out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(content)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// RenderUTCTime parses a DER UTCTime ("YYMMDDHHMMSSZ") and writes it as
// an ISO-8601 string. Per X.680, a two-digit year >= 50 means 19YY,
// otherwise 20YY. A malformed value writes JSON null rather than
// erroring.
func RenderUTCTime(w io.Writer, content []byte) {
	t, ok := parseUTCTime(string(content))
	if !ok {
		fmt.Fprint(w, "null")
		return
	}
	fmt.Fprint(w, jsonString(t.Format("2006-01-02T15:04:05Z")))
}

func parseUTCTime(s string) (time.Time, bool) {
	s = strings.TrimSuffix(s, "Z")
	t, err := time.ParseInLocation("060102150405", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	year := t.Year()
	if year >= 2050 {
		year -= 100
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
}

// RenderGeneralizedTime parses a DER GeneralizedTime
// ("YYYYMMDDHHMMSSZ") and writes it as an ISO-8601 string. A malformed
// value writes JSON null rather than erroring.
func RenderGeneralizedTime(w io.Writer, content []byte) {
	s := strings.TrimSuffix(string(content), "Z")
	t, err := time.ParseInLocation("20060102150405", s, time.UTC)
	if err != nil {
		fmt.Fprint(w, "null")
		return
	}
	fmt.Fprint(w, jsonString(t.Format("2006-01-02T15:04:05Z")))
}

// RenderTime writes either a UTCTime or GeneralizedTime value according
// to tag.
func RenderTime(w io.Writer, tag byte, content []byte) {
	switch tag {
	case TagUTCTime:
		RenderUTCTime(w, content)
	case TagGeneralizedTime:
		RenderGeneralizedTime(w, content)
	default:
		fmt.Fprint(w, "null")
	}
}

// RenderIPAddress writes a 4- or 16-byte OCTET STRING as a dotted-quad
// or canonical IPv6 JSON string. Any other length renders as hex,
// since it cannot be a valid iPAddress GeneralName.
func RenderIPAddress(w io.Writer, content []byte) {
	switch len(content) {
	case net.IPv4len, net.IPv6len:
		fmt.Fprintf(w, "%q", net.IP(content).String())
	default:
		RenderHex(w, content)
	}
}
