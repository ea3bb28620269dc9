package x509cert

import (
	"io"

	"github.com/mercury-project/mercury/der"
)

// Certificate is a fully-decoded X.509 Certificate:
//
//	Certificate  ::= SEQUENCE {
//	    tbsCertificate       TBSCertificate,
//	    signatureAlgorithm   AlgorithmIdentifier,
//	    signatureValue       BIT STRING }
//
//	TBSCertificate  ::= SEQUENCE {
//	    version         [0] EXPLICIT Version DEFAULT v1,
//	    serialNumber        CertificateSerialNumber,
//	    signature           AlgorithmIdentifier,
//	    issuer              Name,
//	    validity            Validity,
//	    subject             Name,
//	    subjectPublicKeyInfo SubjectPublicKeyInfo,
//	    issuerUniqueID  [1] IMPLICIT UniqueIdentifier OPTIONAL,
//	    subjectUniqueID [2] IMPLICIT UniqueIdentifier OPTIONAL,
//	    extensions      [3] EXPLICIT Extensions OPTIONAL }
type Certificate struct {
	Version      int64 // defaults to 0 (v1) when absent
	HasVersion   bool
	SerialNumber der.TLV

	TBSSignature AlgorithmIdentifier
	Issuer       Name
	Validity     Validity
	Subject      Name
	SPKI         SubjectPublicKeyInfo

	IssuerUniqueID  der.TLV
	SubjectUniqueID der.TLV

	Extensions []Extension

	SignatureAlgorithm AlgorithmIdentifier
	Signature          der.TLV

	// Malformed is set when the outer Certificate SEQUENCE or its
	// TBSCertificate could not be decoded at all; EmitJSON still
	// produces a best-effort object in that case rather than erroring.
	Malformed bool
}

// Parse decodes a DER-encoded Certificate from buf. It never returns an
// error: a TBSCertificate or outer field that fails to decode simply
// leaves the corresponding struct field at its zero value, matching
// the "never abort" decoding policy documented in SPEC_FULL.md §6.5.
func Parse(buf []byte) Certificate {
	c := der.NewCursor(buf)
	outer, err := der.DecodeExpected(&c, der.TagSequence)
	if err != nil || outer.IsNull() {
		return Certificate{Malformed: true}
	}
	outerCursor := outer.Value

	tbs, err := der.DecodeExpected(&outerCursor, der.TagSequence)
	if err != nil || tbs.IsNull() {
		return Certificate{Malformed: true}
	}
	cert := parseTBSCertificate(tbs.Value)

	cert.SignatureAlgorithm = ParseAlgorithmIdentifier(&outerCursor)
	sig, err := der.DecodeExpected(&outerCursor, der.TagBitString)
	if err == nil {
		cert.Signature = sig
	}
	return cert
}

func parseTBSCertificate(c der.Cursor) Certificate {
	var cert Certificate

	// An explicit [0] tag is unambiguous. Absent that, the next INTEGER
	// is read; a length-1 value under 3 is (deliberately, ambiguously)
	// treated as the version, in which case a further INTEGER supplies
	// the serial number. Not "fixed" to be less ambiguous — some
	// certificates in the wild rely on this exact reading.
	versionTag, err := der.DecodeExpected(&c, der.ContextExplicit(0))
	if err == nil && !versionTag.IsNull() {
		inner := versionTag.Value
		v, err := der.DecodeExpected(&inner, der.TagInteger)
		if err == nil && !v.IsNull() {
			cert.Version = int64(uintFromBytes(v.Value.Bytes()))
			cert.HasVersion = true
		}
		serial, err := der.DecodeExpected(&c, der.TagInteger)
		if err == nil {
			cert.SerialNumber = serial
		}
	} else {
		first, err := der.DecodeExpected(&c, der.TagInteger)
		if err == nil && !first.IsNull() {
			firstBytes := first.Value.Bytes()
			if len(firstBytes) == 1 && firstBytes[0] < 3 {
				cert.Version = int64(firstBytes[0])
				cert.HasVersion = true
				serial, err := der.DecodeExpected(&c, der.TagInteger)
				if err == nil {
					cert.SerialNumber = serial
				}
			} else {
				cert.SerialNumber = first
			}
		}
	}

	cert.TBSSignature = ParseAlgorithmIdentifier(&c)
	cert.Issuer = ParseName(&c)
	cert.Validity = ParseValidity(&c)
	cert.Subject = ParseName(&c)
	cert.SPKI = ParseSubjectPublicKeyInfo(&c)

	if iu, err := der.DecodeExpected(&c, der.ContextImplicit(1)); err == nil && !iu.IsNull() {
		cert.IssuerUniqueID = iu
	}
	if su, err := der.DecodeExpected(&c, der.ContextImplicit(2)); err == nil && !su.IsNull() {
		cert.SubjectUniqueID = su
	}

	cert.Extensions = ParseExtensions(&c)
	return cert
}

// IsWeak reports whether the certificate's public key uses a
// cryptographically weak named elliptic curve.
func (cert Certificate) IsWeak() bool {
	if cert.SPKI.Algorithm.Name() != "id-ecPublicKey" {
		return false
	}
	return der.IsWeakCurveName(cert.SPKI.Algorithm.ParameterName())
}

// EmitJSON writes the certificate as a single-line JSON object: serial_number,
// issuer, validity, subject, subject_public_key_info, extensions,
// signature_algorithm, signature, in that field order.
func (cert Certificate) EmitJSON(w io.Writer) error {
	io.WriteString(w, "{")
	io.WriteString(w, `"serial_number":`)
	der.RenderInteger(w, safeBytes(cert.SerialNumber))

	io.WriteString(w, `,"issuer":`)
	cert.Issuer.EmitJSON(w)

	io.WriteString(w, `,"validity":`)
	cert.Validity.EmitJSON(w)

	io.WriteString(w, `,"subject":`)
	cert.Subject.EmitJSON(w)

	io.WriteString(w, `,"subject_public_key_info":`)
	cert.SPKI.EmitJSON(w)

	if len(cert.Extensions) > 0 {
		io.WriteString(w, `,"extensions":[`)
		for i, e := range cert.Extensions {
			if i > 0 {
				io.WriteString(w, ",")
			}
			e.EmitJSON(w)
		}
		io.WriteString(w, "]")
	}

	io.WriteString(w, `,"signature_algorithm":`)
	cert.SignatureAlgorithm.EmitJSON(w)

	io.WriteString(w, `,"signature":`)
	der.RenderBitStringHex(w, safeBytes(cert.Signature))

	io.WriteString(w, "}")
	return nil
}
