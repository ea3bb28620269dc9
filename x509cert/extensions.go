package x509cert

import (
	"fmt"
	"io"

	"github.com/mercury-project/mercury/der"
)

// Extension ::= SEQUENCE {
//
//	extnID     OBJECT IDENTIFIER,
//	critical   BOOLEAN DEFAULT FALSE,
//	extnValue  OCTET STRING }
type Extension struct {
	ExtnID   der.TLV
	Critical bool
	ExtnValue der.TLV // the OCTET STRING TLV; .Value is the embedded DER content
}

// ParseExtensions decodes the Extensions field of a TBSCertificate. It
// accepts both the correctly-tagged "[3] EXPLICIT SEQUENCE OF
// Extension" form and a tolerant path that accepts a bare SEQUENCE OF
// Extension with the explicit tag absent.
func ParseExtensions(c *der.Cursor) []Extension {
	tagged, err := der.DecodeExpected(c, der.ContextExplicit(3))
	var seqCursor der.Cursor
	if err == nil && !tagged.IsNull() {
		inner := tagged.Value
		seq, err := der.DecodeExpected(&inner, der.TagSequence)
		if err != nil || seq.IsNull() {
			return nil
		}
		seqCursor = seq.Value
	} else {
		seq, err := der.DecodeExpected(c, der.TagSequence)
		if err != nil || seq.IsNull() {
			return nil
		}
		seqCursor = seq.Value
	}

	var exts []Extension
	for !seqCursor.Empty() {
		before := seqCursor
		ext, ok := parseExtension(&seqCursor)
		if !ok || seqCursor.Remaining() == before.Remaining() {
			break
		}
		exts = append(exts, ext)
	}
	return exts
}

func parseExtension(c *der.Cursor) (Extension, bool) {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return Extension{}, false
	}
	inner := seq.Value
	extnID, err := der.DecodeExpected(&inner, der.TagOID)
	if err != nil || extnID.IsNull() {
		return Extension{}, false
	}
	critical := false
	next, err := der.DecodeAny(&inner)
	if err != nil {
		return Extension{}, false
	}
	if next.Tag == der.TagBoolean {
		critical = der.BooleanValue(next.Value.Bytes())
		next, err = der.DecodeAny(&inner)
		if err != nil {
			return Extension{}, false
		}
	}
	return Extension{ExtnID: extnID, Critical: critical, ExtnValue: next}, true
}

// Name returns the extension's symbolic OID name, or der.UnknownOID.
func (e Extension) Name() string {
	return der.Lookup(e.ExtnID.Value.Bytes())
}

// EmitJSON writes one extensions-array element:
//
//	{"<oid-name>":"<hex of extnValue>","critical":bool[,"<TypedKey>":{...}]}
//
// Recognized extension OIDs additionally contribute a typed body under
// a conventional key, merged into the same object.
func (e Extension) EmitJSON(w io.Writer) {
	name := e.Name()
	io.WriteString(w, "{")
	if name == der.UnknownOID {
		io.WriteString(w, `"unknown_oid":`)
	} else {
		fmt.Fprintf(w, "%q:", name)
	}
	der.RenderHex(w, safeBytes(e.ExtnValue))
	fmt.Fprintf(w, `,"critical":%t`, e.Critical)

	body := der.NewCursor(safeBytes(e.ExtnValue))
	switch name {
	case "id-ce-basicConstraints":
		io.WriteString(w, `,"BasicConstraints":`)
		fields := sequenceContent(&body)
		parseBasicConstraints(&fields).EmitJSON(w)
	case "id-ce-keyUsage":
		io.WriteString(w, `,"key_usage":`)
		emitKeyUsage(w, &body)
	case "id-ce-extKeyUsage":
		io.WriteString(w, `,"ext_key_usage":`)
		emitExtKeyUsage(w, &body)
	case "id-ce-subjectAltName":
		io.WriteString(w, `,"subject_alt_name":`)
		emitGeneralNames(w, parseGeneralNamesSequence(&body))
	case "id-ce-issuerAltName":
		io.WriteString(w, `,"issuer_alt_name":`)
		emitGeneralNames(w, parseGeneralNamesSequence(&body))
	case "id-ce-cRLDistributionPoints":
		io.WriteString(w, `,"crl_distribution_points":`)
		parseCRLDistributionPoints(&body).EmitJSON(w)
	case "id-ce-certificatePolicies":
		io.WriteString(w, `,"certificate_policies":`)
		parseCertificatePolicies(&body).EmitJSON(w)
	case "id-ce-privateKeyUsagePeriod":
		io.WriteString(w, `,"private_key_usage_period":`)
		fields := sequenceContent(&body)
		parsePrivateKeyUsagePeriod(&fields).EmitJSON(w)
	case "id-ce-authorityKeyIdentifier":
		io.WriteString(w, `,"authority_key_identifier":`)
		fields := sequenceContent(&body)
		parseAuthorityKeyIdentifier(&fields).EmitJSON(w)
	case "id-ce-nameConstraints":
		io.WriteString(w, `,"name_constraints":`)
		fields := sequenceContent(&body)
		parseNameConstraints(&fields).EmitJSON(w)
	case "id-ce-SignedCertificateTimestampList":
		io.WriteString(w, `,"signed_certificate_timestamp_list":`)
		der.RenderHex(w, body.Bytes())
	case "id-ce-subjectKeyIdentifier":
		io.WriteString(w, `,"subject_key_identifier":`)
		der.RenderHex(w, body.Bytes())
	}
	io.WriteString(w, "}")
}

// sequenceContent returns the content of the SEQUENCE at the front of
// c, or an empty cursor if c does not start with one.
func sequenceContent(c *der.Cursor) der.Cursor {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return der.Cursor{}
	}
	return seq.Value
}

func parseGeneralNamesSequence(c *der.Cursor) []GeneralName {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return nil
	}
	return parseGeneralNames(seq.Value)
}

// --- BasicConstraints ---

type basicConstraints struct {
	CA                bool
	PathLenConstraint uint64
}

func parseBasicConstraints(c *der.Cursor) basicConstraints {
	var bc basicConstraints
	ca, err := der.DecodeExpected(c, der.TagBoolean)
	if err == nil && !ca.IsNull() {
		bc.CA = der.BooleanValue(ca.Value.Bytes())
	}
	pathLen, err := der.DecodeExpected(c, der.TagInteger)
	if err == nil && !pathLen.IsNull() {
		bc.PathLenConstraint = uintFromBytes(pathLen.Value.Bytes())
	}
	return bc
}

func (bc basicConstraints) EmitJSON(w io.Writer) {
	fmt.Fprintf(w, `{"ca":%t,"pathLenConstraint":%d}`, bc.CA, bc.PathLenConstraint)
}

func uintFromBytes(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// --- KeyUsage ---

var keyUsageFlagNames = []string{
	"digital_signature",
	"non_repudiation",
	"key_encipherment",
	"data_encipherment",
	"key_agreement",
	"key_cert_sign",
	"crl_sign",
	"encipher_only",
	"decipher_only",
}

func emitKeyUsage(w io.Writer, c *der.Cursor) {
	bits, err := der.DecodeExpected(c, der.TagBitString)
	if err != nil || bits.IsNull() {
		der.RenderBitStringFlags(w, nil, keyUsageFlagNames)
		return
	}
	der.RenderBitStringFlags(w, bits.Value.Bytes(), keyUsageFlagNames)
}

// --- ExtKeyUsage ---

func emitExtKeyUsage(w io.Writer, c *der.Cursor) {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	io.WriteString(w, "[")
	if err == nil && !seq.IsNull() {
		inner := seq.Value
		first := true
		for !inner.Empty() {
			before := inner
			oid, err := der.DecodeExpected(&inner, der.TagOID)
			if err != nil || oid.IsNull() || inner.Remaining() == before.Remaining() {
				break
			}
			if !first {
				io.WriteString(w, ",")
			}
			first = false
			der.RenderOID(w, oid.Value.Bytes())
		}
	}
	io.WriteString(w, "]")
}

// --- CRLDistributionPoints ---

type distributionPointName struct {
	FullName                []GeneralName
	NameRelativeToCRLIssuer []Attribute
	hasFullName             bool
	hasRDN                  bool
}

type distributionPoint struct {
	Name distributionPointName
	// Reasons and CRLIssuer are parsed but intentionally not rendered,
	// matching source behavior; see SPEC_FULL.md Open Questions.
	Reasons   der.TLV
	CRLIssuer der.TLV
}

func parseDistributionPoint(c *der.Cursor) distributionPoint {
	var dp distributionPoint
	for !c.Empty() {
		before := *c
		nameTag, err := der.DecodeExpected(c, der.ContextExplicit(0))
		if err == nil && !nameTag.IsNull() {
			dp.Name = parseDistributionPointName(nameTag.Value)
			continue
		}
		reasons, err := der.DecodeExpected(c, der.ContextImplicit(1))
		if err == nil && !reasons.IsNull() {
			dp.Reasons = reasons
			continue
		}
		issuer, err := der.DecodeExpected(c, der.ContextImplicitConstructed(2))
		if err == nil && !issuer.IsNull() {
			dp.CRLIssuer = issuer
			continue
		}
		// unrecognized field: skip one TLV to make progress.
		if _, err := der.DecodeAny(c); err != nil || c.Remaining() == before.Remaining() {
			break
		}
	}
	return dp
}

// DistributionPointName ::= CHOICE {
//
//	fullName                [0] GeneralNames,
//	nameRelativeToCRLIssuer [1] RelativeDistinguishedName }
func parseDistributionPointName(c der.Cursor) distributionPointName {
	var n distributionPointName
	full, err := der.DecodeExpected(&c, der.ContextImplicitConstructed(0))
	if err == nil && !full.IsNull() {
		n.FullName = parseGeneralNames(full.Value)
		n.hasFullName = true
		return n
	}
	rdn, err := der.DecodeExpected(&c, der.ContextImplicitConstructed(1))
	if err == nil && !rdn.IsNull() {
		inner := rdn.Value
		for !inner.Empty() {
			before := inner
			attr := ParseAttribute(&inner)
			if inner.Remaining() == before.Remaining() {
				break
			}
			n.NameRelativeToCRLIssuer = append(n.NameRelativeToCRLIssuer, attr)
		}
		n.hasRDN = true
	}
	return n
}

func (n distributionPointName) EmitJSON(w io.Writer) {
	switch {
	case n.hasFullName:
		io.WriteString(w, `{"full_name":`)
		emitGeneralNames(w, n.FullName)
		io.WriteString(w, "}")
	case n.hasRDN:
		io.WriteString(w, `{"name_relative_to_crl_issuer":[`)
		for i, a := range n.NameRelativeToCRLIssuer {
			if i > 0 {
				io.WriteString(w, ",")
			}
			a.EmitJSON(w)
		}
		io.WriteString(w, "]}")
	default:
		io.WriteString(w, "{}")
	}
}

func (dp distributionPoint) EmitJSON(w io.Writer) {
	io.WriteString(w, `{"distribution_point_name":`)
	dp.Name.EmitJSON(w)
	io.WriteString(w, "}")
}

type crlDistributionPoints struct {
	Points []distributionPoint
}

func parseCRLDistributionPoints(c *der.Cursor) crlDistributionPoints {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return crlDistributionPoints{}
	}
	var out crlDistributionPoints
	inner := seq.Value
	for !inner.Empty() {
		before := inner
		dpSeq, err := der.DecodeExpected(&inner, der.TagSequence)
		if err != nil || dpSeq.IsNull() || inner.Remaining() == before.Remaining() {
			break
		}
		dpCursor := dpSeq.Value
		out.Points = append(out.Points, parseDistributionPoint(&dpCursor))
	}
	return out
}

func (c crlDistributionPoints) EmitJSON(w io.Writer) {
	io.WriteString(w, "[")
	for i, dp := range c.Points {
		if i > 0 {
			io.WriteString(w, ",")
		}
		dp.EmitJSON(w)
	}
	io.WriteString(w, "]")
}

// --- CertificatePolicies ---

type policyQualifierInfo struct {
	QualifierID der.TLV
	Qualifier   der.TLV
}

func parsePolicyQualifierInfo(c *der.Cursor) (policyQualifierInfo, bool) {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return policyQualifierInfo{}, false
	}
	inner := seq.Value
	id, err := der.DecodeExpected(&inner, der.TagOID)
	if err != nil || id.IsNull() {
		return policyQualifierInfo{}, false
	}
	var qualifier der.TLV
	if !inner.Empty() {
		qualifier, _ = der.DecodeAny(&inner)
	}
	return policyQualifierInfo{QualifierID: id, Qualifier: qualifier}, true
}

func (q policyQualifierInfo) EmitJSON(w io.Writer) {
	io.WriteString(w, `{"qualifier_id":`)
	der.RenderHex(w, safeBytes(q.QualifierID))
	io.WriteString(w, `,"qualifier":`)
	der.RenderString(w, q.Qualifier.Tag, safeBytes(q.Qualifier))
	io.WriteString(w, "}")
}

type policyInformation struct {
	PolicyIdentifier der.TLV
	PolicyQualifiers []policyQualifierInfo
}

func parsePolicyInformation(c *der.Cursor) (policyInformation, bool) {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return policyInformation{}, false
	}
	inner := seq.Value
	id, err := der.DecodeExpected(&inner, der.TagOID)
	if err != nil || id.IsNull() {
		return policyInformation{}, false
	}
	pi := policyInformation{PolicyIdentifier: id}
	if !inner.Empty() {
		qseq, err := der.DecodeExpected(&inner, der.TagSequence)
		if err == nil && !qseq.IsNull() {
			qinner := qseq.Value
			for !qinner.Empty() {
				before := qinner
				q, ok := parsePolicyQualifierInfo(&qinner)
				if !ok || qinner.Remaining() == before.Remaining() {
					break
				}
				pi.PolicyQualifiers = append(pi.PolicyQualifiers, q)
			}
		}
	}
	return pi, true
}

func (pi policyInformation) EmitJSON(w io.Writer) {
	io.WriteString(w, `{"policy_identifier":`)
	der.RenderOID(w, safeBytes(pi.PolicyIdentifier))
	if len(pi.PolicyQualifiers) > 0 {
		io.WriteString(w, `,"policy_qualifiers":[`)
		for i, q := range pi.PolicyQualifiers {
			if i > 0 {
				io.WriteString(w, ",")
			}
			q.EmitJSON(w)
		}
		io.WriteString(w, "]")
	}
	io.WriteString(w, "}")
}

type certificatePolicies struct {
	Policies []policyInformation
}

func parseCertificatePolicies(c *der.Cursor) certificatePolicies {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return certificatePolicies{}
	}
	var out certificatePolicies
	inner := seq.Value
	for !inner.Empty() {
		before := inner
		pi, ok := parsePolicyInformation(&inner)
		if !ok || inner.Remaining() == before.Remaining() {
			break
		}
		out.Policies = append(out.Policies, pi)
	}
	return out
}

func (c certificatePolicies) EmitJSON(w io.Writer) {
	io.WriteString(w, "[")
	for i, p := range c.Policies {
		if i > 0 {
			io.WriteString(w, ",")
		}
		p.EmitJSON(w)
	}
	io.WriteString(w, "]")
}

// --- PrivateKeyUsagePeriod ---

type privateKeyUsagePeriod struct {
	NotBefore der.TLV
	NotAfter  der.TLV
}

func parsePrivateKeyUsagePeriod(c *der.Cursor) privateKeyUsagePeriod {
	var p privateKeyUsagePeriod
	for !c.Empty() {
		before := *c
		nb, err := der.DecodeExpected(c, der.ContextImplicit(0))
		if err == nil && !nb.IsNull() {
			p.NotBefore = nb
			continue
		}
		na, err := der.DecodeExpected(c, der.ContextImplicit(1))
		if err == nil && !na.IsNull() {
			p.NotAfter = na
			continue
		}
		if _, err := der.DecodeAny(c); err != nil || c.Remaining() == before.Remaining() {
			break
		}
	}
	return p
}

func (p privateKeyUsagePeriod) EmitJSON(w io.Writer) {
	io.WriteString(w, "{")
	comma := ""
	if p.NotBefore.Length > 0 {
		io.WriteString(w, `"not_before":`)
		der.RenderGeneralizedTime(w, p.NotBefore.Value.Bytes())
		comma = ","
	}
	if p.NotAfter.Length > 0 {
		io.WriteString(w, comma+`"not_after":`)
		der.RenderGeneralizedTime(w, p.NotAfter.Value.Bytes())
	}
	io.WriteString(w, "}")
}

// --- AuthorityKeyIdentifier ---

type authorityKeyIdentifier struct {
	KeyIdentifier       der.TLV
	CertIssuer          []GeneralName
	CertSerialNumber    der.TLV
}

func parseAuthorityKeyIdentifier(c *der.Cursor) authorityKeyIdentifier {
	var a authorityKeyIdentifier
	for !c.Empty() {
		before := *c
		kid, err := der.DecodeExpected(c, der.ContextImplicit(0))
		if err == nil && !kid.IsNull() {
			a.KeyIdentifier = kid
			continue
		}
		issuer, err := der.DecodeExpected(c, der.ContextImplicitConstructed(1))
		if err == nil && !issuer.IsNull() {
			a.CertIssuer = parseGeneralNames(issuer.Value)
			continue
		}
		serial, err := der.DecodeExpected(c, der.ContextImplicit(2))
		if err == nil && !serial.IsNull() {
			a.CertSerialNumber = serial
			continue
		}
		if _, err := der.DecodeAny(c); err != nil || c.Remaining() == before.Remaining() {
			break
		}
	}
	return a
}

func (a authorityKeyIdentifier) EmitJSON(w io.Writer) {
	io.WriteString(w, "{")
	comma := ""
	if a.KeyIdentifier.Length > 0 {
		io.WriteString(w, `"key_identifier":`)
		der.RenderHex(w, a.KeyIdentifier.Value.Bytes())
		comma = ","
	}
	if len(a.CertIssuer) > 0 {
		io.WriteString(w, comma+`"cert_issuer":`)
		emitGeneralNames(w, a.CertIssuer)
		comma = ","
	}
	if a.CertSerialNumber.Length > 0 {
		io.WriteString(w, comma+`"cert_serial_number":`)
		der.RenderHex(w, a.CertSerialNumber.Value.Bytes())
	}
	io.WriteString(w, "}")
}

// --- NameConstraints ---

type generalSubtree struct {
	Base    GeneralName
	hasBase bool
	Minimum uint64
	Maximum uint64
	hasMax  bool
}

func parseGeneralSubtree(c *der.Cursor) (generalSubtree, bool) {
	seq, err := der.DecodeExpected(c, der.TagSequence)
	if err != nil || seq.IsNull() {
		return generalSubtree{}, false
	}
	inner := seq.Value
	var s generalSubtree
	if base, ok := ParseGeneralName(&inner); ok {
		s.Base = base
		s.hasBase = true
	}
	for !inner.Empty() {
		before := inner
		min, err := der.DecodeExpected(&inner, der.ContextImplicit(0))
		if err == nil && !min.IsNull() {
			s.Minimum = uintFromBytes(min.Value.Bytes())
			continue
		}
		max, err := der.DecodeExpected(&inner, der.ContextImplicit(1))
		if err == nil && !max.IsNull() {
			s.Maximum = uintFromBytes(max.Value.Bytes())
			s.hasMax = true
			continue
		}
		if _, err := der.DecodeAny(&inner); err != nil || inner.Remaining() == before.Remaining() {
			break
		}
	}
	return s, true
}

func (s generalSubtree) EmitJSON(w io.Writer) {
	io.WriteString(w, "{")
	if s.hasBase {
		io.WriteString(w, `"base":`)
		s.Base.EmitJSON(w)
		io.WriteString(w, ",")
	}
	fmt.Fprintf(w, `"minimum":%d`, s.Minimum)
	if s.hasMax {
		fmt.Fprintf(w, `,"maximum":%d`, s.Maximum)
	}
	io.WriteString(w, "}")
}

func parseGeneralSubtrees(c der.Cursor) []generalSubtree {
	var out []generalSubtree
	for !c.Empty() {
		before := c
		s, ok := parseGeneralSubtree(&c)
		if !ok || c.Remaining() == before.Remaining() {
			break
		}
		out = append(out, s)
	}
	return out
}

type nameConstraints struct {
	Permitted []generalSubtree
	Excluded  []generalSubtree
}

func parseNameConstraints(c *der.Cursor) nameConstraints {
	var n nameConstraints
	for !c.Empty() {
		before := *c
		permitted, err := der.DecodeExpected(c, der.ContextImplicitConstructed(0))
		if err == nil && !permitted.IsNull() {
			n.Permitted = parseGeneralSubtrees(permitted.Value)
			continue
		}
		excluded, err := der.DecodeExpected(c, der.ContextImplicitConstructed(1))
		if err == nil && !excluded.IsNull() {
			n.Excluded = parseGeneralSubtrees(excluded.Value)
			continue
		}
		if _, err := der.DecodeAny(c); err != nil || c.Remaining() == before.Remaining() {
			break
		}
	}
	return n
}

func emitSubtrees(w io.Writer, subtrees []generalSubtree) {
	io.WriteString(w, "[")
	for i, s := range subtrees {
		if i > 0 {
			io.WriteString(w, ",")
		}
		s.EmitJSON(w)
	}
	io.WriteString(w, "]")
}

func (n nameConstraints) EmitJSON(w io.Writer) {
	io.WriteString(w, "{")
	comma := ""
	if len(n.Permitted) > 0 {
		io.WriteString(w, `"permitted_subtrees":`)
		emitSubtrees(w, n.Permitted)
		comma = ","
	}
	if len(n.Excluded) > 0 {
		io.WriteString(w, comma+`"excluded_subtrees":`)
		emitSubtrees(w, n.Excluded)
	}
	io.WriteString(w, "}")
}
