package der

// UnknownOID is the sentinel name returned by Lookup for any OID whose
// DER content bytes are not in the dictionary. Callers compare against
// this constant with ordinary Go string equality.
const UnknownOID = "unknown_oid"

// oid builds the raw DER content bytes of an OBJECT IDENTIFIER from its
// arcs, so dictionary entries below can be written as dotted arcs
// instead of hand-transcribed hex (a frequent source of silent
// transcription errors in OID tables).
func oid(arcs ...uint32) string {
	if len(arcs) < 2 {
		panic("der: oid needs at least two arcs")
	}
	b := []byte{byte(arcs[0]*40 + arcs[1])}
	for _, arc := range arcs[2:] {
		b = append(b, encodeBase128(arc)...)
	}
	return string(b)
}

func encodeBase128(v uint32) []byte {
	if v == 0 {
		return []byte{0}
	}
	var tmp []byte
	for v > 0 {
		tmp = append([]byte{byte(v & 0x7f)}, tmp...)
		v >>= 7
	}
	for i := 0; i < len(tmp)-1; i++ {
		tmp[i] |= 0x80
	}
	return tmp
}

// oidNames maps raw DER OID content bytes to stable symbolic names. It
// is built once at package init and never mutated afterward.
var oidNames = map[string]string{
	// id-at-* name attributes (RFC 5280 / X.520), used by Name/RDN
	// decoding.
	oid(2, 5, 4, 3):                          "commonName",
	oid(2, 5, 4, 4):                          "surname",
	oid(2, 5, 4, 5):                          "serialNumber",
	oid(2, 5, 4, 6):                          "countryName",
	oid(2, 5, 4, 7):                          "localityName",
	oid(2, 5, 4, 8):                          "stateOrProvinceName",
	oid(2, 5, 4, 9):                          "streetAddress",
	oid(2, 5, 4, 10):                         "organizationName",
	oid(2, 5, 4, 11):                         "organizationalUnitName",
	oid(2, 5, 4, 12):                         "title",
	oid(2, 5, 4, 41):                         "name",
	oid(2, 5, 4, 42):                         "givenName",
	oid(2, 5, 4, 43):                         "initials",
	oid(0, 9, 2342, 19200300, 100, 1, 1):     "userid",
	oid(0, 9, 2342, 19200300, 100, 1, 25):    "domainComponent",
	oid(1, 2, 840, 113549, 1, 9, 1):          "emailAddress",

	// id-ce-* / id-pe-* certificate extensions (RFC 5280 + CT).
	oid(2, 5, 29, 14):                    "id-ce-subjectKeyIdentifier",
	oid(2, 5, 29, 15):                    "id-ce-keyUsage",
	oid(2, 5, 29, 16):                    "id-ce-privateKeyUsagePeriod",
	oid(2, 5, 29, 17):                    "id-ce-subjectAltName",
	oid(2, 5, 29, 18):                    "id-ce-issuerAltName",
	oid(2, 5, 29, 19):                    "id-ce-basicConstraints",
	oid(2, 5, 29, 30):                    "id-ce-nameConstraints",
	oid(2, 5, 29, 31):                    "id-ce-cRLDistributionPoints",
	oid(2, 5, 29, 32):                    "id-ce-certificatePolicies",
	oid(2, 5, 29, 33):                    "id-ce-policyMappings",
	oid(2, 5, 29, 35):                    "id-ce-authorityKeyIdentifier",
	oid(2, 5, 29, 36):                    "id-ce-policyConstraints",
	oid(2, 5, 29, 37):                    "id-ce-extKeyUsage",
	oid(2, 5, 29, 46):                    "id-ce-freshestCRL",
	oid(2, 5, 29, 54):                    "id-ce-inhibitAnyPolicy",
	oid(1, 3, 6, 1, 5, 5, 7, 1, 1):       "id-pe-authorityInfoAccess",
	oid(1, 3, 6, 1, 5, 5, 7, 1, 11):      "id-pe-subjectInfoAccess",
	oid(1, 3, 6, 1, 5, 5, 7, 1, 24):      "id-pe-tlsfeature",
	oid(1, 3, 6, 1, 4, 1, 11129, 2, 4, 2): "id-ce-SignedCertificateTimestampList",
	oid(1, 3, 6, 1, 4, 1, 11129, 2, 4, 3): "id-ce-PrecertificatePoison",

	// Signature algorithms.
	oid(1, 2, 840, 113549, 1, 1, 1):       "rsaEncryption",
	oid(1, 2, 840, 113549, 1, 1, 5):       "sha1WithRSAEncryption",
	oid(1, 2, 840, 113549, 1, 1, 11):      "sha256WithRSAEncryption",
	oid(1, 2, 840, 113549, 1, 1, 12):      "sha384WithRSAEncryption",
	oid(1, 2, 840, 113549, 1, 1, 13):      "sha512WithRSAEncryption",
	oid(1, 2, 840, 113549, 1, 1, 14):      "sha224WithRSAEncryption",
	oid(1, 2, 840, 10045, 2, 1):           "id-ecPublicKey",
	oid(1, 2, 840, 10045, 4, 1):           "ecdsa-with-SHA1",
	oid(1, 2, 840, 10045, 4, 3, 1):        "ecdsa-with-SHA224",
	oid(1, 2, 840, 10045, 4, 3, 2):        "ecdsa-with-SHA256",
	oid(1, 2, 840, 10045, 4, 3, 3):        "ecdsa-with-SHA384",
	oid(1, 2, 840, 10045, 4, 3, 4):        "ecdsa-with-SHA512",

	// EC curve parameters. secp192r1 and prime192v1 are the same curve
	// (SECG alias of the ANSI X9.62 name) and therefore the same OID;
	// the dictionary stores the X9.62 name since that's what appears
	// in AlgorithmIdentifier.parameters.
	oid(1, 2, 840, 10045, 3, 1, 1): "prime192v1",
	oid(1, 2, 840, 10045, 3, 1, 2): "prime192v2",
	oid(1, 2, 840, 10045, 3, 1, 3): "prime192v3",
	oid(1, 2, 840, 10045, 3, 1, 4): "prime239v1",
	oid(1, 2, 840, 10045, 3, 1, 5): "prime239v2",
	oid(1, 2, 840, 10045, 3, 1, 6): "prime239v3",
	oid(1, 2, 840, 10045, 3, 1, 7): "prime256v1",
	oid(1, 3, 132, 0, 33):          "secp224r1",
	oid(1, 3, 132, 0, 34):          "secp384r1",
	oid(1, 3, 132, 0, 35):          "secp521r1",
}

// Lookup resolves the raw DER content bytes of an OBJECT IDENTIFIER to
// its stable symbolic name, or UnknownOID if the OID is not in the
// dictionary. An unknown OID is not a decode error: callers render it
// as hex.
func Lookup(content []byte) string {
	if name, ok := oidNames[string(content)]; ok {
		return name
	}
	return UnknownOID
}

// weakCurveNames is the set of EC curve parameter names considered
// cryptographically weak by the weakness classifier in x509cert.
var weakCurveNames = map[string]bool{
	"prime192v1": true, // a.k.a. secp192r1
	"prime192v2": true,
	"prime192v3": true,
	"prime239v1": true,
	"prime239v2": true,
	"prime239v3": true,
	"secp224r1":  true,
}

// IsWeakCurveName reports whether name (as returned by Lookup on an
// AlgorithmIdentifier's EC parameters) names a weak curve.
func IsWeakCurveName(name string) bool {
	return weakCurveNames[name]
}
