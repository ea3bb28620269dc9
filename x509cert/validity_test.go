package x509cert

import (
	"bytes"
	"testing"

	"github.com/mercury-project/mercury/der"
	"github.com/stretchr/testify/assert"
)

func TestValidityEmitsTwoElementArray(t *testing.T) {
	notBefore := tlvBytes(der.TagUTCTime, []byte("250101000000Z"))
	notAfter := tlvBytes(der.TagUTCTime, []byte("260101000000Z"))
	body := seq(notBefore, notAfter)

	c := der.NewCursor(body)
	v := ParseValidity(&c)

	var buf bytes.Buffer
	v.EmitJSON(&buf)
	assert.JSONEq(t, `[{"notBefore":"2025-01-01T00:00:00Z"},{"notAfter":"2026-01-01T00:00:00Z"}]`, buf.String())
}

func TestValidityGeneralizedTime(t *testing.T) {
	notBefore := tlvBytes(der.TagGeneralizedTime, []byte("20491231235959Z"))
	notAfter := tlvBytes(der.TagGeneralizedTime, []byte("20501231235959Z"))
	body := seq(notBefore, notAfter)

	c := der.NewCursor(body)
	v := ParseValidity(&c)

	var buf bytes.Buffer
	v.EmitJSON(&buf)
	assert.JSONEq(t, `[{"notBefore":"2049-12-31T23:59:59Z"},{"notAfter":"2050-12-31T23:59:59Z"}]`, buf.String())
}
