package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrBadCookieSignature = errors.New("bad cookie signature")

// SignValue appends an HMAC-SHA256 signature to a cookie value so that
// tampering on the client side is detectable on the way back in.
func SignValue(value string, secret []byte) string {
	return value + "." + signature(value, secret)
}

// UnsignValue verifies and strips the signature appended by SignValue.
func UnsignValue(signed string, secret []byte) (string, error) {
	idx := strings.LastIndex(signed, ".")
	if idx < 0 {
		return "", ErrBadCookieSignature
	}
	value, sig := signed[:idx], signed[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(signature(value, secret))) {
		return "", ErrBadCookieSignature
	}
	return value, nil
}

func signature(value string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
