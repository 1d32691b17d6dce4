// Package token provides opaque session tokens and deterministic
// service-to-service authorization tokens.
package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
)

// ServiceToken derives a deterministic authorization token from a service
// entity identifier and its service class code. The same pair always yields
// the same token, so both sides can compute it independently.
func ServiceToken(entity string, serviceClass int) string {
	sum := sha256.Sum256([]byte(entity + ":" + strconv.Itoa(serviceClass)))
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(sum[:])
}

// ValidateServiceToken reports whether the given token matches the one
// derived from the entity and service class. The comparison is constant time.
func ValidateServiceToken(entity string, serviceClass int, token string) bool {
	expected := ServiceToken(entity, serviceClass)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
