// Package cryptox stretches operator-supplied secrets into fixed-size keys.
package cryptox

import (
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of derived keys in bytes.
const KeySize = 32

var sessionSalt = []byte("memorymap/session-key/v1")

// DeriveKey runs Argon2id over secret and salt.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// SessionKey derives the HMAC key used to sign login sessions. Short or
// human-chosen secrets become uniformly random-looking 32-byte keys.
func SessionKey(secret string) []byte {
	return DeriveKey([]byte(secret), sessionSalt)
}
