package relay

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// HashSenderToken derives the pseudonymous sender identifier from the
// opaque client token. The digest is one-way and deterministic: the same
// token always maps to the same identifier, and the raw token is never
// stored or logged.
func HashSenderToken(token string) string {
	sum := sha3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RecipientDomain extracts the lower-cased domain part of an email
// address. Malformed input yields ""; the recipient is validated
// upstream so this should not occur in practice.
func RecipientDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
