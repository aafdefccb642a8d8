package goresto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const saltLength = 16

// PasswordRecord is the stored form of a credential: a random salt and the
// digest of salt‖plaintext, both hex encoded. The plaintext itself is never
// persisted or compared.
type PasswordRecord struct {
	Salt string
	Hash string
}

func makePasswordRecord(plaintext string) PasswordRecord {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		panic("goresto: crypto/rand unavailable: " + err.Error())
	}

	saltHex := hex.EncodeToString(salt)
	return PasswordRecord{Salt: saltHex, Hash: hashPassword(plaintext, saltHex)}
}

func hashPassword(plaintext, saltHex string) string {
	salt, _ := hex.DecodeString(saltHex)
	sum := sha256.Sum256(append(salt, plaintext...))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether plaintext is the password this record was derived
// from. The comparison is constant time.
func (r PasswordRecord) Matches(plaintext string) bool {
	computed := hashPassword(plaintext, r.Salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(r.Hash)) == 1
}
