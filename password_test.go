package goresto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePasswordRecord(t *testing.T) {
	record := makePasswordRecord("password1")

	assert.Len(t, record.Salt, saltLength*2)
	assert.Len(t, record.Hash, 64)
	assert.True(t, record.Matches("password1"))
	assert.False(t, record.Matches("password2"))
	assert.False(t, record.Matches(""))
}

func TestMakePasswordRecord_GeneratesFreshSalts(t *testing.T) {
	r1 := makePasswordRecord("password1")
	r2 := makePasswordRecord("password1")

	assert.NotEqual(t, r1.Salt, r2.Salt)
	assert.NotEqual(t, r1.Hash, r2.Hash)
}

func TestHashPassword_IsDeterministicForAFixedSalt(t *testing.T) {
	salt := "000102030405060708090a0b0c0d0e0f"

	record := PasswordRecord{Salt: salt, Hash: hashPassword("password1", salt)}

	assert.Equal(t, hashPassword("password1", salt), record.Hash)
	assert.True(t, record.Matches("password1"))
	assert.False(t, record.Matches("Password1"))
}
