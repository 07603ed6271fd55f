package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/crypt"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	enc, err := crypt.Encrypt("hello world")
	require.NoError(t, err)
	assert.NotContains(t, enc, "hello")

	// A fresh nonce every call means identical plaintexts do not collide.
	enc2, err := crypt.Encrypt("hello world")
	require.NoError(t, err)
	assert.NotEqual(t, enc, enc2)

	plain, err := crypt.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", plain)
}

func TestDecryptRejectsTampering(t *testing.T) {
	enc, err := crypt.Encrypt("hello world")
	require.NoError(t, err)

	// Flip the last character of the base64 payload.
	last := enc[len(enc)-1]
	if last == 'A' {
		last = 'B'
	} else {
		last = 'A'
	}
	_, err = crypt.Decrypt(enc[:len(enc)-1] + string(last))
	assert.ErrorIs(t, err, crypt.ErrDecrypt)

	_, err = crypt.Decrypt("%%% not base64 %%%")
	assert.ErrorIs(t, err, crypt.ErrDecrypt)

	_, err = crypt.Decrypt("c2hvcnQ=") // shorter than a nonce
	assert.ErrorIs(t, err, crypt.ErrDecrypt)
}

func TestEncryptJSONRoundtrip(t *testing.T) {
	in := map[string]interface{}{"transaction": "txn-9", "amount": 120.5}

	enc, err := crypt.EncryptJSON(in)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, crypt.DecryptJSON(enc, &out))
	assert.Equal(t, "txn-9", out["transaction"])
	assert.Equal(t, 120.5, out["amount"])
}
