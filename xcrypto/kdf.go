// Package xcrypto implements the .kdb master key derivation and payload
// cipher: AES-ECB key-stretching rounds mixed with SHA-256, and AES-CBC
// payload decryption/encryption gated by a content hash.
package xcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
)

// DeriveFinalKey runs the key-stretching pipeline that turns a passphrase
// and the header's two seeds into the 32-byte AES-CBC key used for the
// payload: SHA-256(passphrase), rounds of AES-ECB-encrypt under
// masterSeed2, a SHA-256 mix, and a final SHA-256 over masterSeed||mix.
func DeriveFinalKey(passphrase string, masterSeed [16]byte, masterSeed2 [32]byte, rounds uint32) [32]byte {
	k := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(masterSeed2[:])
	if err != nil {
		// masterSeed2 is always exactly 32 bytes, a valid AES-256 key size.
		panic("xcrypto: invalid AES-256 key size: " + err.Error())
	}

	buf := k
	for i := uint32(0); i < rounds; i++ {
		ecbEncryptInPlace(block, buf[:])
	}

	mixed := sha256.Sum256(buf[:])

	var seeded [16 + 32]byte
	copy(seeded[:16], masterSeed[:])
	copy(seeded[16:], mixed[:])

	return sha256.Sum256(seeded[:])
}

// ecbEncryptInPlace encrypts buf (32 bytes, two AES blocks) under block
// with no chaining between blocks and no IV: the ECB mode used only for
// key-stretching rounds, never for bulk data confidentiality. crypto/cipher
// deliberately has no ECB mode constructor, so each block is encrypted
// directly against cipher.Block.
func ecbEncryptInPlace(block cipher.Block, buf []byte) {
	bs := block.BlockSize()
	for off := 0; off+bs <= len(buf); off += bs {
		block.Encrypt(buf[off:off+bs], buf[off:off+bs])
	}
}
