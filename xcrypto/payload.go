package xcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"github.com/go-kdbv1/kdbv1/errs"
	"github.com/go-kdbv1/kdbv1/header"
)

// StrictPadding controls whether DecryptPayload validates that every
// stripped PKCS-style padding byte equals the pad length, rather than just
// trusting the last byte. KeePassX 0.4.x never writes anything else, but
// some archived third-party writers zero-fill the padding after the first
// byte; rejecting those would regress read compatibility for files that
// are otherwise perfectly legitimate, and the content-hash check below
// already catches a wrong key or corrupted payload. Use
// DecryptPayloadStrict for the stricter behavior.
const StrictPadding = false

// maxPlaintextLen rejects a decrypted length that can't possibly be a real
// payload, distinguishing "wrong key" garbage from a legitimately small
// (possibly empty) database.
const maxPlaintextLen = 0x7FFFFFF6

// DecryptPayload decrypts ciphertext with AES-CBC under finalKey/iv, strips
// PKCS-style padding, and verifies the result against h.ContentsHash. It
// fails UnsupportedCipherError if h does not select Rijndael, and
// DecryptFailureError for any other integrity problem.
func DecryptPayload(ciphertext []byte, finalKey [32]byte, iv [16]byte, h *header.Header) ([]byte, error) {
	return decryptPayload(ciphertext, finalKey, iv, h, StrictPadding)
}

// DecryptPayloadStrict is DecryptPayload with padding-byte validation
// enabled: every stripped byte must equal the pad length, or decryption
// fails with DecryptFailureError{Reason: "padding"}.
func DecryptPayloadStrict(ciphertext []byte, finalKey [32]byte, iv [16]byte, h *header.Header) ([]byte, error) {
	return decryptPayload(ciphertext, finalKey, iv, h, true)
}

func decryptPayload(ciphertext []byte, finalKey [32]byte, iv [16]byte, h *header.Header, strict bool) ([]byte, error) {
	if h.EncryptionType() != header.CipherRijndael {
		return nil, &errs.UnsupportedCipherError{Name: h.EncryptionType().String()}
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, &errs.DecryptFailureError{Reason: "ciphertext is not a multiple of the AES block size"}
	}

	block, err := aes.NewCipher(finalKey[:])
	if err != nil {
		panic("xcrypto: invalid AES-256 key size: " + err.Error())
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(plaintext, ciphertext)

	pad := int(plaintext[len(plaintext)-1])
	if pad < 1 || pad > aes.BlockSize || pad > len(plaintext) {
		return nil, &errs.DecryptFailureError{Reason: "wrong key or damaged file"}
	}

	if strict {
		for _, b := range plaintext[len(plaintext)-pad:] {
			if int(b) != pad {
				return nil, &errs.DecryptFailureError{Reason: "padding"}
			}
		}
	}

	plaintext = plaintext[:len(plaintext)-pad]

	if len(plaintext) > maxPlaintextLen || (len(plaintext) == 0 && h.NGroups > 0) {
		return nil, &errs.DecryptFailureError{Reason: "wrong key or damaged file"}
	}

	if sha256.Sum256(plaintext) != h.ContentsHash {
		return nil, &errs.DecryptFailureError{Reason: "checksum mismatch"}
	}

	return plaintext, nil
}

// EncryptPayload pads plaintext to the AES block size (PKCS-style, always
// 1..16 bytes of padding) and AES-CBC encrypts it under finalKey/iv. It
// returns UnsupportedCipherError unless cipher is Rijndael.
func EncryptPayload(plaintext []byte, finalKey [32]byte, iv [16]byte, cipherID header.CipherID) ([]byte, error) {
	if cipherID != header.CipherRijndael {
		return nil, &errs.UnsupportedCipherError{Name: cipherID.String()}
	}

	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+pad)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(pad)
	}

	block, err := aes.NewCipher(finalKey[:])
	if err != nil {
		panic("xcrypto: invalid AES-256 key size: " + err.Error())
	}

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}
