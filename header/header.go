// Package header decodes and encodes the fixed 124-byte .kdb file header:
// dual magic signatures, cipher-selection flags, key-derivation seeds and
// iteration count, record counts, and the content hash gating payload
// integrity.
package header

import (
	"io"

	"github.com/go-kdbv1/kdbv1/endian"
	"github.com/go-kdbv1/kdbv1/errs"
)

// Size is the fixed on-disk size of a .kdb header, in bytes.
const Size = 124

const (
	Signature1 uint32 = 0x9AA2D903
	Signature2 uint32 = 0xB54BFB65

	// DefaultVersion is the version field written by new databases.
	DefaultVersion uint32 = 0x00030002

	// DefaultRounds is the key-stretching iteration count written by new
	// databases absent an explicit override.
	DefaultRounds uint32 = 50000
)

// Flag bits packed into the header's flags field. Exactly one cipher bit
// (Rijndael, ArcFour, TwoFish) is expected to be set; SHA2 is always set
// alongside it.
const (
	FlagSHA2     uint32 = 1 << 0
	FlagRijndael uint32 = 1 << 1
	FlagArcFour  uint32 = 1 << 2
	FlagTwoFish  uint32 = 1 << 3
)

// CipherID identifies the payload cipher selected by the header's flags.
type CipherID uint8

const (
	CipherUnknown CipherID = iota
	CipherRijndael
	CipherArcFour
	CipherTwoFish
)

func (c CipherID) String() string {
	switch c {
	case CipherRijndael:
		return "Rijndael"
	case CipherArcFour:
		return "ArcFour"
	case CipherTwoFish:
		return "TwoFish"
	default:
		return "Unknown"
	}
}

var le = endian.GetLittleEndianEngine()

// Header is the fixed-layout 124-byte .kdb header, held in memory with its
// fields already decoded.
type Header struct {
	Signature1    uint32
	Signature2    uint32
	Flags         uint32
	Version       uint32
	MasterSeed    [16]byte
	EncryptionIV  [16]byte
	NGroups       uint32
	NEntries      uint32
	ContentsHash  [32]byte
	MasterSeed2   [32]byte
	KeyEncRounds  uint32
}

// New returns a Header with canonical signatures, version, SHA2|Rijndael
// flags and the default round count. Seeds and IV are left zeroed; callers
// creating a new database should follow up with ResetRandomFields.
func New() *Header {
	return &Header{
		Signature1:   Signature1,
		Signature2:   Signature2,
		Flags:        FlagSHA2 | FlagRijndael,
		Version:      DefaultVersion,
		KeyEncRounds: DefaultRounds,
	}
}

// Decode parses a 124-byte header image. It validates both magic
// signatures but does not validate the cipher selection; call
// EncryptionType for that.
func Decode(buf [Size]byte) (*Header, error) {
	h := &Header{
		Signature1:   le.Uint32(buf[0:4]),
		Signature2:   le.Uint32(buf[4:8]),
		Flags:        le.Uint32(buf[8:12]),
		Version:      le.Uint32(buf[12:16]),
		NGroups:      le.Uint32(buf[48:52]),
		NEntries:     le.Uint32(buf[52:56]),
		KeyEncRounds: le.Uint32(buf[120:124]),
	}
	copy(h.MasterSeed[:], buf[16:32])
	copy(h.EncryptionIV[:], buf[32:48])
	copy(h.ContentsHash[:], buf[56:88])
	copy(h.MasterSeed2[:], buf[88:120])

	if h.Signature1 != Signature1 || h.Signature2 != Signature2 {
		return nil, errs.ErrBadSignature
	}

	return h, nil
}

// Encode serializes h back into its 124-byte on-disk image.
func (h *Header) Encode() [Size]byte {
	var buf [Size]byte

	le.PutUint32(buf[0:4], h.Signature1)
	le.PutUint32(buf[4:8], h.Signature2)
	le.PutUint32(buf[8:12], h.Flags)
	le.PutUint32(buf[12:16], h.Version)
	copy(buf[16:32], h.MasterSeed[:])
	copy(buf[32:48], h.EncryptionIV[:])
	le.PutUint32(buf[48:52], h.NGroups)
	le.PutUint32(buf[52:56], h.NEntries)
	copy(buf[56:88], h.ContentsHash[:])
	copy(buf[88:120], h.MasterSeed2[:])
	le.PutUint32(buf[120:124], h.KeyEncRounds)

	return buf
}

// EncryptionType resolves the cipher selected by Flags, in the fixed
// priority order Rijndael > ArcFour > TwoFish. Only Rijndael is supported
// for actual payload decryption; the others are recognized so callers can
// reject them with a precise error rather than a signature mismatch.
func (h *Header) EncryptionType() CipherID {
	switch {
	case h.Flags&FlagRijndael != 0:
		return CipherRijndael
	case h.Flags&FlagArcFour != 0:
		return CipherArcFour
	case h.Flags&FlagTwoFish != 0:
		return CipherTwoFish
	default:
		return CipherUnknown
	}
}

// ResetRandomFields draws fresh MasterSeed, MasterSeed2, and EncryptionIV
// bytes from rand. Callers creating a new database must do this before the
// first write; rand is typically crypto/rand.Reader. Skipping MasterSeed2
// would leave the AES-ECB key-stretching transform key all-zero, a severe
// key-strength regression, not just a malformed header.
func (h *Header) ResetRandomFields(rand io.Reader) error {
	if _, err := io.ReadFull(rand, h.MasterSeed[:]); err != nil {
		return &errs.IOError{Err: err}
	}
	if _, err := io.ReadFull(rand, h.MasterSeed2[:]); err != nil {
		return &errs.IOError{Err: err}
	}
	if _, err := io.ReadFull(rand, h.EncryptionIV[:]); err != nil {
		return &errs.IOError{Err: err}
	}

	return nil
}
