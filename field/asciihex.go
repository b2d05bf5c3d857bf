package field

import (
	"encoding/hex"

	"github.com/go-kdbv1/kdbv1/errs"
)

// ASCIIHexCodec decodes a fixed-size binary field (the entry UUID) into its
// lowercase hex-string representation, and encodes a hex string back into
// that same fixed number of raw bytes — matching the source library's
// ascii-hex field convention.
type ASCIIHexCodec struct{}

// Decode hex-encodes the full declared-size payload as-is. The original
// library's decode path (b2a_hex(buf).replace(b'\0', b'')) looks like it
// strips NUL bytes, but the replace runs on the hex *text*, which never
// contains a raw 0x00 byte — so it's a no-op and every byte of payload,
// including any trailing zeros, must survive into the hex string.
func (c ASCIIHexCodec) Decode(fieldID uint16, declaredSize uint32, payload []byte) (any, error) {
	return hex.EncodeToString(payload), nil
}

// Encode decodes the hex string back to raw bytes. The original library
// appends a trailing NUL before packing into the fixed-size field
// (a2b_hex(val)+b'\0'), but struct.pack('<Ns', ...) truncates to the
// field's declared size, so for a full-width value (16 bytes for a UUID)
// that NUL never survives onto the wire — the net result is exactly the
// decoded raw bytes, which is what this returns directly.
func (c ASCIIHexCodec) Encode(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errs.NewFieldDecodeError(0, 0, "ascii-hex encode: value is not a string", nil)
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.NewFieldDecodeError(0, uint32(len(s)), "ascii-hex encode: invalid hex: "+err.Error(), []byte(s))
	}

	return raw, nil
}
