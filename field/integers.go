package field

import (
	"github.com/go-kdbv1/kdbv1/endian"
	"github.com/go-kdbv1/kdbv1/errs"
)

var leEngine = endian.GetLittleEndianEngine()

// Uint16LECodec decodes/encodes a 2-byte little-endian unsigned integer,
// e.g. a group's level.
type Uint16LECodec struct{}

func (c Uint16LECodec) Decode(fieldID uint16, declaredSize uint32, payload []byte) (any, error) {
	if len(payload) < 2 {
		return nil, errs.NewFieldDecodeError(fieldID, declaredSize, "uint16 field shorter than 2 bytes", payload)
	}

	return leEngine.Uint16(payload), nil
}

func (c Uint16LECodec) Encode(value any) ([]byte, error) {
	v, ok := value.(uint16)
	if !ok {
		return nil, errs.NewFieldDecodeError(0, 0, "uint16 encode: value is not a uint16", nil)
	}

	out := make([]byte, 2)
	leEngine.PutUint16(out, v)

	return out, nil
}

// Uint32LECodec decodes/encodes a 4-byte little-endian unsigned integer,
// e.g. a group's id or an entry's group back-reference.
type Uint32LECodec struct{}

func (c Uint32LECodec) Decode(fieldID uint16, declaredSize uint32, payload []byte) (any, error) {
	if len(payload) < 4 {
		return nil, errs.NewFieldDecodeError(fieldID, declaredSize, "uint32 field shorter than 4 bytes", payload)
	}

	return leEngine.Uint32(payload), nil
}

func (c Uint32LECodec) Encode(value any) ([]byte, error) {
	v, ok := value.(uint32)
	if !ok {
		return nil, errs.NewFieldDecodeError(0, 0, "uint32 encode: value is not a uint32", nil)
	}

	out := make([]byte, 4)
	leEngine.PutUint32(out, v)

	return out, nil
}
