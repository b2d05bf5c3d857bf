package field

import (
	"bytes"
	"unicode/utf8"

	"github.com/go-kdbv1/kdbv1/errs"
)

// UTF8StringCodec decodes a NUL-terminated UTF-8 byte payload into a Go
// string (trailing NUL stripped) and encodes a string back with a single
// trailing NUL appended, per the container format's string field convention.
type UTF8StringCodec struct{}

func (c UTF8StringCodec) Decode(fieldID uint16, declaredSize uint32, payload []byte) (any, error) {
	trimmed := bytes.TrimRight(payload, "\x00")
	if !utf8.Valid(trimmed) {
		return nil, errs.NewFieldDecodeError(fieldID, declaredSize, "invalid UTF-8", payload)
	}

	return string(trimmed), nil
}

func (c UTF8StringCodec) Encode(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errs.NewFieldDecodeError(0, 0, "utf8-string encode: value is not a string", nil)
	}

	out := make([]byte, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, 0x00)

	return out, nil
}
