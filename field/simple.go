package field

// NullCodec decodes to an absent marker (nil) and encodes any value to an
// empty payload. Used for the terminator field, which carries no payload.
type NullCodec struct{}

func (NullCodec) Decode(uint16, uint32, []byte) (any, error) { return nil, nil }
func (NullCodec) Encode(any) ([]byte, error)                 { return nil, nil }

// PassthroughCodec is the identity codec on raw bytes. It backs unknown
// field ids so a record can preserve and re-emit data it doesn't
// understand, and backs the raw binary_data entry field.
type PassthroughCodec struct{}

func (PassthroughCodec) Decode(_ uint16, _ uint32, payload []byte) (any, error) {
	out := make([]byte, len(payload))
	copy(out, payload)

	return out, nil
}

func (PassthroughCodec) Encode(value any) ([]byte, error) {
	b, _ := value.([]byte)
	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}
