package field

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCodec_RoundTrip(t *testing.T) {
	c := NullCodec{}

	v, err := c.Decode(Terminator, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	out, err := c.Encode("anything")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPassthroughCodec_RoundTrip(t *testing.T) {
	c := PassthroughCodec{}
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	v, err := c.Decode(0x0E, 4, payload)
	require.NoError(t, err)

	decoded, ok := v.([]byte)
	require.True(t, ok)
	assert.Equal(t, payload, decoded)

	out, err := c.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestASCIIHexCodec_RoundTrip(t *testing.T) {
	c := ASCIIHexCodec{}
	raw := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	}

	v, err := c.Decode(0x01, 16, raw)
	require.NoError(t, err)

	hexStr, ok := v.(string)
	require.True(t, ok)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", hexStr)

	out, err := c.Encode(hexStr)
	require.NoError(t, err)
	assert.Equal(t, raw, out, "encode must reproduce the exact 16-byte field, with no trailing NUL")
}

func TestASCIIHexCodec_DecodeKeepsTrailingZeroBytes(t *testing.T) {
	c := ASCIIHexCodec{}
	raw := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x00, 0x00,
	}

	v, err := c.Decode(0x01, 16, raw)
	require.NoError(t, err)

	hexStr, ok := v.(string)
	require.True(t, ok)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0000", hexStr, "trailing zero bytes must survive into the hex string")
	assert.Len(t, hexStr, 32)

	out, err := c.Encode(hexStr)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestASCIIHexCodec_EncodeRejectsNonString(t *testing.T) {
	c := ASCIIHexCodec{}
	_, err := c.Encode(123)
	require.Error(t, err)
}

func TestUTF8StringCodec_RoundTrip(t *testing.T) {
	c := UTF8StringCodec{}
	payload := append([]byte("hello world"), 0x00)

	v, err := c.Decode(0x04, uint32(len(payload)), payload)
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)

	out, err := c.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestUTF8StringCodec_RejectsInvalidUTF8(t *testing.T) {
	c := UTF8StringCodec{}
	payload := []byte{0xFF, 0xFE, 0x00}

	_, err := c.Decode(0x04, uint32(len(payload)), payload)
	require.Error(t, err)
}

func TestUint16LECodec_RoundTrip(t *testing.T) {
	c := Uint16LECodec{}
	payload := []byte{0x34, 0x12}

	v, err := c.Decode(0x0008, 2, payload)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	out, err := c.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestUint32LECodec_RoundTrip(t *testing.T) {
	c := Uint32LECodec{}
	payload := []byte{0x78, 0x56, 0x34, 0x12}

	v, err := c.Decode(0x0001, 4, payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	out, err := c.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestPackedDateCodec_RoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2026, time.July, 30, 14, 22, 57, 0, time.UTC),
		time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
		NeverExpires,
	}

	c := PackedDateCodec{}
	for _, want := range cases {
		encoded, err := c.Encode(want)
		require.NoError(t, err)
		require.Len(t, encoded, 5)

		v, err := c.Decode(0x0003, 5, encoded)
		require.NoError(t, err)

		got, ok := v.(time.Time)
		require.True(t, ok)
		assert.True(t, want.Equal(got), "want %v, got %v", want, got)
	}
}

func TestPackedDateCodec_RejectsIllegalDate(t *testing.T) {
	c := PackedDateCodec{}

	// Packs month=15, day=0, both out of range.
	payload := []byte{0x00, 0x03, 0xC0, 0x00, 0x00}
	_, err := c.Decode(0x0003, 5, payload)
	require.Error(t, err)
}

func TestPackedDateCodec_DecodeRejectsShortPayload(t *testing.T) {
	c := PackedDateCodec{}
	_, err := c.Decode(0x0003, 2, []byte{0x00, 0x00})
	require.Error(t, err)
}

func TestGroupRegistry_HasExpectedFields(t *testing.T) {
	for _, id := range []uint16{0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006, 0x0007, 0x0008, 0x0009, Terminator} {
		_, ok := GroupRegistry[id]
		assert.True(t, ok, "expected group field id 0x%04X to be registered", id)
	}
}

func TestEntryRegistry_HasExpectedFields(t *testing.T) {
	for id := uint16(0x01); id <= 0x0E; id++ {
		_, ok := EntryRegistry[id]
		assert.True(t, ok, "expected entry field id 0x%02X to be registered", id)
	}

	_, ok := EntryRegistry[Terminator]
	assert.True(t, ok)
}

func TestRegistry_LookupFallsBackToPassthrough(t *testing.T) {
	e := GroupRegistry.Lookup(0x1234)
	assert.Equal(t, "unknown", e.Name)

	_, isPassthrough := e.Codec.(PassthroughCodec)
	assert.True(t, isPassthrough)
}
