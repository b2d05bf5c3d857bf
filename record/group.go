package record

import (
	"time"

	"github.com/go-kdbv1/kdbv1/field"
)

// Group field ids, exported for callers building an order list by hand.
const (
	GroupFieldID        uint16 = 0x0001
	GroupFieldName      uint16 = 0x0002
	GroupFieldCreated   uint16 = 0x0003
	GroupFieldModified  uint16 = 0x0004
	GroupFieldAccessed  uint16 = 0x0005
	GroupFieldExpires   uint16 = 0x0006
	GroupFieldImageID   uint16 = 0x0007
	GroupFieldLevel     uint16 = 0x0008
	GroupFieldFlags     uint16 = 0x0009
)

// Group is one ordered TLV group record.
type Group struct {
	ID       uint32
	Name     string
	Created  time.Time
	Modified time.Time
	Accessed time.Time
	Expires  time.Time
	ImageID  uint32
	Level    uint16
	Flags    uint32

	// Extra holds any field ids this package doesn't recognize, decoded
	// as raw bytes via the Passthrough codec so they survive re-encoding.
	Extra map[uint16][]byte

	order FieldOrder
}

// NewGroup returns a Group with canonical field order, fresh timestamps,
// the "never" expiration sentinel, and image id 1.
func NewGroup(id uint32) *Group {
	now := time.Now().UTC()

	return &Group{
		ID:       id,
		Created:  now,
		Modified: now,
		Accessed: now,
		Expires:  field.NeverExpires,
		ImageID:  1,
		Level:    0,
		order: FieldOrder{
			{ID: GroupFieldID}, {ID: GroupFieldName}, {ID: GroupFieldCreated},
			{ID: GroupFieldModified}, {ID: GroupFieldAccessed}, {ID: GroupFieldExpires},
			{ID: GroupFieldImageID}, {ID: GroupFieldLevel}, {ID: GroupFieldFlags},
			{ID: field.Terminator},
		},
	}
}

// DecodeGroup parses one Group TLV stream from buf, returning the group
// and the number of bytes consumed.
func DecodeGroup(buf []byte) (*Group, int, error) {
	values, order, n, err := decodeStream(buf, field.GroupRegistry)
	if err != nil {
		return nil, 0, err
	}

	g := &Group{order: order, Extra: make(map[uint16][]byte)}
	for _, fe := range order {
		v, ok := values[fe.ID]
		if !ok {
			continue
		}

		switch fe.ID {
		case GroupFieldID:
			g.ID = v.(uint32)
		case GroupFieldName:
			g.Name = v.(string)
		case GroupFieldCreated:
			g.Created = v.(time.Time)
		case GroupFieldModified:
			g.Modified = v.(time.Time)
		case GroupFieldAccessed:
			g.Accessed = v.(time.Time)
		case GroupFieldExpires:
			g.Expires = v.(time.Time)
		case GroupFieldImageID:
			g.ImageID = v.(uint32)
		case GroupFieldLevel:
			g.Level = v.(uint16)
		case GroupFieldFlags:
			g.Flags = v.(uint32)
		default:
			g.Extra[fe.ID] = v.([]byte)
		}
	}

	return g, n, nil
}

func (g *Group) valueMap() map[uint16]any {
	m := map[uint16]any{
		GroupFieldID:       g.ID,
		GroupFieldName:     g.Name,
		GroupFieldCreated:  g.Created,
		GroupFieldModified: g.Modified,
		GroupFieldAccessed: g.Accessed,
		GroupFieldExpires:  g.Expires,
		GroupFieldImageID:  g.ImageID,
		GroupFieldLevel:    g.Level,
		GroupFieldFlags:    g.Flags,
	}
	for id, b := range g.Extra {
		m[id] = b
	}

	return m
}

func (g *Group) fieldOrder() FieldOrder {
	if g.order == nil {
		return NewGroup(g.ID).order
	}

	return g.order
}

// Encode serializes g back to its TLV byte stream, preserving the field
// order it was decoded with (or the canonical order for a freshly
// constructed Group).
func (g *Group) Encode() ([]byte, error) {
	return encodeStream(g.valueMap(), g.fieldOrder(), field.GroupRegistry)
}

// Len returns the encoded byte length of g without allocating the output.
func (g *Group) Len() (int, error) {
	return streamLen(g.valueMap(), g.fieldOrder(), field.GroupRegistry)
}
