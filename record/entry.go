package record

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/go-kdbv1/kdbv1/field"
)

// Entry field ids, exported for callers building an order list by hand.
const (
	EntryFieldUUID        uint16 = 0x01
	EntryFieldGroupID     uint16 = 0x02
	EntryFieldImageID     uint16 = 0x03
	EntryFieldTitle       uint16 = 0x04
	EntryFieldURL         uint16 = 0x05
	EntryFieldUsername    uint16 = 0x06
	EntryFieldPassword    uint16 = 0x07
	EntryFieldNotes       uint16 = 0x08
	EntryFieldCreated     uint16 = 0x09
	EntryFieldModified    uint16 = 0x0A
	EntryFieldAccessed    uint16 = 0x0B
	EntryFieldExpires     uint16 = 0x0C
	EntryFieldBinaryDesc  uint16 = 0x0D
	EntryFieldBinaryData  uint16 = 0x0E
)

// Entry is one ordered TLV entry record.
type Entry struct {
	UUID     uuid.UUID
	GroupID  uint32
	ImageID  uint32
	Title    string
	URL      string
	Username string
	Password string
	Notes    string
	Created  time.Time
	Modified time.Time
	Accessed time.Time
	Expires  time.Time

	BinaryDesc string
	BinaryData []byte

	// Extra holds any field ids this package doesn't recognize.
	Extra map[uint16][]byte

	order FieldOrder
}

// NewEntry returns an Entry with a fresh random UUID, canonical field
// order, fresh timestamps, the "never" expiration sentinel, and image id 1,
// belonging to groupID.
func NewEntry(groupID uint32) *Entry {
	now := time.Now().UTC()

	return &Entry{
		UUID:     uuid.New(),
		GroupID:  groupID,
		ImageID:  1,
		Created:  now,
		Modified: now,
		Accessed: now,
		Expires:  field.NeverExpires,
		order: FieldOrder{
			{ID: EntryFieldUUID}, {ID: EntryFieldGroupID}, {ID: EntryFieldImageID},
			{ID: EntryFieldTitle}, {ID: EntryFieldURL}, {ID: EntryFieldUsername},
			{ID: EntryFieldPassword}, {ID: EntryFieldNotes},
			{ID: EntryFieldCreated}, {ID: EntryFieldModified}, {ID: EntryFieldAccessed}, {ID: EntryFieldExpires},
			{ID: EntryFieldBinaryDesc}, {ID: EntryFieldBinaryData},
			{ID: field.Terminator},
		},
	}
}

// DecodeEntry parses one Entry TLV stream from buf, returning the entry
// and the number of bytes consumed.
func DecodeEntry(buf []byte) (*Entry, int, error) {
	values, order, n, err := decodeStream(buf, field.EntryRegistry)
	if err != nil {
		return nil, 0, err
	}

	e := &Entry{order: order, Extra: make(map[uint16][]byte)}
	for _, fe := range order {
		v, ok := values[fe.ID]
		if !ok {
			continue
		}

		switch fe.ID {
		case EntryFieldUUID:
			e.UUID = parseUUIDHex(v.(string))
		case EntryFieldGroupID:
			e.GroupID = v.(uint32)
		case EntryFieldImageID:
			e.ImageID = v.(uint32)
		case EntryFieldTitle:
			e.Title = v.(string)
		case EntryFieldURL:
			e.URL = v.(string)
		case EntryFieldUsername:
			e.Username = v.(string)
		case EntryFieldPassword:
			e.Password = v.(string)
		case EntryFieldNotes:
			e.Notes = v.(string)
		case EntryFieldCreated:
			e.Created = v.(time.Time)
		case EntryFieldModified:
			e.Modified = v.(time.Time)
		case EntryFieldAccessed:
			e.Accessed = v.(time.Time)
		case EntryFieldExpires:
			e.Expires = v.(time.Time)
		case EntryFieldBinaryDesc:
			e.BinaryDesc = v.(string)
		case EntryFieldBinaryData:
			e.BinaryData = v.([]byte)
		default:
			e.Extra[fe.ID] = v.([]byte)
		}
	}

	return e, n, nil
}

// parseUUIDHex rebuilds a UUID from its hex form. A well-formed field
// always decodes to exactly 16 bytes; a truncated one decodes to fewer,
// which copy into a zero-initialized uuid.UUID leaves implicitly
// zero-padded. A value that is not valid hex or decodes to more than 16
// bytes yields the zero UUID. None of these cases rejects the record.
func parseUUIDHex(s string) uuid.UUID {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) > 16 {
		return uuid.UUID{}
	}

	var u uuid.UUID
	copy(u[:], raw)

	return u
}

func (e *Entry) valueMap() map[uint16]any {
	m := map[uint16]any{
		EntryFieldUUID:       hex.EncodeToString(e.UUID[:]),
		EntryFieldGroupID:    e.GroupID,
		EntryFieldImageID:    e.ImageID,
		EntryFieldTitle:      e.Title,
		EntryFieldURL:        e.URL,
		EntryFieldUsername:   e.Username,
		EntryFieldPassword:   e.Password,
		EntryFieldNotes:      e.Notes,
		EntryFieldCreated:    e.Created,
		EntryFieldModified:   e.Modified,
		EntryFieldAccessed:   e.Accessed,
		EntryFieldExpires:    e.Expires,
		EntryFieldBinaryDesc: e.BinaryDesc,
		EntryFieldBinaryData: e.BinaryData,
	}
	for id, b := range e.Extra {
		m[id] = b
	}

	return m
}

func (e *Entry) fieldOrder() FieldOrder {
	if e.order == nil {
		return NewEntry(e.GroupID).order
	}

	return e.order
}

// Encode serializes e back to its TLV byte stream, preserving the field
// order it was decoded with (or the canonical order for a freshly
// constructed Entry).
func (e *Entry) Encode() ([]byte, error) {
	return encodeStream(e.valueMap(), e.fieldOrder(), field.EntryRegistry)
}

// Len returns the encoded byte length of e without allocating the output.
func (e *Entry) Len() (int, error) {
	return streamLen(e.valueMap(), e.fieldOrder(), field.EntryRegistry)
}
