// Package record implements the ordered TLV (type-length-value) block
// model for .kdb Group and Entry records: decoding/encoding the field
// stream while preserving the exact field order observed on disk, so an
// untouched record round-trips byte-for-byte.
package record

import (
	"github.com/go-kdbv1/kdbv1/endian"
	"github.com/go-kdbv1/kdbv1/errs"
	"github.com/go-kdbv1/kdbv1/field"
	"github.com/go-kdbv1/kdbv1/internal/pool"
)

var le = endian.GetLittleEndianEngine()

// FieldEntry is one (field id, declared size) pair from the order list a
// record decoded with, used to re-emit fields in their original order and
// self-correct declared sizes that changed after a mutation.
type FieldEntry struct {
	ID   uint16
	Size uint32
}

// FieldOrder is the order list accompanying a decoded record.
type FieldOrder []FieldEntry

// decodeStream reads a sequence of (id uint16, size uint32, payload) TLV
// entries from buf using reg to look up each field's codec, until the
// terminator field (id 0xFFFF) is consumed. It returns the decoded values
// keyed by field id, the order list, and the number of bytes consumed.
func decodeStream(buf []byte, reg field.Registry) (map[uint16]any, FieldOrder, int, error) {
	values := make(map[uint16]any)
	var order FieldOrder

	off := 0
	for {
		if off+6 > len(buf) {
			return nil, nil, 0, &errs.TruncatedError{At: off}
		}

		id := le.Uint16(buf[off : off+2])
		size := le.Uint32(buf[off+2 : off+6])
		off += 6

		if off+int(size) > len(buf) {
			return nil, nil, 0, &errs.TruncatedError{At: off}
		}
		payload := buf[off : off+int(size)]
		off += int(size)

		order = append(order, FieldEntry{ID: id, Size: size})

		if id == field.Terminator {
			break
		}

		entry := reg.Lookup(id)
		v, err := entry.Codec.Decode(id, size, payload)
		if err != nil {
			return nil, nil, 0, err
		}
		values[id] = v
	}

	return values, order, off, nil
}

// encodeStream re-emits values in the order given by order, using reg to
// look up each field's codec and re-encoding its payload. A field's
// declared size in the order list is taken from the freshly encoded
// payload length, not the stale value recorded at decode time, so a
// mutated field's size self-corrects on re-encode.
func encodeStream(values map[uint16]any, order FieldOrder, reg field.Registry) ([]byte, error) {
	bb := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(bb)

	for _, fe := range order {
		var payload []byte
		if fe.ID != field.Terminator {
			entry := reg.Lookup(fe.ID)
			v, ok := values[fe.ID]
			if !ok {
				continue
			}

			enc, err := entry.Codec.Encode(v)
			if err != nil {
				return nil, err
			}
			payload = enc
		}

		var head [6]byte
		le.PutUint16(head[0:2], fe.ID)
		le.PutUint32(head[2:6], uint32(len(payload)))

		bb.MustWrite(head[:])
		bb.MustWrite(payload)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// streamLen computes the encoded length of values/order without
// allocating the output, for callers that only need Len.
func streamLen(values map[uint16]any, order FieldOrder, reg field.Registry) (int, error) {
	n := 0
	for _, fe := range order {
		n += 6
		if fe.ID == field.Terminator {
			continue
		}

		entry := reg.Lookup(fe.ID)
		v, ok := values[fe.ID]
		if !ok {
			continue
		}

		enc, err := entry.Codec.Encode(v)
		if err != nil {
			return 0, err
		}
		n += len(enc)
	}

	return n, nil
}
