package field

import (
	"time"

	"github.com/go-kdbv1/kdbv1/errs"
)

// NeverExpires is the sentinel expiration timestamp used by KeePassX 0.4.3
// to mean "does not expire".
var NeverExpires = time.Date(2999, time.December, 28, 23, 59, 59, 0, time.UTC)

// PackedDateCodec decodes/encodes the 5-byte bit-packed
// (year:14, month:4, day:5, hour:5, minute:6, second:6) timestamp used by
// every creation_time/last_mod_time/last_acc_time/expiration_time field.
type PackedDateCodec struct{}

func (c PackedDateCodec) Decode(fieldID uint16, declaredSize uint32, payload []byte) (any, error) {
	if len(payload) < 5 {
		return nil, errs.NewFieldDecodeError(fieldID, declaredSize, "packed date field shorter than 5 bytes", payload)
	}

	b0, b1, b2, b3, b4 := payload[0], payload[1], payload[2], payload[3], payload[4]

	year := int(b0)<<6 | int(b1)>>2
	month := time.Month((int(b1)&0x03)<<2 | int(b2)>>6)
	day := (int(b2) >> 1) & 0x1F
	hour := (int(b2)&0x01)<<4 | int(b3)>>4
	minute := (int(b3)&0x0F)<<2 | int(b4)>>6
	second := int(b4) & 0x3F

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return nil, errs.NewFieldDecodeError(fieldID, declaredSize, "packed date field is not a legal date", payload)
	}

	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return nil, errs.NewFieldDecodeError(fieldID, declaredSize, "packed date field is not a legal Gregorian date", payload)
	}

	return t, nil
}

func (c PackedDateCodec) Encode(value any) ([]byte, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, errs.NewFieldDecodeError(0, 0, "packed date encode: value is not a time.Time", nil)
	}

	year := t.Year()
	month := int(t.Month())
	day := t.Day()
	hour := t.Hour()
	minute := t.Minute()
	second := t.Second()

	out := make([]byte, 5)
	out[0] = byte(year >> 6)
	out[1] = byte((year&0x3F)<<2 | (month >> 2))
	out[2] = byte((month&0x3)<<6 | (day&0x1F)<<1 | (hour >> 4))
	out[3] = byte((hour&0xF)<<4 | (minute >> 2))
	out[4] = byte((minute&0x3)<<6 | (second & 0x3F))

	return out, nil
}
