// Package field implements the TLV field-payload codecs shared by the
// group and entry records of a .kdb file: null, passthrough, ascii-hex,
// UTF-8 NUL-terminated strings, little-endian u16/u32 integers, and the
// packed 5-byte date-time.
//
// Each codec is a Codec implementation looked up by field id through a
// static dispatch table (Registry) rather than any form of runtime type
// switch or reflection, per the container format's TLV field-id scheme.
package field
