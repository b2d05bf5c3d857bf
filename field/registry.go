package field

// GroupRegistry maps each recognized Group TLV field id to its codec.
var GroupRegistry = Registry{
	0x0001: {Name: "groupid", Codec: Uint32LECodec{}},
	0x0002: {Name: "group_name", Codec: UTF8StringCodec{}},
	0x0003: {Name: "creation_time", Codec: PackedDateCodec{}},
	0x0004: {Name: "last_mod_time", Codec: PackedDateCodec{}},
	0x0005: {Name: "last_acc_time", Codec: PackedDateCodec{}},
	0x0006: {Name: "expiration_time", Codec: PackedDateCodec{}},
	0x0007: {Name: "imageid", Codec: Uint32LECodec{}},
	0x0008: {Name: "level", Codec: Uint16LECodec{}},
	0x0009: {Name: "flags", Codec: Uint32LECodec{}},
	Terminator: {Name: "terminator", Codec: NullCodec{}},
}

// EntryRegistry maps each recognized Entry TLV field id to its codec.
var EntryRegistry = Registry{
	0x01:       {Name: "uuid", Codec: ASCIIHexCodec{}},
	0x02:       {Name: "groupid", Codec: Uint32LECodec{}},
	0x03:       {Name: "imageid", Codec: Uint32LECodec{}},
	0x04:       {Name: "title", Codec: UTF8StringCodec{}},
	0x05:       {Name: "url", Codec: UTF8StringCodec{}},
	0x06:       {Name: "username", Codec: UTF8StringCodec{}},
	0x07:       {Name: "password", Codec: UTF8StringCodec{}},
	0x08:       {Name: "notes", Codec: UTF8StringCodec{}},
	0x09:       {Name: "creation_time", Codec: PackedDateCodec{}},
	0x0A:       {Name: "last_mod_time", Codec: PackedDateCodec{}},
	0x0B:       {Name: "last_acc_time", Codec: PackedDateCodec{}},
	0x0C:       {Name: "expiration_time", Codec: PackedDateCodec{}},
	0x0D:       {Name: "binary_desc", Codec: UTF8StringCodec{}},
	0x0E:       {Name: "binary_data", Codec: PassthroughCodec{}},
	Terminator: {Name: "terminator", Codec: NullCodec{}},
}

// Lookup returns the registered Entry for id in reg, falling back to an
// "unknown"-named PassthroughCodec entry for any id the registry doesn't recognize
// so unknown fields still round-trip byte-for-byte.
func (reg Registry) Lookup(id uint16) Entry {
	if e, ok := reg[id]; ok {
		return e
	}

	return Entry{Name: "unknown", Codec: PassthroughCodec{}}
}
