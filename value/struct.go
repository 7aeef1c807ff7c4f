package value

// StructDescriptor describes one struct type: its on-disk type string
// and the fixed byte size one element occupies. The record codec and
// reader never construct one directly — they only consume descriptors
// handed back by a DescriptorRegistry during the structify post-pass.
type StructDescriptor struct {
	TypeStr string
	Size    int
}

// StructValue is a raw struct payload paired with the descriptor that
// explains how to interpret it and the number of elements packed into
// Data. Count is 1 for a scalar struct value and >1 for a struct array;
// the structify pass only ever produces Count == 1 since it operates on
// individual raw data records.
type StructValue struct {
	Desc  StructDescriptor
	Count int
	Data  []byte
}

// DescriptorRegistry resolves a type string to a StructDescriptor. This
// package provides MapRegistry as the one concrete implementation a
// caller can reach for without bringing their own.
type DescriptorRegistry interface {
	Lookup(typeStr string) (StructDescriptor, bool)
}

// MapRegistry is a DescriptorRegistry backed by a plain map, suitable for
// registries built once at startup and read many times during structify.
type MapRegistry map[string]StructDescriptor

// Lookup implements DescriptorRegistry.
func (r MapRegistry) Lookup(typeStr string) (StructDescriptor, bool) {
	d, ok := r[typeStr]
	return d, ok
}

// Register adds or replaces the descriptor for typeStr.
func (r MapRegistry) Register(desc StructDescriptor) {
	r[desc.TypeStr] = desc
}
