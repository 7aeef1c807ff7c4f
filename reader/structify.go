package reader

import "github.com/robolog/wpilog/value"

// Structify walks key's value timeline in order and reclassifies every
// raw-typed value whose currently-in-effect type string resolves in
// cache into a struct value. Non-raw values are left untouched; a raw
// value whose type string does not resolve is also left untouched.
//
// This is a separate, explicit pass rather than something ingest does
// automatically, since it requires consulting an external registry and
// performs a lookup per raw value.
func (d *DataLogReader) Structify(key string, cache *value.DescriptorCache) (int, bool) {
	e, ok := d.byName[key]
	if !ok {
		return 0, false
	}

	typeIdx := 0
	currentType := ""
	converted := 0

	for i, tv := range e.values {
		for typeIdx < len(e.types) && e.types[typeIdx].Timestamp <= tv.Timestamp {
			currentType = e.types[typeIdx].Value
			typeIdx++
		}

		if tv.Value.Kind() != value.KindRaw {
			continue
		}

		desc, ok := cache.Lookup(currentType)
		if !ok {
			continue
		}

		raw, _ := tv.Value.AsRaw()
		e.values[i].Value = value.Struct(value.StructValue{Desc: desc, Count: 1, Data: raw})
		converted++
	}

	return converted, true
}
