package record

import (
	"math"

	"github.com/robolog/wpilog/internal/bytereader"
	"github.com/robolog/wpilog/value"
)

// EncodeDataPayload serializes v into a data record's payload bytes.
// Void values encode to an empty slice; callers are expected to have
// already skipped emitting a record at all for void writes, since a
// void value is a no-op at the write-path level, not an empty record.
func EncodeDataPayload(v value.Value) []byte {
	switch {
	case isKind(v, value.KindRaw):
		b, _ := v.AsRaw()
		return append([]byte(nil), b...)
	case isKind(v, value.KindBoolean):
		b, _ := v.AsBoolean()
		if b {
			return []byte{1}
		}
		return []byte{0}
	case isKind(v, value.KindInt64):
		i, _ := v.AsInt64()
		return encodeInt64(i)
	case isKind(v, value.KindFloat):
		f, _ := v.AsFloat()
		return encodeFloat32(f)
	case isKind(v, value.KindDouble):
		d, _ := v.AsDouble()
		return encodeFloat64(d)
	case isKind(v, value.KindString):
		s, _ := v.AsString()
		return []byte(s)
	case isKind(v, value.KindBooleanArray):
		arr, _ := v.AsBooleanArray()
		buf := make([]byte, len(arr))
		for i, b := range arr {
			if b {
				buf[i] = 1
			}
		}
		return buf
	case isKind(v, value.KindInt64Array):
		arr, _ := v.AsInt64Array()
		buf := make([]byte, 0, len(arr)*8)
		for _, i := range arr {
			buf = append(buf, encodeInt64(i)...)
		}
		return buf
	case isKind(v, value.KindFloatArray):
		arr, _ := v.AsFloatArray()
		buf := make([]byte, 0, len(arr)*4)
		for _, f := range arr {
			buf = append(buf, encodeFloat32(f)...)
		}
		return buf
	case isKind(v, value.KindDoubleArray):
		arr, _ := v.AsDoubleArray()
		buf := make([]byte, 0, len(arr)*8)
		for _, d := range arr {
			buf = append(buf, encodeFloat64(d)...)
		}
		return buf
	case isKind(v, value.KindStringArray):
		arr, _ := v.AsStringArray()
		buf := make([]byte, 0)
		for _, s := range arr {
			buf = appendUint32(buf, uint32(len(s)))
			buf = append(buf, s...)
		}
		return buf
	default:
		return nil
	}
}

func isKind(v value.Value, k value.Kind) bool { return v.Kind() == k }

func encodeInt64(i int64) []byte {
	return littleEndian.AppendUint64(nil, uint64(i))
}

func encodeFloat32(f float32) []byte {
	return littleEndian.AppendUint32(nil, math.Float32bits(f))
}

func encodeFloat64(d float64) []byte {
	return littleEndian.AppendUint64(nil, math.Float64bits(d))
}

// DecodeDataPayload interprets payload according to kind, the type
// currently bound to the owning entry. An unrecognized or absent
// binding is handled by the caller passing value.KindRaw.
func DecodeDataPayload(payload []byte, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindBoolean:
		r := bytereader.New(payload)
		b, err := r.Bool()
		if err != nil {
			return value.Value{}, err
		}
		return value.Boolean(b), nil
	case value.KindInt64:
		r := bytereader.New(payload)
		i, err := r.Int64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Int64(i), nil
	case value.KindFloat:
		r := bytereader.New(payload)
		f, err := r.Float32()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case value.KindDouble:
		r := bytereader.New(payload)
		d, err := r.Float64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Double(d), nil
	case value.KindString:
		r := bytereader.New(payload)
		s, err := r.String(r.Len())
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	case value.KindBooleanArray:
		arr := make([]bool, len(payload))
		for i, b := range payload {
			arr[i] = b != 0
		}
		return value.BooleanArray(arr), nil
	case value.KindInt64Array:
		r := bytereader.New(payload)
		var arr []int64
		for r.Len() >= 8 {
			i, err := r.Int64()
			if err != nil {
				return value.Value{}, err
			}
			arr = append(arr, i)
		}
		return value.Int64Array(arr), nil
	case value.KindFloatArray:
		r := bytereader.New(payload)
		var arr []float32
		for r.Len() >= 4 {
			f, err := r.Float32()
			if err != nil {
				return value.Value{}, err
			}
			arr = append(arr, f)
		}
		return value.FloatArray(arr), nil
	case value.KindDoubleArray:
		r := bytereader.New(payload)
		var arr []float64
		for r.Len() >= 8 {
			d, err := r.Float64()
			if err != nil {
				return value.Value{}, err
			}
			arr = append(arr, d)
		}
		return value.DoubleArray(arr), nil
	case value.KindStringArray:
		r := bytereader.New(payload)
		var arr []string
		for r.Len() >= 4 {
			l, err := r.Uint32()
			if err != nil {
				return value.Value{}, err
			}
			s, err := r.String(int(l))
			if err != nil {
				return value.Value{}, err
			}
			arr = append(arr, s)
		}
		return value.StringArray(arr), nil
	case value.KindRaw:
		fallthrough
	default:
		return value.Raw(append([]byte(nil), payload...)), nil
	}
}
