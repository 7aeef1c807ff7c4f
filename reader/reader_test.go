package reader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robolog/wpilog/record"
	"github.com/robolog/wpilog/value"
)

// buildLog assembles a full in-memory wpilog file: the header with the
// default version bytes and the given metadata, followed by the
// concatenation of the pre-encoded records.
func buildLog(t *testing.T, headerMetadata string, records ...[]byte) []byte {
	t.Helper()

	buf := []byte(Magic)
	buf = append(buf, 0x00, 0x01)
	metaLen := uint32(len(headerMetadata))
	buf = append(buf,
		byte(metaLen), byte(metaLen>>8), byte(metaLen>>16), byte(metaLen>>24))
	buf = append(buf, headerMetadata...)

	for _, r := range records {
		buf = append(buf, r...)
	}

	return buf
}

func mustEncodeControl(t *testing.T, body record.ControlBody, ts uint64) []byte {
	t.Helper()
	b, err := record.EncodeControlRecord(body, ts)
	require.NoError(t, err)

	return b
}

func mustEncodeData(t *testing.T, entryID uint32, v value.Value, ts uint64) []byte {
	t.Helper()
	b, err := record.EncodeDataRecord(entryID, v, ts)
	require.NoError(t, err)

	return b
}

func TestOpenTinyRoundTrip(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/speed", Type: "double", Metadata: ""}
	data := mustEncodeData(t, 1, value.Double(3.5), 100)
	finish := record.Finish{EntryID: 1}

	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		data,
		mustEncodeControl(t, finish, 200))

	r, err := Open(buf)
	require.NoError(t, err)

	values, ok := r.ReadEntry("/speed")
	require.True(t, ok)
	require.Len(t, values, 1)
	d, ok := values[0].Value.AsDouble()
	require.True(t, ok)
	require.Equal(t, 3.5, d)

	status, ok := r.EntryLifeStatus("/speed")
	require.True(t, ok)
	require.False(t, status.Alive)
	require.Equal(t, uint64(0), status.Start)
	require.Equal(t, uint64(200), status.End)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	buf := []byte("NOTLOG")
	buf = append(buf, 0x00, 0x01, 0, 0, 0, 0)

	_, err := Open(buf)
	require.Error(t, err)
}

func TestOpenRejectsVersionMismatch(t *testing.T) {
	buf := []byte(Magic)
	buf = append(buf, 0x05, 0x09, 0, 0, 0, 0)

	_, err := Open(buf)
	require.Error(t, err)
}

func TestWithNoVersionCheckAllowsAnyVersion(t *testing.T) {
	buf := []byte(Magic)
	buf = append(buf, 0x05, 0x09, 0, 0, 0, 0)

	_, err := Open(buf, WithNoVersionCheck())
	require.NoError(t, err)
}

func TestDataIsDecodedUnderTheCurrentlyBoundType(t *testing.T) {
	// A corrected reading of the ingest rule: a data record's payload is
	// always decoded under the entry's currently-bound type (seeded by
	// its Start record), never re-checked against some separately declared
	// type on the record itself — the decode step already honors the
	// type mapping, so a value that decodes successfully is accepted.
	start := record.Start{EntryID: 1, Name: "/flag", Type: "boolean", Metadata: ""}
	data := mustEncodeData(t, 1, value.Boolean(true), 50)

	buf := buildLog(t, "", mustEncodeControl(t, start, 0), data)

	r, err := Open(buf)
	require.NoError(t, err)

	values, ok := r.ReadEntry("/flag")
	require.True(t, ok)
	require.Len(t, values, 1)
	b, ok := values[0].Value.AsBoolean()
	require.True(t, ok)
	require.True(t, b)
}

func TestDataForDeadEntryIsDropped(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	finish := record.Finish{EntryID: 1}
	lateData := mustEncodeData(t, 1, value.Int64(9), 50)

	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		mustEncodeControl(t, finish, 10),
		lateData)

	r, err := Open(buf)
	require.NoError(t, err)

	values, ok := r.ReadEntry("/x")
	require.True(t, ok)
	require.Empty(t, values)
}

func TestTypeSerialSwitchesDecodeKind(t *testing.T) {
	startA := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	dataA := mustEncodeData(t, 1, value.Int64(7), 10)
	finishA := record.Finish{EntryID: 1}

	startB := record.Start{EntryID: 2, Name: "/x2", Type: "double", Metadata: ""}
	dataB := mustEncodeData(t, 2, value.Double(2.5), 20)

	buf := buildLog(t, "",
		mustEncodeControl(t, startA, 0),
		dataA,
		mustEncodeControl(t, finishA, 15),
		mustEncodeControl(t, startB, 16),
		dataB)

	r, err := Open(buf)
	require.NoError(t, err)

	xVals, ok := r.ReadEntry("/x")
	require.True(t, ok)
	require.Len(t, xVals, 1)
	i, ok := xVals[0].Value.AsInt64()
	require.True(t, ok)
	require.Equal(t, int64(7), i)

	x2Vals, ok := r.ReadEntry("/x2")
	require.True(t, ok)
	require.Len(t, x2Vals, 1)
	d, ok := x2Vals[0].Value.AsDouble()
	require.True(t, ok)
	require.Equal(t, 2.5, d)
}

func TestArrayValueBoundsAreGreedilyDecoded(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/arr", Type: "int64[]", Metadata: ""}
	data := mustEncodeData(t, 1, value.Int64Array([]int64{1, 2, 3}), 5)

	buf := buildLog(t, "", mustEncodeControl(t, start, 0), data)

	r, err := Open(buf)
	require.NoError(t, err)

	values, ok := r.ReadEntry("/arr")
	require.True(t, ok)
	require.Len(t, values, 1)
	arr, ok := values[0].Value.AsInt64Array()
	require.True(t, ok)
	require.Equal(t, []int64{1, 2, 3}, arr)
}

func TestTrailingTruncatedRecordIsDropped(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	data := mustEncodeData(t, 1, value.Int64(9), 5)

	buf := buildLog(t, "", mustEncodeControl(t, start, 0), data)
	// Chop off the last 3 bytes: a partial trailing record fragment.
	buf = buf[:len(buf)-3]

	r, err := Open(buf)
	require.NoError(t, err)

	values, ok := r.ReadEntry("/x")
	require.True(t, ok)
	require.Empty(t, values)
}

func TestEntryLifetimeIgnoresDoubleStartAndDoubleFinish(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	finish := record.Finish{EntryID: 1}

	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		mustEncodeControl(t, start, 1),
		mustEncodeControl(t, finish, 2),
		mustEncodeControl(t, finish, 3))

	r, err := Open(buf)
	require.NoError(t, err)

	status, ok := r.EntryLifeStatus("/x")
	require.True(t, ok)
	require.False(t, status.Alive)
	require.Equal(t, uint64(0), status.Start)
	require.Equal(t, uint64(2), status.End)
}

func TestReadEntryAfterBeforeBetween(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		mustEncodeData(t, 1, value.Int64(1), 10),
		mustEncodeData(t, 1, value.Int64(2), 20),
		mustEncodeData(t, 1, value.Int64(3), 30))

	r, err := Open(buf)
	require.NoError(t, err)

	after, ok := r.ReadEntryAfter("/x", 10)
	require.True(t, ok)
	require.Len(t, after, 2)

	before, ok := r.ReadEntryBefore("/x", 30)
	require.True(t, ok)
	require.Len(t, before, 2)

	between, ok := r.ReadEntryBetween("/x", 10, 20)
	require.True(t, ok)
	require.Len(t, between, 2)
}

func TestHeaderMetadataAndFormatVersion(t *testing.T) {
	buf := buildLog(t, "robot=2910")

	r, err := Open(buf)
	require.NoError(t, err)
	require.Equal(t, "robot=2910", r.HeaderMetadata())
	require.Equal(t, Version{Hi: 1, Lo: 0}, r.FormatVersion())
}
