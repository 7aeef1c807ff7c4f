package reader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robolog/wpilog/record"
	"github.com/robolog/wpilog/value"
)

func TestEntryFilterReaderBoundsOnly(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		mustEncodeData(t, 1, value.Int64(1), 10),
		mustEncodeData(t, 1, value.Int64(2), 20),
		mustEncodeData(t, 1, value.Int64(3), 30))

	r, err := Open(buf)
	require.NoError(t, err)

	got := NewEntryFilterReader(r, "/x").Between(10, 20).Run()
	require.Len(t, got, 2)
}

func TestEntryFilterReaderWithMetadataPredicate(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: "phase=auto"}
	meta := record.MetadataRecord{EntryID: 1, Metadata: "phase=teleop"}

	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		mustEncodeData(t, 1, value.Int64(1), 5),
		mustEncodeControl(t, meta, 15),
		mustEncodeData(t, 1, value.Int64(2), 20))

	r, err := Open(buf)
	require.NoError(t, err)

	got := NewEntryFilterReader(r, "/x").
		WithMetadata(func(s string) bool { return s == "phase=teleop" }).
		Run()
	require.Len(t, got, 1)
	i, ok := got[0].Value.AsInt64()
	require.True(t, ok)
	require.Equal(t, int64(2), i)
}

func TestEntryFilterReaderWithRequiredTypePredicate(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "int64", Metadata: ""}
	buf := buildLog(t, "",
		mustEncodeControl(t, start, 0),
		mustEncodeData(t, 1, value.Int64(1), 5))

	r, err := Open(buf)
	require.NoError(t, err)

	got := NewEntryFilterReader(r, "/x").RequiredType("int64").Run()
	require.Len(t, got, 1)

	none := NewEntryFilterReader(r, "/x").RequiredType("double").Run()
	require.Empty(t, none)
}

func TestEntryFilterReaderUnknownKeyReturnsNil(t *testing.T) {
	buf := buildLog(t, "")
	r, err := Open(buf)
	require.NoError(t, err)

	got := NewEntryFilterReader(r, "/missing").Run()
	require.Nil(t, got)
}
