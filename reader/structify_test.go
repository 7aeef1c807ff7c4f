package reader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robolog/wpilog/record"
	"github.com/robolog/wpilog/value"
)

func TestStructifyWrapsRawValuesWithRegisteredType(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/pose", Type: "Pose2d", Metadata: ""}
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	data := mustEncodeData(t, 1, value.Raw(payload), 10)

	buf := buildLog(t, "", mustEncodeControl(t, start, 0), data)

	r, err := Open(buf)
	require.NoError(t, err)

	registry := value.MapRegistry{}
	registry.Register(value.StructDescriptor{TypeStr: "Pose2d", Size: 8})
	cache := value.NewDescriptorCache(registry)

	n, ok := r.Structify("/pose", cache)
	require.True(t, ok)
	require.Equal(t, 1, n)

	values, ok := r.ReadEntry("/pose")
	require.True(t, ok)
	require.Len(t, values, 1)
	sv, ok := values[0].Value.AsStruct()
	require.True(t, ok)
	require.Equal(t, "Pose2d", sv.Desc.TypeStr)
	require.Equal(t, 1, sv.Count)
	require.Equal(t, payload, sv.Data)
}

func TestStructifyLeavesUnregisteredTypeUntouched(t *testing.T) {
	start := record.Start{EntryID: 1, Name: "/x", Type: "Unknown", Metadata: ""}
	data := mustEncodeData(t, 1, value.Raw([]byte{9, 9}), 10)

	buf := buildLog(t, "", mustEncodeControl(t, start, 0), data)

	r, err := Open(buf)
	require.NoError(t, err)

	cache := value.NewDescriptorCache(value.MapRegistry{})
	n, ok := r.Structify("/x", cache)
	require.True(t, ok)
	require.Equal(t, 0, n)

	values, _ := r.ReadEntry("/x")
	require.Equal(t, value.KindRaw, values[0].Value.Kind())
}

func TestStructifyUnknownKeyReturnsFalse(t *testing.T) {
	buf := buildLog(t, "")
	r, err := Open(buf)
	require.NoError(t, err)

	cache := value.NewDescriptorCache(value.MapRegistry{})
	_, ok := r.Structify("/missing", cache)
	require.False(t, ok)
}
