package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robolog/wpilog/errs"
)

func TestStartRoundTrip(t *testing.T) {
	s := Start{EntryID: 3, Name: "/robot/x", Type: "double", Metadata: `{"unit":"m"}`}
	payload := EncodeControlPayload(s)

	got, err := DecodeControlPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestFinishRoundTrip(t *testing.T) {
	f := Finish{EntryID: 42}
	payload := EncodeControlPayload(f)

	got, err := DecodeControlPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestMetadataRecordRoundTrip(t *testing.T) {
	m := MetadataRecord{EntryID: 9, Metadata: "updated"}
	payload := EncodeControlPayload(m)

	got, err := DecodeControlPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMetadataRecordFieldOrderIsEntryIDThenLength(t *testing.T) {
	m := MetadataRecord{EntryID: 9, Metadata: "abc"}
	payload := EncodeControlPayload(m)

	// discriminator, then 4-byte entry id (9), then 4-byte length (3)
	assert.Equal(t, byte(controlMetadata), payload[0])
	assert.Equal(t, []byte{9, 0, 0, 0}, payload[1:5])
	assert.Equal(t, []byte{3, 0, 0, 0}, payload[5:9])
	assert.Equal(t, "abc", string(payload[9:]))
}

func TestUnknownDiscriminatorFails(t *testing.T) {
	_, err := DecodeControlPayload([]byte{0x7F})
	assert.ErrorIs(t, err, errs.ErrUnsupportedRecordType)
}
