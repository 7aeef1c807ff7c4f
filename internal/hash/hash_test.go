package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeHash(t *testing.T) {
	tests := []struct {
		name    string
		typeStr string
	}{
		{"empty string", ""},
		{"short string", "Pose2d"},
		{"long struct name", "frc.robot.DrivetrainState"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// TypeHash must be a pure function of its input: the cache in
			// value.DescriptorCache relies on this for correctness.
			assert.Equal(t, TypeHash(tt.typeStr), TypeHash(tt.typeStr))
		})
	}
	assert.NotEqual(t, TypeHash("a"), TypeHash("b"))
}
