package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tagmirror/internal/driver"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		node *Node
		want NodeKind
	}{
		{NewFolder("Tags"), KindStructured},
		{NewObject("Motor"), KindStructured},
		{NewTagStructure("UDT"), KindStructured},
		{NewTagStructure("UDTArray", 8), KindStructured},
		{NewTag("Speed", &driver.CODESYSTag{}, Int16), KindScalarVariable},
		{NewVariable("Level", Float), KindScalarVariable},
		{NewVariable("ArrayDimensions", UInt32, 1), KindBookkeeping},
		{NewVariable("Motor_arraydimensions", UInt32, 1), KindBookkeeping},
		{NewTagStructure("ARRAYDIMENSIONS"), KindBookkeeping},
		{NewAlarm("DAlm_X", "DAlm_X"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.node.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.node))
		})
	}
}

func TestIsStructureArray(t *testing.T) {
	assert.True(t, IsStructureArray(NewTagStructure("UDTArray", 8)))
	assert.False(t, IsStructureArray(NewTagStructure("UDT")))
	assert.False(t, IsStructureArray(NewVariable("Arr", Int16, 8)))
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "structured", KindStructured.String())
	assert.Equal(t, "bookkeeping", KindBookkeeping.String())
	assert.Equal(t, "unknown", NodeKind(99).String())
}
