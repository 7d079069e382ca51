package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagmirror/internal/driver"
	"tagmirror/internal/model"
)

const plantYAML = `
name: Plant
nodes:
  - name: Model
    class: folder
    children:
      - name: Motor
        class: object
        children:
          - name: Speed
            class: variable
            data_type: Int32
            link:
              path: ../../../CommDrivers/Tags/Speed
          - name: Status
            class: variable
            data_type: UInt16
            array: [4]
            link:
              path: ../../../CommDrivers/Tags/Status
              element: 2
              bit: 7
              mode: read
  - name: Alarms
    class: folder
    children:
      - name: DAlm_Fault
        class: alarm
        message: DAlm_Fault
  - name: CommDrivers
    class: folder
    children:
      - name: Tags
        class: tag_structure
        children:
          - name: Speed
            class: tag
            data_type: Int32
            driver:
              kind: S7TCP
              fields:
                MemoryArea: Merker
                BlockNumber: "10"
          - name: Status
            class: tag
            data_type: UInt16
            array: [4]
            driver:
              kind: Modbus
              fields:
                Address: "40"
                SwapBytes: "true"
          - name: Axes
            class: tag_structure
            array: [3]
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(plantYAML))
	require.NoError(t, err)

	assert.Equal(t, "Plant", p.Name)
	assert.Len(t, p.Root.Children(), 3)

	speed, err := p.Get("CommDrivers/Tags/Speed")
	require.NoError(t, err)
	assert.Equal(t, model.ClassTag, speed.Class)
	assert.Equal(t, model.Int32, speed.DataType)
	assert.Equal(t, &driver.S7TCPTag{MemoryArea: driver.S7Merker, BlockNumber: 10}, speed.Driver)

	status, err := p.Get("CommDrivers/Tags/Status")
	require.NoError(t, err)
	assert.Equal(t, []uint32{4}, status.ArrayShape)
	assert.Equal(t, &driver.ModbusTag{Address: 40, SwapBytes: true}, status.Driver)

	axes, err := p.Get("CommDrivers/Tags/Axes")
	require.NoError(t, err)
	assert.True(t, model.IsStructureArray(axes))

	mirrored, err := p.Get("Model/Motor/Status")
	require.NoError(t, err)
	require.NotNil(t, mirrored.Link)
	assert.Equal(t, "../../../CommDrivers/Tags/Status[2].7", mirrored.Link.String())
	assert.Equal(t, model.LinkRead, mirrored.Link.Mode)

	target, err := mirrored.Link.Resolve(mirrored)
	require.NoError(t, err)
	assert.Same(t, status, target)

	plain, err := p.Get("Model/Motor/Speed")
	require.NoError(t, err)
	assert.Equal(t, model.LinkReadWrite, plain.Link.Mode)

	alarm, err := p.Get("Alarms/DAlm_Fault")
	require.NoError(t, err)
	assert.Equal(t, "DAlm_Fault", alarm.Message)
}

func TestMarshalRoundTrip(t *testing.T) {
	p, err := Parse([]byte(plantYAML))
	require.NoError(t, err)

	first, err := Marshal(p)
	require.NoError(t, err)

	again, err := Parse(first)
	require.NoError(t, err)

	second, err := Marshal(again)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	before, err := p.Get("CommDrivers/Tags/Speed")
	require.NoError(t, err)
	after, err := again.Get("CommDrivers/Tags/Speed")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Driver, after.Driver)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no name", yaml: "nodes: []"},
		{name: "bad yaml", yaml: "name: [unclosed"},
		{name: "unknown class", yaml: "name: P\nnodes:\n  - name: X\n    class: widget"},
		{name: "unnamed node", yaml: "name: P\nnodes:\n  - class: folder"},
		{name: "bad data type", yaml: "name: P\nnodes:\n  - name: X\n    class: variable\n    data_type: Int99"},
		{name: "tag without driver", yaml: "name: P\nnodes:\n  - name: X\n    class: tag\n    data_type: Int16"},
		{name: "unknown driver", yaml: "name: P\nnodes:\n  - name: X\n    class: tag\n    data_type: Int16\n    driver:\n      kind: Profinet"},
		{name: "unknown field", yaml: "name: P\nnodes:\n  - name: X\n    class: tag\n    data_type: Int16\n    driver:\n      kind: CODESYS\n      fields:\n        Address: \"1\""},
		{name: "bad field value", yaml: "name: P\nnodes:\n  - name: X\n    class: tag\n    data_type: Int16\n    driver:\n      kind: Modbus\n      fields:\n        Address: \"70000\""},
		{name: "bad link mode", yaml: "name: P\nnodes:\n  - name: X\n    class: variable\n    data_type: Int16\n    link:\n      path: ../Y\n      mode: sideways"},
		{name: "bad id", yaml: "name: P\nnodes:\n  - name: X\n    class: folder\n    id: nope"},
		{name: "duplicate", yaml: "name: P\nnodes:\n  - name: X\n    class: folder\n  - name: X\n    class: object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	p := New("Plant")

	for _, name := range []string{ModelFolder, AlarmsFolder, CommDriversFolder} {
		n, err := p.Get(name)
		require.NoError(t, err)
		assert.Equal(t, model.ClassFolder, n.Class)
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")

	p := New("Plant")
	tags, err := p.Get(CommDriversFolder)
	require.NoError(t, err)
	require.NoError(t, tags.Add(model.NewTag("Level",
		&driver.RAEtherNetIPTag{SymbolName: "Tank.Level", Deadband: 0.5}, model.Float)))

	require.NoError(t, WriteFile(p, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	level, err := loaded.Get("CommDrivers/Level")
	require.NoError(t, err)
	assert.Equal(t, &driver.RAEtherNetIPTag{SymbolName: "Tank.Level", Deadband: 0.5}, level.Driver)
	assert.Equal(t, model.Float, level.DataType)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
