package mirror

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tagmirror/internal/driver"
	"tagmirror/internal/model"
)

type treeShape struct {
	Name     string
	Class    string
	DataType string
	Shape    []uint32
	Children []treeShape
}

func shapeOf(n *model.Node) treeShape {
	s := treeShape{
		Name:  n.Name,
		Class: n.Class.String(),
		Shape: n.ArrayShape,
	}

	if n.DataType.IsValid() {
		s.DataType = n.DataType.String()
	}

	for _, c := range n.Children() {
		s.Children = append(s.Children, shapeOf(c))
	}

	return s
}

// fixture builds a project with a driver tree under CommDrivers and an empty Model folder.
//
//	CommDrivers/PLC1/Tags/Motor{Speed:Int32, Running:Boolean, ArrayDimensions}
//	CommDrivers/PLC1/Tags/Axes[4]{X:Double, Y:Double, ArrayDimensions}
//	CommDrivers/PLC1/Tags/Valve/Open (name contains a slash)
//	CommDrivers/PLC1/Tags/Status:UInt16[8]
func fixture(t *testing.T) (tags, dest *model.Node) {
	t.Helper()

	root := model.NewFolder("Project")
	drivers := model.NewFolder("CommDrivers")
	plc := model.NewFolder("PLC1")
	tags = model.NewTagStructure("Tags")
	dest = model.NewFolder("Model")

	require.NoError(t, root.Add(drivers))
	require.NoError(t, root.Add(dest))
	require.NoError(t, drivers.Add(plc))
	require.NoError(t, plc.Add(tags))

	motor := model.NewTagStructure("Motor")
	require.NoError(t, tags.Add(motor))
	require.NoError(t, motor.Add(model.NewTag("Speed", &driver.S7TCPTag{}, model.Int32)))
	require.NoError(t, motor.Add(model.NewTag("Running", &driver.S7TCPTag{}, model.Boolean)))
	require.NoError(t, motor.Add(model.NewVariable("ArrayDimensions", model.UInt32, 1)))

	axes := model.NewTagStructure("Axes", 4)
	require.NoError(t, tags.Add(axes))
	require.NoError(t, axes.Add(model.NewTag("X", &driver.S7TCPTag{}, model.Double)))
	require.NoError(t, axes.Add(model.NewTag("Y", &driver.S7TCPTag{}, model.Double)))
	require.NoError(t, axes.Add(model.NewVariable("ArrayDimensions", model.UInt32, 1)))

	require.NoError(t, tags.Add(model.NewTag("Valve/Open", &driver.S7TCPTag{}, model.Boolean)))
	require.NoError(t, tags.Add(model.NewTag("Status", &driver.S7TCPTag{}, model.UInt16, 8)))

	return tags, dest
}

func expectedShape() treeShape {
	return treeShape{
		Name: "Model", Class: "folder",
		Children: []treeShape{{
			Name: "Tags", Class: "object",
			Children: []treeShape{
				{
					Name: "Motor", Class: "object",
					Children: []treeShape{
						{Name: "Speed", Class: "variable", DataType: "Int32"},
						{Name: "Running", Class: "variable", DataType: "Boolean"},
					},
				},
				{Name: "Axes_X", Class: "variable", DataType: "Double"},
				{Name: "Axes_Y", Class: "variable", DataType: "Double"},
				{Name: "Valve_Open", Class: "variable", DataType: "Boolean"},
				{Name: "Status", Class: "variable", DataType: "UInt16", Shape: []uint32{8}},
			},
		}},
	}
}

func TestMirrorBuildsModel(t *testing.T) {
	tags, dest := fixture(t)

	res, err := New(nil, Options{}).Mirror(tags, dest)
	require.NoError(t, err)

	if diff := cmp.Diff(expectedShape(), shapeOf(dest)); diff != "" {
		t.Fatalf("mirrored tree mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(shapeOf(dest)))
	}

	assert.Equal(t, 2, res.ContainersCreated)
	assert.Equal(t, 6, res.VariablesCreated)
	assert.Zero(t, res.NodesReused)
	assert.Zero(t, res.LinksBound)
	assert.Zero(t, res.Failed)

	for n := range dest.All() {
		assert.Nil(t, n.Link, n.Name)
	}
}

func TestMirrorIsIdempotent(t *testing.T) {
	tags, dest := fixture(t)
	s := New(nil, Options{SetDynamicLinks: true})

	_, err := s.Mirror(tags, dest)
	require.NoError(t, err)
	first := shapeOf(dest)

	res, err := s.Mirror(tags, dest)
	require.NoError(t, err)

	if diff := cmp.Diff(first, shapeOf(dest)); diff != "" {
		t.Fatalf("second run changed the tree (-first +second):\n%s", diff)
	}

	assert.Zero(t, res.ContainersCreated)
	assert.Zero(t, res.VariablesCreated)
	assert.Equal(t, 8, res.NodesReused)
	assert.Equal(t, 6, res.LinksBound)
}

func TestMirrorSanitizesSlash(t *testing.T) {
	src := model.NewTagStructure("Root")
	require.NoError(t, src.Add(model.NewTagStructure("A/B")))
	require.NoError(t, src.Child("A/B").Add(model.NewVariable("C/D", model.Int16)))

	dest := model.NewFolder("Model")
	_, err := New(nil, Options{}).Mirror(src, dest)
	require.NoError(t, err)

	got, err := dest.Get("Root/A_B/C_D")
	require.NoError(t, err)
	assert.Equal(t, model.Int16, got.DataType)

	// second run finds the sanitized names instead of creating new ones
	res, err := New(nil, Options{}).Mirror(src, dest)
	require.NoError(t, err)
	assert.Zero(t, res.ContainersCreated+res.VariablesCreated)
}

func TestMirrorFlattensStructureArray(t *testing.T) {
	parent := model.NewTagStructure("Station")
	tmpl := model.NewTagStructure("Axes", 3)
	require.NoError(t, parent.Add(tmpl))
	require.NoError(t, tmpl.Add(model.NewVariable("X", model.Float)))
	require.NoError(t, tmpl.Add(model.NewVariable("Y", model.Float)))

	dest := model.NewFolder("Model")
	_, err := New(nil, Options{}).Mirror(parent, dest)
	require.NoError(t, err)

	station := dest.Child("Station")
	require.NotNil(t, station)
	assert.Nil(t, station.Child("Axes"))
	assert.NotNil(t, station.Child("Axes_X"))
	assert.NotNil(t, station.Child("Axes_Y"))
	assert.Len(t, station.Children(), 2)
}

func TestMirrorTopLevelStructureArray(t *testing.T) {
	tmpl := model.NewTagStructure("Axes", 2)
	require.NoError(t, tmpl.Add(model.NewVariable("X", model.Float)))

	dest := model.NewFolder("Model")
	_, err := New(nil, Options{}).Mirror(tmpl, dest)
	require.NoError(t, err)

	assert.NotNil(t, dest.Child("Axes_X"))
}

func TestMirrorBindsLinks(t *testing.T) {
	tags, dest := fixture(t)

	res, err := New(nil, Options{SetDynamicLinks: true}).Mirror(tags, dest)
	require.NoError(t, err)
	assert.Equal(t, 6, res.LinksBound)

	speed, err := dest.Get("Tags/Motor/Speed")
	require.NoError(t, err)
	require.NotNil(t, speed.Link)
	assert.Equal(t, model.LinkReadWrite, speed.Link.Mode)

	target, err := speed.Link.Resolve(speed)
	require.NoError(t, err)
	assert.Same(t, tags.Child("Motor").Child("Speed"), target)

	axesX, err := dest.Get("Tags/Axes_X")
	require.NoError(t, err)
	target, err = axesX.Link.Resolve(axesX)
	require.NoError(t, err)
	assert.Same(t, tags.Child("Axes").Child("X"), target)
}

func TestMirrorRebindsLinksEveryRun(t *testing.T) {
	tags, dest := fixture(t)
	s := New(nil, Options{SetDynamicLinks: true})

	_, err := s.Mirror(tags, dest)
	require.NoError(t, err)

	speed, err := dest.Get("Tags/Motor/Speed")
	require.NoError(t, err)
	speed.Link = &model.DynamicLink{Path: "../Nowhere"}

	_, err = s.Mirror(tags, dest)
	require.NoError(t, err)

	_, err = speed.Link.Resolve(speed)
	assert.NoError(t, err)
}

func TestMirrorContinuesAfterItemFailure(t *testing.T) {
	tags, dest := fixture(t)
	core, logs := observer.New(zapcore.ErrorLevel)

	// a variable squatting on the container name
	mirroredTags := model.NewObject("Tags")
	require.NoError(t, dest.Add(mirroredTags))
	require.NoError(t, mirroredTags.Add(model.NewVariable("Motor", model.Int32)))
	require.NoError(t, mirroredTags.Add(model.NewObject("Status")))

	res, err := New(zap.New(core), Options{}).Mirror(tags, dest)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Failed)
	assert.Len(t, res.Diagnostics.Errors, 2)
	assert.Equal(t, 2, logs.FilterMessage("Cannot mirror node").Len())
	assert.NotNil(t, mirroredTags.Child("Axes_X"))
	assert.NotNil(t, mirroredTags.Child("Valve_Open"))
}

func TestMirrorRefusesLinksAcrossTrees(t *testing.T) {
	tags, _ := fixture(t)
	detached := model.NewFolder("Model")

	core, logs := observer.New(zapcore.ErrorLevel)
	res, err := New(zap.New(core), Options{SetDynamicLinks: true}).Mirror(tags, detached)
	require.NoError(t, err)

	// Speed, Running, Axes_X, Axes_Y, Valve_Open, Status
	assert.Equal(t, 6, res.Failed)
	assert.Zero(t, res.VariablesCreated)
	assert.Zero(t, res.LinksBound)
	assert.Len(t, res.Diagnostics.Errors, 6)
	assert.Equal(t, 6, logs.FilterMessage("Cannot mirror node").Len())

	for _, d := range res.Diagnostics.Errors {
		assert.Contains(t, d.Message, model.ErrDifferentTrees.Error())
	}

	for n := range detached.All() {
		assert.NotEqual(t, model.ClassVariable, n.Class, n.Name)
	}

	res, err = New(nil, Options{}).Mirror(tags, detached)
	require.NoError(t, err)
	assert.Zero(t, res.Failed)
	assert.Equal(t, 6, res.VariablesCreated)
}

func TestMirrorRejectsNil(t *testing.T) {
	_, err := New(nil, Options{}).Mirror(nil, model.NewFolder("Model"))
	assert.Error(t, err)

	_, err = New(nil, Options{}).Mirror(model.NewFolder("Src"), nil)
	assert.Error(t, err)
}
