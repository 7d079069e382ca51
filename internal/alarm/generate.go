package alarm

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"tagmirror/internal/diagnostic"
	"tagmirror/internal/model"
)

// NamePrefix starts the name of every generated alarm.
const NamePrefix = "DAlm"

var errNilNode = errors.New("source and alarms folder must not be nil")

// Result accumulates what one Generate call did.
type Result struct {
	Generated      int
	Duplicates     int
	FoldersCreated int
	Failed         int

	Diagnostics diagnostic.Diagnostics
}

// Generator raises digital alarms into an alarms root folder.
type Generator struct {
	root   *model.Node
	logger *zap.Logger
}

// NewGenerator returns a Generator writing below alarmsRoot. A nil logger
// discards output.
func NewGenerator(alarmsRoot *model.Node, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{root: alarmsRoot, logger: logger}
}

// Generate walks src and derives alarms for every variable found. A failing
// variable is logged and skipped.
func (g *Generator) Generate(src *model.Node) Result {
	var res Result

	if src == nil || g.root == nil {
		res.Failed++
		res.Diagnostics.AddError(diagnostic.CodeStructural, errNilNode.Error(), "")
		g.logger.Error("Cannot generate alarms", zap.Error(errNilNode))

		return res
	}

	g.fetch(src, &res)

	g.logger.Info("Digital alarms generated",
		zap.String("source", src.Name),
		zap.Int("generated", res.Generated),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("folders_created", res.FoldersCreated),
		zap.Int("failed", res.Failed))

	return res
}

// Clear removes every alarm and alarm folder below alarmsRoot and returns
// how many direct children were removed.
func Clear(alarmsRoot *model.Node) int {
	if alarmsRoot == nil {
		return 0
	}

	return alarmsRoot.ClearChildren()
}

func (g *Generator) fetch(n *model.Node, res *Result) {
	switch model.Classify(n) {
	case model.KindStructured:
		for _, c := range n.Children() {
			g.fetch(c, res)
		}
	case model.KindScalarVariable:
		if err := g.generateFor(n, res); err != nil {
			res.Failed++
			res.Diagnostics.AddError(diagnostic.CodeStructural, err.Error(), n.Name)
			g.logger.Error("Cannot generate alarms", zap.String("node", n.Name), zap.Error(err))
		}
	default:
	}
}

// bitWidth is the number of alarms one value of dt fans out to.
func bitWidth(dt model.DataType) uint32 {
	switch dt {
	case model.Int16, model.UInt16, model.Int32, model.UInt32:
		return uint32(dt.Bits())
	default:
		return 1
	}
}

func (g *Generator) generateFor(v *model.Node, res *Result) error {
	owner := v.Owner()
	if owner == nil {
		return errors.New("variable has no owner")
	}

	if v.Root() != g.root.Root() {
		return fmt.Errorf("%w: %q is not in the tree of %q", model.ErrDifferentTrees, v.Name, g.root.Name)
	}

	isBool := v.DataType == model.Boolean
	width := bitWidth(v.DataType)
	perBit := !isBool && width > 1
	isArray := len(v.ArrayShape) == 1

	container, err := g.container(v, owner, isBool, res)
	if err != nil {
		return err
	}

	base := NamePrefix + "_" + owner.Name + "_" + v.Name
	emit := func(c candidate) error {
		return g.emit(container, v, c, res)
	}

	if isArray {
		for i := range v.ArrayShape[0] {
			if !perBit {
				if err := emit(candidate{name: indexed(base, i), element: &i}); err != nil {
					return err
				}

				continue
			}

			for j := range width {
				if err := emit(candidate{name: indexed(base, i, j), element: &i, bit: &j}); err != nil {
					return err
				}
			}
		}

		return nil
	}

	if !perBit {
		return emit(candidate{name: base})
	}

	for j := range width {
		if err := emit(candidate{name: indexed(base, j), bit: &j}); err != nil {
			return err
		}
	}

	return nil
}

type candidate struct {
	name    string
	element *uint32
	bit     *uint32
}

func indexed(base string, indices ...uint32) string {
	for _, i := range indices {
		base += "_" + strconv.FormatUint(uint64(i), 10)
	}

	return base
}

func (g *Generator) emit(container, v *model.Node, c candidate, res *Result) error {
	name := model.SanitizeName(c.name)

	if container.Child(name) != nil {
		res.Duplicates++
		res.Diagnostics.AddWarning(diagnostic.CodeDuplicate, name+" already exists into "+container.Name, container.Name)
		g.logger.Warn("Alarm already exists",
			zap.String("alarm", name),
			zap.String("container", container.Name))

		return nil
	}

	alm := model.NewAlarm(name, name)
	if err := container.Add(alm); err != nil {
		return fmt.Errorf("add alarm %s: %w", name, err)
	}

	link, err := model.NewLink(alm, v)
	if err != nil {
		return fmt.Errorf("link alarm %s: %w", name, err)
	}

	if c.element != nil {
		link = link.AtElement(*c.element)
	}

	if c.bit != nil {
		link = link.AtBit(*c.bit)
	}

	alm.Link = link
	res.Generated++

	return nil
}

// container returns where the alarms of v go, creating the per-variable
// folder on demand.
func (g *Generator) container(v, owner *model.Node, isBool bool, res *Result) (*model.Node, error) {
	if isBool && !v.IsArray() {
		return g.root, nil
	}

	name := model.SanitizeName(owner.Name + "_" + v.Name + "_alarms")

	if existing := g.root.Child(name); existing != nil {
		if existing.Class != model.ClassFolder {
			return nil, fmt.Errorf("%s exists into %s but is a %s", name, g.root.Name, existing.Class)
		}

		g.logger.Debug("Reusing alarm folder", zap.String("folder", name))

		return existing, nil
	}

	folder := model.NewFolder(name)
	if err := g.root.Add(folder); err != nil {
		return nil, fmt.Errorf("add alarm folder %s: %w", name, err)
	}

	res.FoldersCreated++

	return folder, nil
}
