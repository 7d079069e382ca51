package mirror

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"tagmirror/internal/diagnostic"
	"tagmirror/internal/model"
)

// Options configures a Synchronizer.
type Options struct {
	// SetDynamicLinks binds every mirrored variable to its source variable.
	SetDynamicLinks bool
}

// Result accumulates what one Mirror call did.
type Result struct {
	ContainersCreated int
	VariablesCreated  int
	NodesReused       int
	LinksBound        int
	Failed            int

	Diagnostics diagnostic.Diagnostics
}

// Synchronizer mirrors source trees into a destination tree.
type Synchronizer struct {
	logger *zap.Logger
	opts   Options
}

// New returns a Synchronizer. A nil logger discards output.
func New(logger *zap.Logger, opts Options) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synchronizer{logger: logger, opts: opts}
}

// Mirror reproduces src below destParent.
func (s *Synchronizer) Mirror(src, destParent *model.Node) (Result, error) {
	var res Result

	if src == nil || destParent == nil {
		return res, errors.New("mirror: source and destination must not be nil")
	}

	s.mirror(src, destParent, "", &res)

	s.logger.Info("Model synchronized",
		zap.String("source", src.Name),
		zap.String("destination", destParent.Name),
		zap.Int("containers_created", res.ContainersCreated),
		zap.Int("variables_created", res.VariablesCreated),
		zap.Int("reused", res.NodesReused),
		zap.Int("links_bound", res.LinksBound),
		zap.Int("failed", res.Failed))

	return res, nil
}

func (s *Synchronizer) mirror(src, destParent *model.Node, prefix string, res *Result) {
	switch model.Classify(src) {
	case model.KindStructured:
		if model.IsStructureArray(src) {
			s.mirrorStructureArray(src, destParent, res)
		} else {
			s.mirrorObject(src, destParent, prefix, res)
		}
	case model.KindScalarVariable:
		s.mirrorVariable(src, destParent, prefix, res)
	default:
		// bookkeeping markers and alarms are not mirrored
	}
}

func (s *Synchronizer) mirrorStructureArray(src, destParent *model.Node, res *Result) {
	prefix := model.SanitizeName(src.Name) + "_"
	for _, c := range src.Children() {
		if model.IsBookkeeping(c) {
			continue
		}

		s.mirror(c, destParent, prefix, res)
	}
}

func (s *Synchronizer) mirrorObject(src, destParent *model.Node, prefix string, res *Result) {
	name := prefix + model.SanitizeName(src.Name)

	obj := destParent.Child(name)
	switch {
	case obj == nil:
		obj = model.NewObject(name)
		if err := destParent.Add(obj); err != nil {
			s.fail(res, destParent, name, err)
			return
		}

		res.ContainersCreated++
	case obj.Class.IsVariable():
		s.fail(res, destParent, name, fmt.Errorf("expected a container but found a %s", obj.Class))
		return
	default:
		res.NodesReused++
	}

	for _, c := range src.Children() {
		if model.IsBookkeeping(c) {
			continue
		}

		s.mirror(c, obj, "", res)
	}
}

func (s *Synchronizer) mirrorVariable(src, destParent *model.Node, prefix string, res *Result) {
	name := prefix + model.SanitizeName(src.Name)

	// a link cannot span two trees; fail before creating anything
	if s.opts.SetDynamicLinks && destParent.Root() != src.Root() {
		s.fail(res, destParent, name, fmt.Errorf("%w: cannot link to %q", model.ErrDifferentTrees, src.Name))
		return
	}

	v := destParent.Child(name)
	switch {
	case v == nil:
		v = model.NewVariable(name, src.DataType, src.ArrayShape...)
		if err := destParent.Add(v); err != nil {
			s.fail(res, destParent, name, err)
			return
		}

		res.VariablesCreated++
	case !v.Class.IsVariable():
		s.fail(res, destParent, name, fmt.Errorf("expected a variable but found a %s", v.Class))
		return
	default:
		res.NodesReused++

		if v.DataType != src.DataType || !slices.Equal(v.ArrayShape, src.ArrayShape) {
			s.logger.Warn("Mirrored variable differs from its source",
				zap.String("node", name),
				zap.Stringer("data_type", v.DataType),
				zap.Stringer("source_data_type", src.DataType))
		}
	}

	if !s.opts.SetDynamicLinks {
		return
	}

	link, err := model.NewLink(v, src)
	if err != nil {
		s.fail(res, destParent, name, err)
		return
	}

	v.Link = link
	res.LinksBound++
}

func (s *Synchronizer) fail(res *Result, parent *model.Node, name string, err error) {
	res.Failed++
	path := parent.Name + model.PathSeparator + name
	res.Diagnostics.AddError(diagnostic.CodeStructural, err.Error(), path)
	s.logger.Error("Cannot mirror node", zap.String("node", path), zap.Error(err))
}
