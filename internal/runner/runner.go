package runner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tagmirror/internal/alarm"
	"tagmirror/internal/config"
	"tagmirror/internal/diagnostic"
	"tagmirror/internal/match"
	"tagmirror/internal/metrics"
	"tagmirror/internal/mirror"
	"tagmirror/internal/model"
	"tagmirror/internal/project"
	"tagmirror/internal/tabular"
)

// Runner binds a loaded project to its configuration.
type Runner struct {
	project *project.Project
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New returns a Runner. A nil logger discards output; nil metrics are
// replaced by a fresh set.
func New(p *project.Project, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	if m == nil {
		m = metrics.New()
	}

	return &Runner{project: p, cfg: cfg, logger: logger, metrics: m}
}

// Metrics returns the counters the runner records into.
func (r *Runner) Metrics() *metrics.Metrics {
	return r.metrics
}

// node resolves a configured node path; key names the setting in errors.
func (r *Runner) node(key, path string) (*model.Node, error) {
	n, err := r.project.Get(path)
	if err == nil {
		return n, nil
	}

	if hint, ok := suggestPath(r.project.Root, path); ok {
		return nil, fmt.Errorf("%s %q: %w (did you mean %q?)", key, path, err, hint)
	}

	return nil, fmt.Errorf("%s %q: %w", key, path, err)
}

// suggestPath replaces every missing segment of path with the closest child
// name. It fails when some segment has no close match.
func suggestPath(root *model.Node, path string) (string, bool) {
	segments, err := model.ParsePath(path)
	if err != nil {
		return "", false
	}

	cur := root
	corrected := make([]string, 0, len(segments))

	for _, seg := range segments {
		next := cur.Child(seg)
		if next == nil {
			names := make([]string, 0, len(cur.Children()))
			for _, c := range cur.Children() {
				names = append(names, c.Name)
			}

			hint, ok := match.Suggest(seg, names)
			if !ok {
				return "", false
			}

			seg, next = hint, cur.Child(hint)
		}

		corrected = append(corrected, seg)
		cur = next
	}

	return strings.Join(corrected, model.PathSeparator), true
}

// GenerateNodesIntoModel mirrors the input node into the model folder, then
// audits the dynamic links of the model folder. Audit findings are added to
// the result as informational diagnostics.
func (r *Runner) GenerateNodesIntoModel() (mirror.Result, error) {
	src, err := r.node("sync.input_node", r.cfg.Sync.InputNode)
	if err != nil {
		return mirror.Result{}, err
	}

	dest, err := r.node("sync.model_folder", r.cfg.Sync.ModelFolder)
	if err != nil {
		return mirror.Result{}, err
	}

	syncer := mirror.New(r.logger, mirror.Options{SetDynamicLinks: r.cfg.Sync.SetDynamicLinks})

	res, err := syncer.Mirror(src, dest)
	if err != nil {
		return res, err
	}

	r.metrics.NodesCreated.WithLabelValues(metrics.ClassContainer).Add(float64(res.ContainersCreated))
	r.metrics.NodesCreated.WithLabelValues(metrics.ClassVariable).Add(float64(res.VariablesCreated))
	r.metrics.LinksBound.Add(float64(res.LinksBound))
	r.metrics.ItemFailures.WithLabelValues("mirror").Add(float64(res.Failed))

	for _, d := range r.audit(dest) {
		res.Diagnostics.Add(d)
	}

	return res, nil
}

// CheckLinks reports every variable below the model folder whose dynamic
// link does not resolve.
func (r *Runner) CheckLinks() ([]diagnostic.Diagnostic, error) {
	root, err := r.node("sync.model_folder", r.cfg.Sync.ModelFolder)
	if err != nil {
		return nil, err
	}

	return r.audit(root), nil
}

func (r *Runner) audit(root *model.Node) []diagnostic.Diagnostic {
	var found []diagnostic.Diagnostic

	for n, d := range mirror.AuditLinks(root) {
		r.logger.Info("Dynamic link not resolved",
			zap.String("node", d.NodePath),
			zap.Stringer("link", n.Link),
			zap.String("reason", d.Message))

		found = append(found, d)
	}

	r.metrics.LinksUnresolved.Add(float64(len(found)))
	r.logger.Info("Dynamic links checked",
		zap.String("root", root.Name),
		zap.Int("unresolved", len(found)))

	return found
}

// ClearAlarms removes everything below the alarms folder and returns how
// many top-level entries were removed.
func (r *Runner) ClearAlarms() (int, error) {
	folder, err := r.node("alarms.alarms_folder", r.cfg.Alarms.AlarmsFolder)
	if err != nil {
		return 0, err
	}

	removed := alarm.Clear(folder)
	r.logger.Info("Alarms cleared",
		zap.String("folder", folder.Name),
		zap.Int("removed", removed))

	return removed, nil
}

// GenerateAlarms derives digital alarms for every variable below the
// configured starting node.
func (r *Runner) GenerateAlarms() (alarm.Result, error) {
	src, err := r.node("alarms.starting_node", r.cfg.Alarms.StartingNode)
	if err != nil {
		return alarm.Result{}, err
	}

	folder, err := r.node("alarms.alarms_folder", r.cfg.Alarms.AlarmsFolder)
	if err != nil {
		return alarm.Result{}, err
	}

	res := alarm.NewGenerator(folder, r.logger).Generate(src)

	r.metrics.AlarmsGenerated.Add(float64(res.Generated))
	r.metrics.AlarmDuplicates.Add(float64(res.Duplicates))
	r.metrics.ItemFailures.WithLabelValues("alarms").Add(float64(res.Failed))

	return res, nil
}

func (r *Runner) codec() *tabular.Codec {
	return tabular.New(r.logger, tabular.Options{Encoding: r.cfg.TagsEncoding()})
}

// ExportTags writes the tag table of the configured starting node to the
// configured file.
func (r *Runner) ExportTags() (tabular.ExportStats, error) {
	root, err := r.node("tags.starting_node", r.cfg.Tags.StartingNode)
	if err != nil {
		return tabular.ExportStats{}, err
	}

	stats, err := r.codec().ExportFile(r.cfg.Tags.File, root)
	if err != nil {
		return stats, err
	}

	r.metrics.ExportRows.WithLabelValues(metrics.KindTag).Add(float64(stats.Tags))
	r.metrics.ExportRows.WithLabelValues(metrics.KindStructure).Add(float64(stats.Structures))
	r.metrics.ExportRows.WithLabelValues(metrics.KindStructureArray).Add(float64(stats.StructureArrays))
	r.metrics.ItemFailures.WithLabelValues("export").Add(float64(stats.Skipped))

	return stats, nil
}

// ImportTags reads the configured file into the configured starting node.
func (r *Runner) ImportTags() (tabular.ImportStats, error) {
	root, err := r.node("tags.starting_node", r.cfg.Tags.StartingNode)
	if err != nil {
		return tabular.ImportStats{}, err
	}

	stats, err := r.codec().ImportFile(r.cfg.Tags.File, root)
	if err != nil {
		return stats, err
	}

	r.metrics.ImportRows.WithLabelValues(metrics.OutcomeCreated).Add(float64(stats.TagsCreated + stats.StructuresCreated))
	r.metrics.ImportRows.WithLabelValues(metrics.OutcomeUpdated).Add(float64(stats.TagsUpdated))
	r.metrics.ImportRows.WithLabelValues(metrics.OutcomeFailed).Add(float64(stats.RowsFailed))
	r.metrics.ItemFailures.WithLabelValues("import").Add(float64(stats.RowsFailed))

	return stats, nil
}
