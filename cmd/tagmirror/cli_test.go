package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tagmirror/internal/config"
	"tagmirror/internal/driver"
	"tagmirror/internal/model"
	"tagmirror/internal/project"
)

// setup points the globals at a fresh workspace holding a project with one
// S7 tag structure.
func setup(t *testing.T) string {
	t.Helper()

	ws := t.TempDir()
	logger = zap.NewNop()
	configPath = filepath.Join(ws, "tagmirror.yaml")

	cfg = config.DefaultConfig()
	cfg.Project = filepath.Join(ws, "plant.yaml")
	cfg.Sync.InputNode = "CommDrivers/Tags"
	cfg.Tags.StartingNode = "CommDrivers/Tags"
	cfg.Tags.File = filepath.Join(ws, "tags.csv")
	cfg.Metrics.File = filepath.Join(ws, "tagmirror.prom")

	t.Cleanup(func() {
		cfg = nil
		configPath = ""
	})

	require.NoError(t, runInit(&cobra.Command{}, []string{"Plant"}))

	p, err := project.LoadFile(cfg.Project)
	require.NoError(t, err)

	drivers, err := p.Get(project.CommDriversFolder)
	require.NoError(t, err)

	tags := model.NewTagStructure("Tags")
	require.NoError(t, drivers.Add(tags))
	require.NoError(t, tags.Add(model.NewTag("Word", &driver.S7TCPTag{BlockNumber: 5}, model.UInt16)))
	require.NoError(t, tags.Add(model.NewTag("Ready", &driver.S7TCPTag{BitOffset: 1}, model.Boolean)))
	require.NoError(t, project.WriteFile(p, cfg.Project))

	return ws
}

func output(t *testing.T, run func(*cobra.Command, []string) error) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, run(cmd, nil))

	return buf.String()
}

func TestInitCmd(t *testing.T) {
	setup(t)

	_, err := os.Stat(configPath)
	assert.NoError(t, err)

	// second init refuses to overwrite the project
	assert.Error(t, runInit(&cobra.Command{}, nil))
}

func TestSyncAndAlarms(t *testing.T) {
	setup(t)

	out := output(t, runSync)
	assert.Contains(t, out, "Created 1 containers and 2 variables")

	p, err := project.LoadFile(cfg.Project)
	require.NoError(t, err)
	word, err := p.Get("Model/Tags/Word")
	require.NoError(t, err)
	require.NotNil(t, word.Link)

	out = output(t, runAudit)
	assert.Contains(t, out, "0 dynamic links do not resolve")

	out = output(t, runAlarmsGenerate)
	assert.Contains(t, out, "Generated 17 alarms")

	p, err = project.LoadFile(cfg.Project)
	require.NoError(t, err)
	_, err = p.Get("Alarms/Tags_Word_alarms/DAlm_Tags_Word_15")
	assert.NoError(t, err)

	out = output(t, runAlarmsClear)
	assert.Contains(t, out, "Removed 2 entries")

	data, err := os.ReadFile(cfg.Metrics.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tagmirror_alarms_generated_total 0")
}

func TestTagsExportImport(t *testing.T) {
	setup(t)

	out := output(t, runTagsExport)
	assert.Contains(t, out, "Exported 2 tags")

	out = output(t, runTagsImport)
	assert.Contains(t, out, "Tags updated: 2, created: 0")

	cfg.Tags.File = filepath.Join(t.TempDir(), "absent.csv")
	assert.Error(t, runTagsImport(&cobra.Command{}, nil))
}
