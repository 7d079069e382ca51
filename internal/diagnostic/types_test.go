package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsCollect(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning(CodeDuplicate, "DAlm_PLC_Speed already exists into Alarms", "Alarms/DAlm_PLC_Speed")
	d.AddInfo(CodeUnresolvedLink, "link ../Missing does not resolve", "Model/Speed")
	d.AddError(CodeStructural, "owner not found", "Root/Missing/Tag")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	assert.Equal(t, 1, d.Count(CodeDuplicate))
	assert.Equal(t, 0, d.Count(CodeIO))
	assert.EqualError(t, d.Error(), "Root/Missing/Tag: [STRUCTURAL] owner not found")
}

func TestDiagnosticsMergeAndAdd(t *testing.T) {
	var a, b Diagnostics

	a.AddError(CodeTypeMismatch, "Int32 vs Boolean", "Root/T1")
	b.Add(Diagnostic{Severity: DiagnosticWarning, Code: CodeDuplicate, Message: "dup"})
	b.Add(Diagnostic{Severity: DiagnosticInfo, Code: CodeUnresolvedLink, Message: "unresolved"})

	a.Merge(b)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

func TestDiagnosticStringWithoutPath(t *testing.T) {
	d := Diagnostic{Code: CodeIO, Message: "cannot open tags.csv"}
	assert.Equal(t, "[IO] cannot open tags.csv", d.String())
}
