// Package runner exposes the host entry points of tagmirror.
//
// Each entry point resolves the nodes named in the configuration, runs one
// core operation on the loaded project, logs a summary and records run
// metrics:
//   - GenerateNodesIntoModel mirrors the tag tree into the model folder and audits the links
//   - CheckLinks reports model variables whose dynamic link does not resolve
//   - GenerateAlarms and ClearAlarms manage the digital alarms folder
//   - ExportTags and ImportTags move tags through the tag table file
//
// Per-item failures never stop a run; they are counted in the returned
// results. Only a missing configured node or a file error returns an error.
package runner
