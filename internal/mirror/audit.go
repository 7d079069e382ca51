package mirror

import (
	"iter"

	"tagmirror/internal/diagnostic"
	"tagmirror/internal/model"
)

// AuditLinks lazily yields every node under root whose dynamic link does not
// resolve, paired with an informational diagnostic. It never mutates the tree.
// A nil root yields nothing.
func AuditLinks(root *model.Node) iter.Seq2[*model.Node, diagnostic.Diagnostic] {
	return func(yield func(*model.Node, diagnostic.Diagnostic) bool) {
		if root == nil {
			return
		}

		for n := range root.All() {
			if n.Link == nil {
				continue
			}

			_, err := n.Link.Resolve(n)
			if err == nil {
				continue
			}

			if !yield(n, unresolved(root, n, err)) {
				return
			}
		}
	}
}

func unresolved(root, n *model.Node, err error) diagnostic.Diagnostic {
	path, perr := model.BrowsePath(root, n)
	if perr != nil {
		path = n.Name
	}

	return diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticInfo,
		Code:     diagnostic.CodeUnresolvedLink,
		Message:  "unresolved dynamic link " + n.Link.String() + ": " + err.Error(),
		NodePath: path,
	}
}
