package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// PathSeparator separates node names in browse paths and link paths.
const PathSeparator = "/"

// ParsePath splits a slash-separated relative path into node names.
// Supports: "Name", "Folder/Name". Empty segments are rejected.
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	var segments []string

	for part := range strings.SplitSeq(path, PathSeparator) {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		segments = append(segments, part)
	}

	return segments, nil
}

// SplitBrowsePath splits a browse path, dropping empty segments.
func SplitBrowsePath(path string) []string {
	var segments []string

	for part := range strings.SplitSeq(path, PathSeparator) {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

// SanitizeName replaces characters that are not allowed in node names.
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, PathSeparator, "_")
}

// ResolvePath resolves path against ctx. A leading "/" starts at the root of
// ctx's tree, ".." steps to the owner and "." stays in place; other segments
// are child names.
func ResolvePath(ctx *Node, path string) (*Node, error) {
	if ctx == nil {
		return nil, errors.New("nil resolution context")
	}

	if path == "" {
		return nil, errors.New("empty path")
	}

	cur := ctx
	if strings.HasPrefix(path, PathSeparator) {
		cur = ctx.Root()
		path = strings.TrimPrefix(path, PathSeparator)
	}

	for seg := range strings.SplitSeq(path, PathSeparator) {
		switch seg {
		case "", ".":
			continue
		case "..":
			if cur.owner == nil {
				return nil, fmt.Errorf("%w: %q climbs above the root", ErrNotFound, path)
			}

			cur = cur.owner
		default:
			next := cur.Child(seg)
			if next == nil {
				return nil, fmt.Errorf("%w: %q under %q", ErrNotFound, seg, cur.Name)
			}

			cur = next
		}
	}

	return cur, nil
}

// BrowsePath returns the names from start down to n joined by "/", start's
// name first. n must be start or one of its descendants.
func BrowsePath(start, n *Node) (string, error) {
	var names []string

	for cur := n; ; cur = cur.owner {
		if cur == nil {
			return "", fmt.Errorf("%q is not below %q", n.Name, start.Name)
		}

		names = append(names, cur.Name)

		if cur.ID == start.ID {
			break
		}
	}

	slices.Reverse(names)

	return strings.Join(names, PathSeparator), nil
}

// RelativePath returns a path that resolves from "from" to "to" with
// ResolvePath. Both nodes must belong to the same tree.
func RelativePath(from, to *Node) (string, error) {
	fromChain := ancestry(from)
	toChain := ancestry(to)

	if fromChain[0] != toChain[0] {
		return "", fmt.Errorf("%w: %q and %q", ErrDifferentTrees, from.Name, to.Name)
	}

	shared := 0
	for shared < len(fromChain) && shared < len(toChain) && fromChain[shared] == toChain[shared] {
		shared++
	}

	var parts []string
	for range len(fromChain) - shared {
		parts = append(parts, "..")
	}

	parts = append(parts, names(toChain[shared:])...)
	if len(parts) == 0 {
		return ".", nil
	}

	return strings.Join(parts, PathSeparator), nil
}

// ancestry returns the chain root..n.
func ancestry(n *Node) []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.owner {
		chain = append(chain, cur)
	}

	slices.Reverse(chain)

	return chain
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}

	return out
}
