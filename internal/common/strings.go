// Package common holds small helpers shared by the internal packages.
package common

import "strings"

// UnknownStr is returned by String methods of enums for out-of-range values.
const UnknownStr = "unknown"

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
