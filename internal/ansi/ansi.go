// Package ansi provides ANSI escape code constants for terminal output.
// All colored/styled terminal output should reference these constants to avoid duplication.
package ansi

import "strings"

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

var stripper = strings.NewReplacer(
	Reset, "", Bold, "", Dim, "", Yellow, "",
	Green, "", Red, "", Cyan, "", Magenta, "",
)

// Strip removes the SGR codes defined in this package from s.
func Strip(s string) string {
	return stripper.Replace(s)
}
