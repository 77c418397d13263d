// Package libdiff renders line diffs of encoded documents.
//
// # Usage
//
//	fmt.Print(libdiff.Unified(before, after))
//
// Output marks removals with "-", additions with "+" and context with a
// leading space. Tests use it for readable failures on long renders,
// the CLI for its diff subcommand.
package libdiff
