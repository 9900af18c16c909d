// Package files provides file system discovery and directory utilities for
// the account record merger.
//
// Discovery lists candidate input files directly inside a directory
// (non-recursive) by case-insensitive extension. EnsureDirectory creates an
// output directory tree and verifies the result, which the emission stage
// treats as a fatal precondition.
package files
