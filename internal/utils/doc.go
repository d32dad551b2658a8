// Package utils provides shared utility functions for the Journal application.
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads all data piped to standard input
//   - IsStdinPiped: reports whether stdin has piped data
//
// # String Utilities
//
// Functions for string manipulation and formatting:
//   - Truncate: shortens a string for single-line display
package utils
