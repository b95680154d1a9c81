// Package resource bounds how many inputs are checksummed at once and how
// fast their bytes are read.
package resource
