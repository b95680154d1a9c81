// Package mmap maps files read-only so they can be checksummed in place.
//
// Unix uses mmap(2) with madvise(2) hints; Windows uses
// CreateFileMapping/MapViewOfFile and ignores hints. Empty files map to a
// nil slice without a system call.
package mmap
