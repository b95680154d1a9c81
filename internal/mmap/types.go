package mmap

import "errors"

// AccessPattern hints how the mapped bytes will be read.
type AccessPattern int

const (
	// AccessDefault gives no advice.
	AccessDefault AccessPattern = iota
	// AccessSequential announces one front-to-back pass, the checksum case.
	AccessSequential
	// AccessWillNeed asks the kernel to start reading ahead now.
	AccessWillNeed
	// AccessDontNeed releases cached pages after use.
	AccessDontNeed
)

var (
	// ErrClosed is returned when a closed mapping is used.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files whose size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
