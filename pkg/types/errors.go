// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds. Every one of them ends the run; callers match with errors.Is.
var (
	// ErrNetwork marks a request that failed to complete or returned a
	// non-success status.
	ErrNetwork = errors.New("network error")

	// ErrParse marks a descriptor response that is not well-formed.
	ErrParse = errors.New("parse error")

	// ErrArchiveFormat marks a download response that is not a ZIP archive.
	ErrArchiveFormat = errors.New("archive format error")

	// ErrPathFormat marks an archive entry whose path lacks the assembly
	// directory component.
	ErrPathFormat = errors.New("path format error")
)
