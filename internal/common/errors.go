// Package common defines sentinel errors shared by the local repositories and
// the layers above them. Match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound is returned by single-record lookups that match nothing.
	ErrNotFound = errors.New("not found")
)
