package biz

import "errors"

var (
	// ErrDocsNotFound indicates the documentation directory does not exist.
	ErrDocsNotFound = errors.New("seller docs directory not found")

	// ErrEmptyCorpus indicates no markdown documents or chunks were produced.
	ErrEmptyCorpus = errors.New("no documents in seller corpus")

	// ErrIndexNotFound indicates the documentation index has not been built.
	ErrIndexNotFound = errors.New("documentation index not found")
)
