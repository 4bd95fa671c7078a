package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptyFile         = errors.New("file contains no rows")
	ErrMalformedFile     = errors.New("malformed tabular file")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file exceeds the upload limit")
	ErrEmptyCompletion   = errors.New("empty completion from model")
)
