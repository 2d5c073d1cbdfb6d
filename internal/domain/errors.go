package domain

import "errors"

var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrIncompleteReference = errors.New("upload returned an incomplete artifact reference")
)
