package detect

import "errors"

var (
	// ErrDuplicateKeyword is returned by Store.Add when the term is already
	// present (case-insensitive) and overwrite was not requested.
	ErrDuplicateKeyword = errors.New("detect: duplicate keyword")

	// ErrKeywordNotFound is returned by Store.Remove for an absent term.
	ErrKeywordNotFound = errors.New("detect: keyword not found")

	// ErrInvalidKeyword is returned for keywords with an empty term or a
	// negative weight. Score returns it before scanning begins if the store
	// snapshot contains such an entry.
	ErrInvalidKeyword = errors.New("detect: invalid keyword")

	// ErrBadEncoding is returned by Normalize for input that is not valid
	// UTF-8.
	ErrBadEncoding = errors.New("detect: text is not valid UTF-8")
)
