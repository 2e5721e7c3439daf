package repositories

import (
	"fmt"

	"github.com/KirkDiggler/raidplan/internal"
)

type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrRecord RepositoryError = "record error"
)

type RecordError struct {
	internal.ErrorWrapper
}

// NewRecordNotFoundError reports a missing plan; errors.Is(err, internal.ErrNotFound) holds
func NewRecordNotFoundError(id string) error {
	return &RecordError{
		ErrorWrapper: internal.ErrorWrapper{
			Err:     internal.ErrNotFound,
			Message: string(ErrRecord) + ": " + id,
		},
	}
}

// NewVersionMismatchError reports a compare-and-set write against a head that moved on;
// errors.Is(err, internal.ErrStaleVersion) holds
func NewVersionMismatchError(id string, expected, actual int64) error {
	return &RecordError{
		ErrorWrapper: internal.ErrorWrapper{
			Err:     internal.ErrStaleVersion,
			Message: fmt.Sprintf("%s: %s expected version %d, found %d", ErrRecord, id, expected, actual),
		},
	}
}
