package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange    = errors.New("invalid range")
	ErrNoSyntaxTree    = errors.New("no syntax tree available")
	ErrInteractiveMode = errors.New("interactive insertion context")
	ErrConcealFailed   = errors.New("conceal query failed")
	ErrIndentFailed    = errors.New("indent query failed")
	ErrWriteBack       = errors.New("cannot write lines back")
	ErrServicePanic    = errors.New("service panicked")
)

type ErrorId int

const (
	ErrInvalidRangeId ErrorId = iota
	ErrNoSyntaxTreeId
	ErrInteractiveModeId
	ErrConcealFailedId
	ErrIndentFailedId
	ErrWriteBackId
	ErrServicePanicId
)

// FormatError describes why a single group could not be wrapped.
type FormatError struct {
	ID  ErrorId
	Row int // buffer row of the joined line when the failure happened
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func newFormatError(id ErrorId, row int, sentinel, cause error) *FormatError {
	if cause == nil {
		return &FormatError{ID: id, Row: row, Err: sentinel}
	}
	return &FormatError{ID: id, Row: row, Err: fmt.Errorf("%w: %w", sentinel, cause)}
}
