package core

import (
	"fmt"
	"log/slog"
	"slices"
)

// Status tells the host whether the request was handled or should go to its
// fallback formatter.
type Status int

const (
	StatusHandled Status = iota
	StatusDeferred
)

func (s Status) String() string {
	if s == StatusDeferred {
		return "deferred"
	}
	return "handled"
}

// Request selects Count rows starting at Start. Mode is the host's mode at
// the time of the request.
type Request struct {
	Start int
	Count int
	Mode  Mode
}

// GroupResult is the outcome of one group.
type GroupResult struct {
	Group   Group
	Row     int   // buffer row the group started at when it was processed
	Lines   int   // rows the group occupies now
	Changed bool  // the rows differ from what they were before
	Err     error // non-nil when the group was left as it was
}

// Result summarises a formatting pass.
type Result struct {
	Status Status
	Reason error // why the request was deferred
	Groups []GroupResult
	Delta  int // net change in line count
	Lines  int // rows the requested range spans now
}

// Failed returns the groups that could not be wrapped.
func (r Result) Failed() []GroupResult {
	var out []GroupResult
	for _, g := range r.Groups {
		if g.Err != nil {
			out = append(out, g)
		}
	}
	return out
}

// Formatter joins and rewraps groups of rows in a Buffer.
type Formatter struct {
	Buffer     Buffer
	Concealer  ConcealService
	Indenter   Indenter
	Classifier *Classifier
	Grouper    Grouper
	Breaks     BreakSet
	Width      int
	Logger     *slog.Logger
}

// NewFormatter creates a formatter with Norg classification, the default
// break alphabet and width, and indentation kept from the original lines.
func NewFormatter(buffer Buffer, concealer ConcealService) *Formatter {
	return &Formatter{
		Buffer:     buffer,
		Concealer:  concealer,
		Indenter:   OriginalIndent{},
		Classifier: Norg,
		Breaks:     NewBreakSet(DefaultBreakAt),
		Width:      DefaultWidth,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// Format rewraps the requested rows. A deferred result leaves the buffer
// untouched. A group whose services fail is restored and skipped, and later
// groups are still addressed correctly.
func (f *Formatter) Format(req Request) (Result, error) {
	if req.Mode.IsInteractive() {
		return Result{Status: StatusDeferred, Reason: ErrInteractiveMode, Lines: req.Count}, nil
	}
	if f.Concealer == nil || !f.Concealer.Available() {
		return Result{Status: StatusDeferred, Reason: ErrNoSyntaxTree, Lines: req.Count}, nil
	}
	if req.Count < 0 {
		return Result{}, fmt.Errorf("Format: %w: negative count %d", ErrInvalidRange, req.Count)
	}

	lines, err := f.Buffer.GetLines(req.Start, req.Start+req.Count)
	if err != nil {
		return Result{}, fmt.Errorf("Format: %w", err)
	}

	groups := f.Grouper.Group(f.classifier().ClassifyRows(req.Start, lines))
	res := Result{Status: StatusHandled, Groups: make([]GroupResult, 0, len(groups))}

	offset := 0
	for _, g := range groups {
		gr := f.formatGroup(g, g.Start+offset)
		if gr.Err != nil {
			f.logger().Warn("group left unwrapped", "row", gr.Row, "start", g.Start, "len", g.Len, "err", gr.Err)
		} else {
			f.logger().Debug("group wrapped", "row", gr.Row, "start", g.Start, "len", g.Len, "lines", gr.Lines)
		}
		res.Groups = append(res.Groups, gr)
		offset += gr.Lines - g.Len
	}

	res.Delta = offset
	res.Lines = req.Count + offset
	return res, nil
}

func (f *Formatter) formatGroup(g Group, row int) GroupResult {
	gr := GroupResult{Group: g, Row: row, Lines: g.Len}

	original, err := f.Buffer.GetLines(row, row+g.Len)
	if err != nil {
		gr.Err = newFormatError(ErrWriteBackId, row, ErrWriteBack, err)
		return gr
	}

	joined := Join(original)
	if err := f.Buffer.SetLines(row, row+g.Len, []string{joined}); err != nil {
		gr.Err = newFormatError(ErrWriteBackId, row, ErrWriteBack, err)
		return gr
	}

	wrapped, err := f.wrapJoined(row, joined, original)
	if err == nil {
		err = f.Buffer.SetLines(row, row+1, wrapped)
		if err != nil {
			err = newFormatError(ErrWriteBackId, row, ErrWriteBack, err)
		}
	}
	if err != nil {
		if restoreErr := f.Buffer.SetLines(row, row+1, original); restoreErr != nil {
			// The joined line is still there.
			gr.Lines = 1
		}
		gr.Err = err
		return gr
	}

	gr.Lines = len(wrapped)
	gr.Changed = !slices.Equal(wrapped, original)
	return gr
}

func (f *Formatter) wrapJoined(row int, joined string, original []string) ([]string, error) {
	var ranges []Range
	err := guard(ErrConcealFailedId, row, ErrConcealFailed, func() error {
		var err error
		ranges, err = f.Concealer.ConcealedRanges(row)
		return err
	})
	if err != nil {
		return nil, err
	}

	indent := 0
	if f.Indenter != nil {
		err = guard(ErrIndentFailedId, row, ErrIndentFailed, func() error {
			var err error
			indent, err = f.Indenter.IndentFor(IndentRequest{Row: row, Line: joined, Original: original})
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	w := Wrapper{Classifier: f.classifier(), Breaks: f.Breaks}
	budget := Budget{Width: f.Width, FirstIndent: indent, ContinuationIndent: indent}
	return w.Wrap(joined, NewConcealMap(joined, ranges), budget), nil
}

// guard runs a service call, turning both returned errors and panics into a
// FormatError.
func guard(id ErrorId, row int, sentinel error, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newFormatError(ErrServicePanicId, row, ErrServicePanic, fmt.Errorf("%w: %v", sentinel, r))
		}
	}()
	if callErr := fn(); callErr != nil {
		return newFormatError(id, row, sentinel, callErr)
	}
	return nil
}

func (f *Formatter) classifier() *Classifier {
	if f.Classifier == nil {
		return Norg
	}
	return f.Classifier
}

func (f *Formatter) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
