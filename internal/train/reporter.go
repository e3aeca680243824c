package train

import (
	"fmt"
	"io"
)

// Progress is one report emitted during training.
type Progress struct {
	Iter        int
	Loss        float64
	Accuracy    float64
	HasAccuracy bool
}

// String renders p in the text reporter's line format.
func (p Progress) String() string {
	if p.HasAccuracy {
		return fmt.Sprintf("iter = %d\tloss = %v\tscore = %v", p.Iter, p.Loss, p.Accuracy)
	}
	return fmt.Sprintf("iter = %d\tloss = %v", p.Iter, p.Loss)
}

// Reporter receives progress records as they are produced.
type Reporter interface {
	Report(p Progress) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(p Progress) error

// Report calls f(p).
func (f ReporterFunc) Report(p Progress) error {
	return f(p)
}

// TextReporter writes one line per Progress.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a reporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Report writes p followed by a newline.
func (r *TextReporter) Report(p Progress) error {
	_, err := fmt.Fprintln(r.w, p.String())
	return err
}

// MultiReporter forwards every Progress to each reporter in turn and stops
// at the first error.
func MultiReporter(reporters ...Reporter) Reporter {
	rs := append([]Reporter(nil), reporters...)
	return ReporterFunc(func(p Progress) error {
		for _, r := range rs {
			if err := r.Report(p); err != nil {
				return err
			}
		}
		return nil
	})
}

type discard struct{}

func (discard) Report(Progress) error { return nil }
