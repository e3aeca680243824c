package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/born-ml/descent/internal/tensor"
)

// Boston housing column layout. MEDV (the target) is the last column.
const (
	BostonRM    = 5
	BostonLSTAT = 12
	BostonMEDV  = 13

	bostonCols        = 14
	bostonHeaderLines = 22
)

// ParseBoston reads the StatLib "boston" file: a 22-line preamble followed by
// records whose 14 whitespace-separated values are wrapped over two lines.
// Parsing stops at EOF or at the first blank line.
func ParseBoston(r io.Reader) (*tensor.Matrix, error) {
	sc := bufio.NewScanner(r)
	for i := 0; i < bostonHeaderLines; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ParseBoston: preamble truncated at line %d: %w", i+1, scanErr(sc))
		}
	}

	var data []float64
	line := bostonHeaderLines
	for sc.Scan() {
		line++
		first := strings.TrimSpace(sc.Text())
		if first == "" {
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("ParseBoston: record at line %d has no continuation: %w", line, scanErr(sc))
		}
		line++
		fields := append(strings.Fields(first), strings.Fields(sc.Text())...)
		if len(fields) != bostonCols {
			return nil, fmt.Errorf("ParseBoston: record ending at line %d has %d values, want %d", line, len(fields), bostonCols)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("ParseBoston: line %d: %w", line, err)
			}
			data = append(data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ParseBoston: %w", err)
	}

	return tensor.FromSlice(len(data)/bostonCols, bostonCols, data)
}

func scanErr(sc *bufio.Scanner) error {
	if err := sc.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
