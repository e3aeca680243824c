package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/descent/internal/tensor"
)

// MNISTPixels is the number of pixels in one 28×28 digit.
const MNISTPixels = 28 * 28

// ParseMNISTCSV reads MNIST in the Kaggle CSV layout and returns raw pixels
// (0..255) and labels. maxSamples limits the rows read; 0 reads all.
//
// CSV Format:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//	0,0,0,0,...,0
func ParseMNISTCSV(r io.Reader, maxSamples int) (*tensor.Matrix, *tensor.Vector, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = MNISTPixels + 1
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("ParseMNISTCSV: CSV file is empty or missing header")
		}
		return nil, nil, fmt.Errorf("ParseMNISTCSV: header: %w", err)
	}

	var pixels, labels []float64
	for row := 1; maxSamples <= 0 || len(labels) < maxSamples; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("ParseMNISTCSV: %w", err)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("ParseMNISTCSV: invalid label at row %d: %w", row, err)
		}
		if label < 0 || label >= MNISTClasses {
			return nil, nil, fmt.Errorf("ParseMNISTCSV: label out of range [0, 9] at row %d: %d", row, label)
		}
		labels = append(labels, float64(label))

		for j, field := range record[1:] {
			pixel, err := strconv.Atoi(field)
			if err != nil {
				return nil, nil, fmt.Errorf("ParseMNISTCSV: invalid pixel at row %d, column %d: %w", row, j+1, err)
			}
			pixels = append(pixels, float64(pixel))
		}
	}

	if len(labels) == 0 {
		return nil, nil, errors.New("ParseMNISTCSV: no samples")
	}
	images, err := tensor.FromSlice(len(labels), MNISTPixels, pixels)
	if err != nil {
		return nil, nil, err
	}
	return images, tensor.VectorFrom(labels), nil
}
