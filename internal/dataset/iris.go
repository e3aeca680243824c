package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/descent/internal/tensor"
)

// Iris column layout. The class index is stored as a float in IrisClass.
const (
	IrisSepalLength = 0
	IrisSepalWidth  = 1
	IrisPetalLength = 2
	IrisPetalWidth  = 3
	IrisClass       = 4

	IrisClasses = 3
)

var irisClassIndex = map[string]float64{
	"Iris-setosa":     0,
	"Iris-versicolor": 1,
	"Iris-virginica":  2,
}

// ParseIris reads the UCI iris CSV (four measurements and a class name per
// row) into an n×5 matrix whose last column holds the class index 0, 1 or 2.
func ParseIris(r io.Reader) (*tensor.Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 5

	var data []float64
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ParseIris: %w", err)
		}
		for j := 0; j < IrisClass; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("ParseIris: row %d, column %d: %w", row, j+1, err)
			}
			data = append(data, v)
		}
		class, ok := irisClassIndex[record[IrisClass]]
		if !ok {
			return nil, fmt.Errorf("ParseIris: row %d: unknown class %q", row, record[IrisClass])
		}
		data = append(data, class)
	}

	return tensor.FromSlice(len(data)/5, 5, data)
}
