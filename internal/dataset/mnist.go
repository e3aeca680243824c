package dataset

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/descent/internal/tensor"
)

// IDX magic numbers.
const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
)

// MNIST file names as published.
const (
	MNISTTrainImages = "train-images-idx3-ubyte.gz"
	MNISTTrainLabels = "train-labels-idx1-ubyte.gz"
	MNISTTestImages  = "t10k-images-idx3-ubyte.gz"
	MNISTTestLabels  = "t10k-labels-idx1-ubyte.gz"

	MNISTClasses = 10
)

const (
	// maxIDXImageSize bounds rows·cols so a corrupt header cannot request
	// an unbounded image.
	maxIDXImageSize = 1 << 16
	// idxPrealloc caps the images preallocated from the header count.
	idxPrealloc = 1 << 12
)

// ReadIDXImages reads an IDX image file into an n×(rows·cols) matrix of raw
// pixel values in [0, 255]. Images are read one at a time, so a header that
// overstates the image count fails with io.ErrUnexpectedEOF once the data
// runs out.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func ReadIDXImages(r io.Reader) (*tensor.Matrix, error) {
	if err := readIDXMagic(r, idxImagesMagic); err != nil {
		return nil, err
	}
	var dims [3]uint32
	if err := binary.Read(r, binary.BigEndian, &dims); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	numImages := int(dims[0])
	size := uint64(dims[1]) * uint64(dims[2])
	if size == 0 || size > maxIDXImageSize {
		return nil, fmt.Errorf("invalid image size %dx%d", dims[1], dims[2])
	}
	dim := int(size)

	data := make([]float64, 0, min(numImages, idxPrealloc)*dim)
	image := make([]byte, dim)
	for i := 0; i < numImages; i++ {
		if _, err := io.ReadFull(r, image); err != nil {
			return nil, fmt.Errorf("failed to read image %d of %d: %w", i, numImages, err)
		}
		for _, p := range image {
			data = append(data, float64(p))
		}
	}
	return tensor.FromSlice(numImages, dim, data)
}

// ReadIDXLabels reads an IDX label file.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDXLabels(r io.Reader) (*tensor.Vector, error) {
	if err := readIDXMagic(r, idxLabelsMagic); err != nil {
		return nil, err
	}
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// CopyN grows the buffer with the data actually present.
	var labels bytes.Buffer
	if n, err := io.CopyN(&labels, r, int64(count)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("failed to read labels: got %d of %d: %w", n, count, err)
	}

	out := make([]float64, labels.Len())
	for i, l := range labels.Bytes() {
		out[i] = float64(l)
	}
	return tensor.VectorFrom(out), nil
}

func readIDXMagic(r io.Reader, want uint32) error {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != want {
		return fmt.Errorf("invalid magic number: got %d, want %d", magic, want)
	}
	return nil
}

// openIDX opens path, transparently decompressing gzip content.
func openIDX(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if magic[0] != 0x1f || magic[1] != 0x8b {
		return br, f.Close, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return gz, func() error {
		gz.Close()
		return f.Close()
	}, nil
}

// ReadMNIST loads an image file and its label file and checks they agree.
func ReadMNIST(imagePath, labelPath string) (*tensor.Matrix, *tensor.Vector, error) {
	ir, closeImages, err := openIDX(imagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open images: %w", err)
	}
	defer closeImages()
	images, err := ReadIDXImages(ir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load images: %w", err)
	}

	lr, closeLabels, err := openIDX(labelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open labels: %w", err)
	}
	defer closeLabels()
	labels, err := ReadIDXLabels(lr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if images.Rows() != labels.Len() {
		return nil, nil, fmt.Errorf("image count (%d) != label count (%d)", images.Rows(), labels.Len())
	}
	return images, labels, nil
}
