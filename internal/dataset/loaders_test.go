package dataset

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bostonFixture() string {
	var b strings.Builder
	for i := 0; i < bostonHeaderLines; i++ {
		b.WriteString(" header line\n")
	}
	b.WriteString(" 0.00632  18.00   2.310  0  0.5380  6.5750  65.20  4.0900   1  296.0  15.30\n")
	b.WriteString(" 396.90   4.98  24.00\n")
	b.WriteString(" 0.02731   0.00   7.070  0  0.4690  6.4210  78.90  4.9671   2  242.0  17.80\n")
	b.WriteString(" 396.90   9.14  21.60\n")
	return b.String()
}

func TestParseBoston(t *testing.T) {
	m, err := ParseBoston(strings.NewReader(bostonFixture()))
	require.NoError(t, err)

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, bostonCols, m.Cols())
	assert.Equal(t, 6.575, m.At(0, BostonRM))
	assert.Equal(t, 9.14, m.At(1, BostonLSTAT))
	assert.Equal(t, 21.6, m.At(1, BostonMEDV))
}

func TestParseBoston_StopsAtBlankLine(t *testing.T) {
	m, err := ParseBoston(strings.NewReader(bostonFixture() + "\ntrailing junk\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
}

func TestParseBoston_Truncated(t *testing.T) {
	_, err := ParseBoston(strings.NewReader("only\ntwo lines\n"))
	assert.Error(t, err)

	fixture := bostonFixture()
	_, err = ParseBoston(strings.NewReader(fixture[:strings.LastIndex(fixture, " 396.90")]))
	assert.Error(t, err)
}

func TestParseIris(t *testing.T) {
	input := "5.1,3.5,1.4,0.2,Iris-setosa\n7.0,3.2,4.7,1.4,Iris-versicolor\n6.3,3.3,6.0,2.5,Iris-virginica\n\n"
	m, err := ParseIris(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, []float64{0, 1, 2}, m.Col(IrisClass).Data())
	assert.Equal(t, 4.7, m.At(1, IrisPetalLength))
}

func TestParseIris_UnknownClass(t *testing.T) {
	_, err := ParseIris(strings.NewReader("5.1,3.5,1.4,0.2,Iris-unknown\n"))
	assert.ErrorContains(t, err, "unknown class")
}

func idxImages(t *testing.T, pixels [][]byte, rows, cols uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := [4]uint32{idxImagesMagic, uint32(len(pixels)), rows, cols}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	for _, p := range pixels {
		buf.Write(p)
	}
	return buf.Bytes()
}

func idxLabels(t *testing.T, labels []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := [2]uint32{idxLabelsMagic, uint32(len(labels))}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	buf.Write(labels)
	return buf.Bytes()
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadIDX(t *testing.T) {
	images, err := ReadIDXImages(bytes.NewReader(idxImages(t, [][]byte{{0, 255, 1, 2}, {3, 4, 5, 6}}, 2, 2)))
	require.NoError(t, err)
	assert.Equal(t, 2, images.Rows())
	assert.Equal(t, 4, images.Cols())
	assert.Equal(t, 255.0, images.At(0, 1))

	labels, err := ReadIDXLabels(bytes.NewReader(idxLabels(t, []byte{7, 3})))
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 3}, labels.Data())
}

func TestReadIDX_BadMagic(t *testing.T) {
	_, err := ReadIDXImages(bytes.NewReader(idxLabels(t, []byte{1})))
	assert.ErrorContains(t, err, "invalid magic")

	_, err = ReadIDXLabels(bytes.NewReader(idxImages(t, nil, 1, 1)))
	assert.ErrorContains(t, err, "invalid magic")
}

func TestReadIDX_CorruptHeader(t *testing.T) {
	header := func(fields ...uint32) *bytes.Reader {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.BigEndian, fields))
		buf.Write([]byte{1, 2, 3, 4})
		return bytes.NewReader(buf.Bytes())
	}

	_, err := ReadIDXImages(header(idxImagesMagic, 0x7fffffff, 0xffff, 0xffff))
	assert.ErrorContains(t, err, "invalid image size")

	_, err = ReadIDXImages(header(idxImagesMagic, 1, 0, 28))
	assert.ErrorContains(t, err, "invalid image size")

	_, err = ReadIDXImages(header(idxImagesMagic, 0x7fffffff, 28, 28))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadIDXLabels(header(idxLabelsMagic, 0x7fffffff))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadMNIST_GzipAndPlain(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "images.gz")
	labelPath := filepath.Join(dir, "labels")
	require.NoError(t, os.WriteFile(imagePath, gzipped(t, idxImages(t, [][]byte{{1, 2}}, 1, 2)), 0o600))
	require.NoError(t, os.WriteFile(labelPath, idxLabels(t, []byte{9}), 0o600))

	images, labels, err := ReadMNIST(imagePath, labelPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, images.Data())
	assert.Equal(t, []float64{9}, labels.Data())
}

func TestReadMNIST_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "images")
	labelPath := filepath.Join(dir, "labels")
	require.NoError(t, os.WriteFile(imagePath, idxImages(t, [][]byte{{1}}, 1, 1), 0o600))
	require.NoError(t, os.WriteFile(labelPath, idxLabels(t, []byte{1, 2}), 0o600))

	_, _, err := ReadMNIST(imagePath, labelPath)
	assert.ErrorContains(t, err, "!= label count")
}

func TestFetch_DownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/data/file.txt", r.URL.Path)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		path, err := Fetch(context.Background(), srv.Client(), srv.URL+"/data", dir, "file.txt")
		require.NoError(t, err)

		body, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(body))
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	_, err := Fetch(context.Background(), srv.Client(), srv.URL, dir, "missing")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file may be left behind")
}

func TestLoadIris_FromServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("5.1,3.5,1.4,0.2,Iris-setosa\n"))
	}))
	defer srv.Close()

	m, err := LoadIris(context.Background(), Source{Dir: t.TempDir(), BaseURL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Rows())
}

func mnistCSV(rows ...[]int) string {
	var b strings.Builder
	b.WriteString("label")
	for j := 0; j < MNISTPixels; j++ {
		b.WriteString(",pixel")
		b.WriteString(strconv.Itoa(j))
	}
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strconv.Itoa(r[0]))
		for j := 0; j < MNISTPixels; j++ {
			v := 0
			if j < len(r)-1 {
				v = r[j+1]
			}
			b.WriteString(",")
			b.WriteString(strconv.Itoa(v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestParseMNISTCSV(t *testing.T) {
	data := mnistCSV([]int{5, 12, 255}, []int{0}, []int{9, 1})

	images, labels, err := ParseMNISTCSV(strings.NewReader(data), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 9}, labels.Data())
	assert.Equal(t, 3, images.Rows())
	assert.Equal(t, MNISTPixels, images.Cols())
	assert.Equal(t, 12.0, images.At(0, 0))
	assert.Equal(t, 255.0, images.At(0, 1))

	images, labels, err = ParseMNISTCSV(strings.NewReader(data), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, images.Rows())
	assert.Equal(t, 2, labels.Len())
}

func TestParseMNISTCSV_Invalid(t *testing.T) {
	_, _, err := ParseMNISTCSV(strings.NewReader(""), 0)
	assert.Error(t, err)

	_, _, err = ParseMNISTCSV(strings.NewReader(mnistCSV()), 0)
	assert.Error(t, err, "header only")

	_, _, err = ParseMNISTCSV(strings.NewReader(mnistCSV([]int{10})), 0)
	assert.Error(t, err, "label out of range")

	_, _, err = ParseMNISTCSV(strings.NewReader("label,p0\n1,2\n"), 0)
	assert.Error(t, err, "wrong field count")
}
