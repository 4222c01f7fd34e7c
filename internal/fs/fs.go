package fs

import (
	"io"
	"os"

	"github.com/demaconsulting/SarifMark/pkg/encoding"
)

func ReadFile(filename string, w io.Writer) (int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(w, f)
}

func ReadDecodeFile(filename string, w encoding.WriterDecoder) (any, error) {
	if _, err := ReadFile(filename, w); err != nil {
		return nil, err
	}
	return w.Decode()
}
