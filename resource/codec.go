package resource

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// decode decompresses fetched bytes based on the resource name's extension.
// Unknown extensions pass through untouched.
func decode(name string, data []byte) ([]byte, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", name, err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", name, err)
		}
		return out, nil
	case strings.HasSuffix(name, ".lz4"):
		zr := lz4.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("lz4 %s: %w", name, err)
		}
		return out, nil
	default:
		return data, nil
	}
}
