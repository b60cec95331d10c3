package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// codecFor resolves the codec for an input: an explicit flag wins, "auto"
// sniffs the file extension, stdin defaults to none.
func codecFor(name, codec string) string {
	if codec != "auto" {
		return codec
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return "gzip"
	case ".zst", ".zstd":
		return "zstd"
	case ".xz":
		return "xz"
	}
	return "none"
}

// decompress wraps r in the given codec's reader. The returned func releases
// codec resources; it never closes the underlying reader.
func decompress(r io.Reader, codec string) (io.Reader, func(), error) {
	switch codec {
	case "none":
		return r, func() {}, nil
	case "gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, func() { zr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, zr.Close, nil
	case "xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("xz: %w", err)
		}
		return xr, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown codec %q", codec)
	}
}
