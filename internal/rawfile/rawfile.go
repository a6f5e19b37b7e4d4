// Package rawfile loads tensors from headerless binary files of packed
// little-endian elements. Files are memory-mapped read-only and converted
// straight from the mapping into tensor storage.
package rawfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/born-ml/tensorcore/internal/tensor"
)

// File is a read-only mapping of a raw tensor file.
type File struct {
	f *os.File
	m mmap.MMap
}

// Open maps path read-only. Empty files are valid and map to no bytes.
func Open(path string) (*File, error) {
	//nolint:gosec // G304: path comes from user input, which is expected for tensor loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rawfile: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rawfile: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return &File{f: f}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rawfile: mmap %s: %w", path, err)
	}
	return &File{f: f, m: m}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (rf *File) Bytes() []byte {
	return rf.m
}

// Close unmaps the file and closes it.
func (rf *File) Close() error {
	var unmapErr error
	if rf.m != nil {
		unmapErr = rf.m.Unmap()
		rf.m = nil
	}
	return errors.Join(unmapErr, rf.f.Close())
}

// Load reads a tensor of dtype from path, whose elements are stored as src.
// A nil shape is inferred as 1-D from the file length.
func Load(path string, dtype tensor.DataType, shape tensor.Shape, src tensor.DataType) (*tensor.Tensor, error) {
	rf, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rf.Close() }()

	buf := rf.Bytes()
	if shape == nil {
		itemSize := src.Size()
		if itemSize == 0 {
			return nil, fmt.Errorf("rawfile: %w: %s", tensor.ErrUnsupportedType, src)
		}
		if len(buf)%itemSize != 0 {
			return nil, fmt.Errorf("rawfile: %s: %w: %d bytes is not a multiple of %d",
				path, tensor.ErrLengthMismatch, len(buf), itemSize)
		}
		shape = tensor.Shape{len(buf) / itemSize}
	}

	// Storage copies out of the mapping, so the tensor outlives Close.
	t, err := tensor.NewConverted(dtype, shape, buf, src)
	if err != nil {
		return nil, fmt.Errorf("rawfile: %s: %w", path, err)
	}
	return t, nil
}

// Save writes t's host bytes to path.
func Save(path string, t *tensor.Tensor) error {
	if err := os.WriteFile(path, t.Data()[:t.NBytes()], 0o644); err != nil {
		return fmt.Errorf("rawfile: write %s: %w", path, err)
	}
	return nil
}
