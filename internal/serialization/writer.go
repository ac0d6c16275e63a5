package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/multiway-ml/multiway/internal/tensor"
)

const libraryVersion = "0.1.0" // Current multiway version

// Writer writes .mway files.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a new .mway file writer.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: the path is caller-chosen by design, this is a save API
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &Writer{file: file}, nil
}

// WriteStateDict writes a state dictionary to the file.
//
// The state dictionary maps tensor names to tensors. estimatorType names
// the estimator the state belongs to and is checked on load.
func (w *Writer) WriteStateDict(stateDict map[string]*tensor.RawTensor, estimatorType string, metadata map[string]string) error {
	if w.closed {
		return ErrWriterClosed
	}
	return WriteTo(w.file, stateDict, estimatorType, metadata)
}

// Close closes the writer and the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteTo writes a state dictionary to an io.Writer in .mway format.
//
// Tensors are laid out in sorted-name order, so identical state produces
// identical bytes apart from the creation timestamp.
func WriteTo(writer io.Writer, stateDict map[string]*tensor.RawTensor, estimatorType string, metadata map[string]string) error {
	header := Header{
		FormatVersion:  FormatVersion,
		LibraryVersion: libraryVersion,
		EstimatorType:  estimatorType,
		CreatedAt:      time.Now().UTC(),
		Tensors:        make([]TensorMeta, 0, len(stateDict)),
		Metadata:       metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		names = append(names, name)
	}
	sort.Strings(names)

	// Build the tensor index and collect the payload for the checksum.
	var payload []byte
	var offset int64
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}

		raw := stateDict[name]
		size := int64(raw.ByteSize())

		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  dtypeToString(raw.DType()),
			Shape:  []int(raw.Shape()),
			Offset: offset,
			Size:   size,
		})

		payload = append(payload, raw.Data()...)
		offset += size
	}

	checksum := ComputeChecksum(payload)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	// Fixed 64-byte header.
	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))

	var flags uint32
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	// 0x0C-0x0F reserved, zero.
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(payload)))
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := writer.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := writer.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	// Pad so the payload starts on an alignment boundary.
	pos := int64(FixedHeaderSize) + int64(len(headerJSON))
	if padding := (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment; padding > 0 {
		if _, err := writer.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := writer.Write(payload); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}

	return nil
}

// WriteFile writes a state dictionary to a .mway file in one call.
func WriteFile(path string, stateDict map[string]*tensor.RawTensor, estimatorType string, metadata map[string]string) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteStateDict(stateDict, estimatorType, metadata); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
