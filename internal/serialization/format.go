package serialization

import (
	"time"

	"github.com/multiway-ml/multiway/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "MWAY"
	FormatVersion   = 1    // v1: fixed header with SHA-256 checksum
	HeaderAlignment = 64   // Tensor data is aligned to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Data type string constants for serialization.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
	DTypeInt32   = "int32"
	DTypeInt64   = "int64"
)

// Flags for the .mway format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
)

// Header is the JSON header in a .mway file.
type Header struct {
	FormatVersion  int               `json:"format_version"`  // Version of the .mway format
	LibraryVersion string            `json:"library_version"` // Version of multiway that created this file
	EstimatorType  string            `json:"estimator_type"`  // Estimator the state belongs to (e.g., "CenterScale")
	CreatedAt      time.Time         `json:"created_at"`      // When the file was created
	Tensors        []TensorMeta      `json:"tensors"`         // Tensor index, in payload order
	Metadata       map[string]string `json:"metadata"`        // Custom metadata
}

// TensorMeta describes one tensor in the payload.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "offset.0")
	DType  string `json:"dtype"`  // Data type (e.g., "float64")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section, bytes
	Size   int64  `json:"size"`   // Size in bytes
}

// dtypeToString converts tensor.DataType to its serialized name.
func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32
	case tensor.Float64:
		return DTypeFloat64
	case tensor.Int32:
		return DTypeInt32
	case tensor.Int64:
		return DTypeInt64
	default:
		return "unknown"
	}
}

// stringToDtype converts a serialized name back to tensor.DataType.
func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeFloat64:
		return tensor.Float64, true
	case DTypeInt32:
		return tensor.Int32, true
	case DTypeInt64:
		return tensor.Int64, true
	default:
		return 0, false
	}
}
