// Package serialization provides the native .mway container for saving
// and loading fitted preprocessing state.
//
// The .mway format is a simple binary container for a named set of
// tensors:
//
//	Format Structure:
//	  [64 bytes: fixed header]
//	    0x00  Magic "MWAY"
//	    0x04  Version (uint32 LE)
//	    0x08  Flags (uint32 LE)
//	    0x0C  Reserved
//	    0x10  Header size (uint64 LE)
//	    0x18  Data size (uint64 LE)
//	    0x20  SHA-256 checksum of the data section
//	  [Header: JSON tensor index and metadata]
//	  [Padding to a 64-byte boundary]
//	  [Tensor data: raw bytes, in sorted-name order]
//
// The payload checksum is always present and validated on read unless
// explicitly skipped. Tensor data is little-endian native layout; the
// JSON header records name, dtype, shape, offset and size per tensor.
//
// Example usage:
//
//	// Save a state dictionary
//	writer, err := serialization.NewWriter("scaler.mway")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = writer.WriteStateDict(stateDict, "CenterScale", nil)
//	writer.Close()
//
//	// Load it back
//	reader, err := serialization.NewReader("scaler.mway")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stateDict, err := reader.ReadStateDict(tensor.CPU)
//	reader.Close()
package serialization
