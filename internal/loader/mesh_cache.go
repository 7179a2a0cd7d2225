package loader

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"GopherPick/internal/scene"
)

const (
	meshMagic   = uint32(0x4D455348) // "MESH"
	meshVersion = uint32(1)

	// Values read per step when decoding a slice
	readChunk = 64 * 1024
)

// EncodeMeshBinary writes the vertex and face buffers of mesh as gzip
// compressed little-endian data.
func EncodeMeshBinary(mesh *scene.Mesh) ([]byte, error) {
	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)

	if err := binary.Write(gzWriter, binary.LittleEndian, meshMagic); err != nil {
		return nil, err
	}
	if err := binary.Write(gzWriter, binary.LittleEndian, meshVersion); err != nil {
		return nil, err
	}
	if err := writeFloat32Slice(gzWriter, mesh.Vertices); err != nil {
		return nil, err
	}
	if err := writeInt32Slice(gzWriter, mesh.Faces); err != nil {
		return nil, err
	}

	if err := gzWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMeshBinary is the inverse of EncodeMeshBinary. The returned mesh has
// its bounds computed and an identity transform.
func DecodeMeshBinary(data []byte) (*scene.Mesh, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	var magic uint32
	if err := binary.Read(gzReader, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != meshMagic {
		return nil, fmt.Errorf("invalid mesh file magic: %x", magic)
	}

	var version uint32
	if err := binary.Read(gzReader, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != meshVersion {
		return nil, fmt.Errorf("unsupported mesh version: %d", version)
	}

	vertices, err := readFloat32Slice(gzReader)
	if err != nil {
		return nil, fmt.Errorf("reading vertices: %w", err)
	}
	faces, err := readInt32Slice(gzReader)
	if err != nil {
		return nil, fmt.Errorf("reading faces: %w", err)
	}
	if len(vertices)%3 != 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("corrupt mesh data: %d floats, %d indices", len(vertices), len(faces))
	}

	return scene.NewMeshFromBuffers(vertices, faces), nil
}

// SaveMesh writes mesh to path in the binary mesh format
func SaveMesh(path string, mesh *scene.Mesh) error {
	data, err := EncodeMeshBinary(mesh)
	if err != nil {
		return fmt.Errorf("encoding mesh %q: %w", mesh.Name, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func LoadMeshFile(path string) (*scene.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mesh, err := DecodeMeshBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh.SourcePath = path
	return mesh, nil
}

func writeFloat32Slice(w io.Writer, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func writeInt32Slice(w io.Writer, data []int32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func readFloat32Slice(r io.Reader) ([]float32, error) {
	return readSlice[float32](r)
}

func readInt32Slice(r io.Reader) ([]int32, error) {
	return readSlice[int32](r)
}

// readSlice reads a length-prefixed slice. The declared length is not trusted:
// values are read in chunks and the slice only grows as data arrives.
func readSlice[T float32 | int32](r io.Reader) ([]T, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}

	data := make([]T, 0, min(int(count), readChunk))
	chunk := make([]T, min(int(count), readChunk))
	for remaining := int(count); remaining > 0; {
		n := min(remaining, readChunk)
		if err := binary.Read(r, binary.LittleEndian, chunk[:n]); err != nil {
			return nil, fmt.Errorf("declared %d values, read %d: %w", count, len(data), err)
		}
		data = append(data, chunk[:n]...)
		remaining -= n
	}
	return data, nil
}

func readCount(r io.Reader) (int32, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, fmt.Errorf("negative slice length %d", count)
	}
	return count, nil
}
