package meshclip

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// WriteIndexedMesh serializes m in a 32-bit precision binary format.
func WriteIndexedMesh(w io.Writer, m *IndexedMesh) error {
	header := []uint32{uint32(len(m.Coords)), uint32(len(m.Faces))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "write indexed mesh")
	}
	coords := make([]float32, 0, len(m.Coords)*3)
	for _, c := range m.Coords {
		coords = append(coords, float32(c.X), float32(c.Y), float32(c.Z))
	}
	if err := binary.Write(w, binary.LittleEndian, coords); err != nil {
		return errors.Wrap(err, "write indexed mesh")
	}
	faces := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		faces = append(faces, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	if err := binary.Write(w, binary.LittleEndian, faces); err != nil {
		return errors.Wrap(err, "write indexed mesh")
	}
	return nil
}

// ReadIndexedMesh reads the output written by WriteIndexedMesh.
func ReadIndexedMesh(r io.Reader) (*IndexedMesh, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read indexed mesh")
	}
	coords, err := readChunked[float32](r, int(header[0])*3)
	if err != nil {
		return nil, errors.Wrap(err, "read indexed mesh")
	}
	faces, err := readChunked[uint32](r, int(header[1])*3)
	if err != nil {
		return nil, errors.Wrap(err, "read indexed mesh")
	}
	res := &IndexedMesh{
		Coords: make([]model3d.Coord3D, header[0]),
		Faces:  make([][3]int, header[1]),
	}
	for i := range res.Coords {
		res.Coords[i] = model3d.XYZ(
			float64(coords[i*3]),
			float64(coords[i*3+1]),
			float64(coords[i*3+2]),
		)
	}
	for i := range res.Faces {
		res.Faces[i] = [3]int{int(faces[i*3]), int(faces[i*3+1]), int(faces[i*3+2])}
	}
	if err := res.Validate(); err != nil {
		return nil, errors.Wrap(err, "read indexed mesh")
	}
	return res, nil
}

// readChunkSize is the number of values read at once, which bounds the
// memory used before a truncated stream is detected.
const readChunkSize = 1 << 16

func readChunked[T float32 | uint32](r io.Reader, n int) ([]T, error) {
	res := make([]T, 0, min(n, readChunkSize))
	for len(res) < n {
		chunk := make([]T, min(n-len(res), readChunkSize))
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, err
		}
		res = append(res, chunk...)
	}
	return res, nil
}

// Load reads a mesh from an STL file or from a file written by Save.
// The format is chosen by the file extension.
func Load(path string) (*IndexedMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load mesh")
	}
	defer f.Close()
	if isSTL(path) {
		tris, err := model3d.ReadSTL(f)
		if err != nil {
			return nil, errors.Wrap(err, "load mesh")
		}
		return NewIndexedMeshTriangles(tris), nil
	}
	res, err := ReadIndexedMesh(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(err, "load mesh")
	}
	return res, nil
}

// Save writes a mesh to an STL file, or to the binary format of
// WriteIndexedMesh for any other extension.
func Save(path string, m *IndexedMesh) error {
	if isSTL(path) {
		if err := m.Mesh().SaveGroupedSTL(path); err != nil {
			return errors.Wrap(err, "save mesh")
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save mesh")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := WriteIndexedMesh(w, m.Compact()); err != nil {
		return errors.Wrap(err, "save mesh")
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "save mesh")
	}
	return nil
}

func isSTL(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".stl"
}
