package meshclip

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestReadWriteIndexedMesh(t *testing.T) {
	// Note: all values in this mesh are equivalent in float32 and float64.
	m := cubeMesh(model3d.XYZ(-0.5, 0.75, 0.0), model3d.XYZ(2.0, 3.0, 4.25), false)
	var b bytes.Buffer
	if err := WriteIndexedMesh(&b, m); err != nil {
		t.Fatal(err)
	}
	if result, err := ReadIndexedMesh(&b); err != nil {
		t.Fatal(err)
	} else {
		if !reflect.DeepEqual(result, m) {
			t.Fatalf("%v != %v", m, result)
		}
	}
}

func TestReadIndexedMeshInvalid(t *testing.T) {
	m := cubeMesh(model3d.Origin, model3d.XYZ(1, 1, 1), false)
	m.Faces[3][1] = 9
	var b bytes.Buffer
	if err := WriteIndexedMesh(&b, m); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadIndexedMesh(&b); err == nil {
		t.Fatal("expected an error for an out of range index")
	}

	b.Reset()
	b.Write([]byte{1, 0, 0})
	if _, err := ReadIndexedMesh(&b); err == nil {
		t.Fatal("expected an error for a truncated header")
	}
}

func TestReadIndexedMeshHugeHeader(t *testing.T) {
	var b bytes.Buffer
	header := []uint32{1 << 31, 1 << 31}
	if err := binary.Write(&b, binary.LittleEndian, header); err != nil {
		t.Fatal(err)
	}
	b.Write(make([]byte, 1024))
	if _, err := ReadIndexedMesh(&b); err == nil {
		t.Fatal("expected an error for counts beyond the end of the data")
	}
}

func TestLoadSave(t *testing.T) {
	m := cubeMesh(model3d.XYZ(-1, -2, -3), model3d.XYZ(1, 2, 3), false)
	dir := t.TempDir()
	for _, name := range []string{"cube.stl", "cube.bin"} {
		path := filepath.Join(dir, name)
		if err := Save(path, m); err != nil {
			t.Fatal(err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(loaded.Faces) != 12 || len(loaded.Coords) != 8 {
			t.Fatalf("%s: unexpected size %d %d", name, len(loaded.Faces), len(loaded.Coords))
		}
		if !loaded.IsClosed() {
			t.Fatalf("%s: loaded mesh is not closed", name)
		}
		if loaded.Volume() < 47.99 || loaded.Volume() > 48.01 {
			t.Fatalf("%s: unexpected volume %f", name, loaded.Volume())
		}
	}
}
