package loader

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"GopherPick/internal/raycast"
	"GopherPick/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const quadOBJ = `# unit quad on the XY plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Could not write fixture: %v", err)
	}
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeFile(t, "quad.obj", quadOBJ)

	mesh, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	if mesh.Name != "quad" {
		t.Errorf("Expected name quad, got %q", mesh.Name)
	}
	if mesh.SourcePath != path {
		t.Errorf("Expected source path %q, got %q", path, mesh.SourcePath)
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("Expected 4 vertices, got %d", mesh.VertexCount())
	}

	want := []int32{0, 1, 2, 0, 2, 3}
	if len(mesh.Faces) != len(want) {
		t.Fatalf("Expected faces %v, got %v", want, mesh.Faces)
	}
	for i := range want {
		if mesh.Faces[i] != want[i] {
			t.Errorf("Expected faces %v, got %v", want, mesh.Faces)
			break
		}
	}

	box := mesh.GetBoundingBox()
	if box.Min != (mgl32.Vec3{0, 0, 0}) || box.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

func TestParseOBJFanAndNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 2 0 0
v 3 1 0
v 1 2 0
v -1 1 0
f 1 2 3 4 5
f -3 -2 -1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	want := []int32{0, 1, 2, 0, 2, 3, 0, 3, 4, 2, 3, 4}
	if len(mesh.Faces) != len(want) {
		t.Fatalf("Expected faces %v, got %v", want, mesh.Faces)
	}
	for i := range want {
		if mesh.Faces[i] != want[i] {
			t.Errorf("Expected faces %v, got %v", want, mesh.Faces)
			break
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"bad vertex", "v 0 0 0\nv 1 x 0\n", "line 2"},
		{"short vertex", "v 0 0\n", "line 1"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\n\nf 1 2 4\n", "line 5"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", "line 4"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", "line 3"},
	}

	for _, tt := range tests {
		_, err := ParseOBJ(strings.NewReader(tt.src))
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.line) {
			t.Errorf("%s: expected error to mention %q, got %v", tt.name, tt.line, err)
		}
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadPlane(t *testing.T) {
	if _, err := LoadPlane(1, 1); err == nil {
		t.Error("Expected an error for gridSize < 2")
	}

	mesh, err := LoadPlane(3, 2)
	if err != nil {
		t.Fatalf("LoadPlane failed: %v", err)
	}
	if mesh.VertexCount() != 9 {
		t.Errorf("Expected 9 vertices, got %d", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 8 {
		t.Errorf("Expected 8 triangles, got %d", mesh.TriangleCount())
	}
	if box := mesh.GetBoundingBox(); box.Max != (mgl32.Vec3{4, 0, 4}) {
		t.Errorf("Expected plane to reach (4,0,4), got %v", box.Max)
	}

	// Every point of the grid is pickable from above
	ray := raycast.NewRay(mgl32.Vec3{1.3, 5, 2.7}, mgl32.Vec3{0, -1, 0})
	hit, distance, _ := raycast.IntersectMesh(ray, mesh)
	if !hit || math.Abs(float64(distance-5)) > 1e-4 {
		t.Errorf("Expected hit at distance 5, got hit=%v distance=%f", hit, distance)
	}
}

func TestLoadTerrain(t *testing.T) {
	a, err := LoadTerrain(16, 1, 4, 42)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}
	b, err := LoadTerrain(16, 1, 4, 42)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}

	flat := true
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("Same seed should give the same terrain, vertex float %d differs", i)
		}
		if i%3 == 1 && a.Vertices[i] != 0 {
			flat = false
		}
	}
	if flat {
		t.Error("Terrain should not be flat")
	}

	ray := raycast.NewRay(mgl32.Vec3{7.5, 100, 7.5}, mgl32.Vec3{0, -1, 0})
	if hit, _, _ := raycast.IntersectMesh(ray, a); !hit {
		t.Error("Expected a vertical ray to hit the terrain")
	}
}

func TestMeshBinaryEncoding(t *testing.T) {
	mesh := scene.NewMesh([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []int32{0, 1, 2})

	data, err := EncodeMeshBinary(mesh)
	if err != nil {
		t.Fatalf("EncodeMeshBinary failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Encoded data is empty")
	}

	decoded, err := DecodeMeshBinary(data)
	if err != nil {
		t.Fatalf("DecodeMeshBinary failed: %v", err)
	}

	if len(decoded.Vertices) != len(mesh.Vertices) {
		t.Errorf("Vertices length mismatch: got %d, want %d", len(decoded.Vertices), len(mesh.Vertices))
	}
	if len(decoded.Faces) != len(mesh.Faces) {
		t.Errorf("Faces length mismatch: got %d, want %d", len(decoded.Faces), len(mesh.Faces))
	}
	if decoded.GetBoundingBox() != mesh.GetBoundingBox() {
		t.Errorf("Expected bounds %v, got %v", mesh.GetBoundingBox(), decoded.GetBoundingBox())
	}
}

func TestDecodeMeshBinaryRejectsGarbage(t *testing.T) {
	if _, err := DecodeMeshBinary([]byte("not gzip")); err == nil {
		t.Error("Expected an error for non-gzip data")
	}

	terrain, err := LoadTerrain(8, 1, 1, 7)
	if err != nil {
		t.Fatalf("LoadTerrain failed: %v", err)
	}
	data, err := EncodeMeshBinary(terrain)
	if err != nil {
		t.Fatalf("EncodeMeshBinary failed: %v", err)
	}
	if _, err := DecodeMeshBinary(data[:len(data)/2]); err == nil {
		t.Error("Expected an error for truncated data")
	}
}

func TestMeshBinaryEncodingLargeMesh(t *testing.T) {
	// 40000 vertices is more than one read chunk of floats
	plane, err := LoadPlane(200, 0.5)
	if err != nil {
		t.Fatalf("LoadPlane failed: %v", err)
	}

	data, err := EncodeMeshBinary(plane)
	if err != nil {
		t.Fatalf("EncodeMeshBinary failed: %v", err)
	}
	decoded, err := DecodeMeshBinary(data)
	if err != nil {
		t.Fatalf("DecodeMeshBinary failed: %v", err)
	}

	if len(decoded.Vertices) != len(plane.Vertices) || len(decoded.Faces) != len(plane.Faces) {
		t.Fatalf("Expected %d floats and %d indices, got %d and %d",
			len(plane.Vertices), len(plane.Faces), len(decoded.Vertices), len(decoded.Faces))
	}
	for i := range plane.Vertices {
		if decoded.Vertices[i] != plane.Vertices[i] {
			t.Fatalf("Vertex float %d: expected %f, got %f", i, plane.Vertices[i], decoded.Vertices[i])
		}
	}
	for i := range plane.Faces {
		if decoded.Faces[i] != plane.Faces[i] {
			t.Fatalf("Face index %d: expected %d, got %d", i, plane.Faces[i], decoded.Faces[i])
		}
	}
}

func TestDecodeMeshBinaryOversizedCount(t *testing.T) {
	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	// Valid header, then a vertex count far beyond the data that follows
	for _, v := range []any{meshMagic, meshVersion, int32(0x7FFFFFFF), []float32{1, 2, 3}} {
		if err := binary.Write(gzWriter, binary.LittleEndian, v); err != nil {
			t.Fatalf("Could not write fixture: %v", err)
		}
	}
	if err := gzWriter.Close(); err != nil {
		t.Fatalf("Could not close gzip writer: %v", err)
	}

	mesh, err := DecodeMeshBinary(buf.Bytes())
	if err == nil {
		t.Fatalf("Expected an error for a truncated vertex buffer, got mesh with %d vertices", mesh.VertexCount())
	}
	if !strings.Contains(err.Error(), "declared 2147483647 values") {
		t.Errorf("Expected error to report the declared count, got %v", err)
	}
}

func TestLoadMesh(t *testing.T) {
	objPath := writeFile(t, "quad.obj", quadOBJ)

	mesh, err := LoadMesh(objPath)
	if err != nil {
		t.Fatalf("LoadMesh(obj) failed: %v", err)
	}

	cachePath := filepath.Join(t.TempDir(), "quad.gmesh")
	if err := SaveMesh(cachePath, mesh); err != nil {
		t.Fatalf("SaveMesh failed: %v", err)
	}

	cached, err := LoadMesh(cachePath)
	if err != nil {
		t.Fatalf("LoadMesh(gmesh) failed: %v", err)
	}
	if cached.Name != "quad" || cached.TriangleCount() != mesh.TriangleCount() {
		t.Errorf("Expected cached quad with %d triangles, got %q with %d", mesh.TriangleCount(), cached.Name, cached.TriangleCount())
	}

	if _, err := LoadMesh(writeFile(t, "model.fbx", "")); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
}
