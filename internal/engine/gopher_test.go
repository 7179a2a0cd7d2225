package engine

import (
	"context"
	"math"
	"testing"

	"GopherPick/internal/behaviour"
	"GopherPick/internal/raycast"
	"GopherPick/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type recordingBehaviour struct {
	picks []scene.PickResult
}

func (b *recordingBehaviour) Start()                         {}
func (b *recordingBehaviour) Update(deltaTime float64)       {}
func (b *recordingBehaviour) OnPick(result scene.PickResult) { b.picks = append(b.picks, result) }

func newTestGopher() (*Gopher, *scene.Mesh) {
	s := scene.NewScene()
	cube := scene.NewMesh([]mgl32.Vec3{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}, []int32{
		4, 5, 6, 4, 6, 7,
		1, 0, 3, 1, 3, 2,
		0, 4, 7, 0, 7, 3,
		5, 1, 2, 5, 2, 6,
		3, 7, 6, 3, 6, 2,
		0, 1, 5, 0, 5, 4,
	})
	cube.Name = "cube"
	s.AddMesh(cube)

	ground := raycast.NewPlane(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0})
	s.SetGround(&ground)

	return NewGopher(s, 800, 600), cube
}

func TestPickAt(t *testing.T) {
	gopher, cube := newTestGopher()
	recorder := &recordingBehaviour{}
	behaviour.GlobalBehaviourManager.Add(recorder)
	defer behaviour.GlobalBehaviourManager.Clear()

	// Just off the centre of the window, away from the face diagonal
	result := gopher.PickAt(410, 305)
	if !result.Hit || result.Mesh != cube {
		t.Fatalf("Expected to pick the cube, got %+v", result)
	}
	if math.Abs(float64(result.Point.Z()-0.5)) > 1e-4 {
		t.Errorf("Expected hit on the front face z=0.5, got %v", result.Point)
	}

	result = gopher.PickAt(400, 590)
	if !result.Hit || result.Mesh != nil {
		t.Errorf("Expected a ground hit, got %+v", result)
	}
	if math.Abs(float64(result.Point.Y()+1)) > 1e-4 {
		t.Errorf("Expected ground point at y=-1, got %v", result.Point)
	}

	result = gopher.PickAt(400, 5)
	if result.Hit {
		t.Errorf("Expected a miss towards the sky, got %+v", result)
	}
	if gopher.LastPick() != result {
		t.Error("LastPick should return the most recent result")
	}

	if len(recorder.picks) != 3 {
		t.Errorf("Expected behaviours to see 3 picks, got %d", len(recorder.picks))
	}
}

func TestResize(t *testing.T) {
	gopher, _ := newTestGopher()

	gopher.Resize(1000, 500)
	if gopher.Width != 1000 || gopher.Height != 500 {
		t.Errorf("Expected 1000x500, got %dx%d", gopher.Width, gopher.Height)
	}
	if gopher.Camera.AspectRatio != 2 {
		t.Errorf("Expected aspect ratio 2, got %f", gopher.Camera.AspectRatio)
	}

	gopher.Resize(0, 0)
	if gopher.Width != 1000 || gopher.Height != 500 {
		t.Errorf("Minimised window should keep the old size, got %dx%d", gopher.Width, gopher.Height)
	}
}

func TestProbeScreen(t *testing.T) {
	gopher, _ := newTestGopher()

	hits, err := gopher.ProbeScreen(context.Background(), 8, 6)
	if err != nil {
		t.Fatalf("ProbeScreen failed: %v", err)
	}
	if hits == 0 || hits >= 48 {
		t.Errorf("Expected some but not all rays to hit, got %d of 48", hits)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gopher.ProbeScreen(ctx, 8, 6); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}
