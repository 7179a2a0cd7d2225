package engine

import (
	"context"
	"runtime"
	"time"

	"GopherPick/internal/behaviour"
	"GopherPick/internal/logger"
	"GopherPick/internal/raycast"
	"GopherPick/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var refreshRate time.Duration = time.Second / 60

// Gopher owns the window and turns mouse clicks into scene picks. Nothing is
// drawn; the window only provides input.
type Gopher struct {
	Width  int32
	Height int32
	Title  string
	Camera *scene.Camera
	Scene  *scene.Scene

	window    *glfw.Window
	raycaster *raycast.Raycaster
	lastPick  scene.PickResult

	lastX, lastY float64
	firstMouse   bool

	EnableCameraInput bool // Right mouse drag turns the camera
}

func NewGopher(s *scene.Scene, width, height int32) *Gopher {
	logger.Log.Info("GopherPick initializing...")
	return &Gopher{
		Width:             width,
		Height:            height,
		Title:             "GopherPick",
		Camera:            scene.NewDefaultCamera(width, height),
		Scene:             s,
		raycaster:         raycast.NewRaycaster(),
		firstMouse:        true,
		EnableCameraInput: true,
	}
}

// Render opens the window at (x, y) and runs the event loop until the window
// is closed.
func (gopher *Gopher) Render(x, y int) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	// No rendering context is needed for picking
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	var err error
	gopher.window, err = glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return
	}
	defer gopher.window.Destroy()

	gopher.window.SetPos(x, y)
	gopher.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	gopher.window.SetCursorPosCallback(gopher.mouseCallback)
	gopher.window.SetMouseButtonCallback(gopher.mouseButtonCallback)
	gopher.window.SetSizeCallback(gopher.sizeCallback)
	gopher.window.SetKeyCallback(gopher.keyCallback)

	gopher.RenderLoop()
}

func (gopher *Gopher) RenderLoop() {
	lastTime := glfw.GetTime()
	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		behaviour.GlobalBehaviourManager.UpdateAll(deltaTime)

		glfw.WaitEventsTimeout(refreshRate.Seconds())
	}
	logger.Log.Info("Window closed")
}

// PickAt casts a ray from the camera through the window pixel (screenX,
// screenY) and returns the nearest hit. Behaviours are notified with the
// result.
func (gopher *Gopher) PickAt(screenX, screenY float64) scene.PickResult {
	deviceCoords := raycast.ScreenToDeviceCoords(float32(screenX), float32(screenY), int(gopher.Width), int(gopher.Height))
	gopher.raycaster.SetPickRay(deviceCoords, gopher.Camera)

	result := gopher.Scene.Pick(gopher.raycaster.Ray)
	gopher.lastPick = result
	logPick(deviceCoords, result)

	behaviour.GlobalBehaviourManager.DispatchPick(result)
	return result
}

// LastPick returns the result of the most recent PickAt
func (gopher *Gopher) LastPick() scene.PickResult {
	return gopher.lastPick
}

// ProbeScreen picks a columns x rows grid of pixel centres concurrently and
// reports how many rays hit something. It does not notify behaviours.
func (gopher *Gopher) ProbeScreen(ctx context.Context, columns, rows int) (int, error) {
	rays := make([]raycast.Ray, 0, columns*rows)
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			screenX := (float32(column) + 0.5) * float32(gopher.Width) / float32(columns)
			screenY := (float32(row) + 0.5) * float32(gopher.Height) / float32(rows)
			deviceCoords := raycast.ScreenToDeviceCoords(screenX, screenY, int(gopher.Width), int(gopher.Height))
			rays = append(rays, raycast.BuildPickRay(deviceCoords, gopher.Camera))
		}
	}

	results, err := gopher.Scene.PickBatch(ctx, rays)
	if err != nil {
		return 0, err
	}

	hits := 0
	for _, result := range results {
		if result.Hit {
			hits++
		}
	}
	logger.Log.Info("Screen probe finished",
		zap.Int("rays", len(rays)),
		zap.Int("hits", hits))
	return hits, nil
}

// Resize updates the window size used for pixel to device conversion and the
// camera aspect ratio.
func (gopher *Gopher) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return // minimised
	}
	gopher.Width = width
	gopher.Height = height
	gopher.Camera.SetAspectRatio(float32(width) / float32(height))
}

func logPick(deviceCoords mgl32.Vec2, result scene.PickResult) {
	switch {
	case result.Mesh != nil:
		logger.Log.Info("Picked mesh",
			zap.String("name", result.Mesh.Name),
			zap.Int("id", result.Mesh.Id),
			zap.Float32("distance", result.Distance),
			zap.Float32s("point", result.Point[:]))
	case result.Hit:
		logger.Log.Info("Picked ground",
			zap.Float32("distance", result.Distance),
			zap.Float32s("point", result.Point[:]))
	default:
		logger.Log.Debug("Pick missed", zap.Float32s("device", deviceCoords[:]))
	}
}

func (gopher *Gopher) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button == glfw.MouseButtonLeft && action == glfw.Press {
		x, y := w.GetCursorPos()
		gopher.PickAt(x, y)
	}
}

// Right mouse drag turns the camera
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if gopher.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if gopher.firstMouse {
			gopher.lastX = xpos
			gopher.lastY = ypos
			gopher.firstMouse = false
			return
		}

		xoffset := xpos - gopher.lastX
		yoffset := gopher.lastY - ypos // Reversed since y-coordinates go from bottom to top
		gopher.lastX = xpos
		gopher.lastY = ypos

		gopher.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		gopher.firstMouse = true
	}
}

func (gopher *Gopher) sizeCallback(w *glfw.Window, width, height int) {
	gopher.Resize(int32(width), int32(height))
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyP:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := gopher.ProbeScreen(ctx, 64, 48); err != nil {
			logger.Log.Warn("Screen probe failed", zap.Error(err))
		}
	}
}
