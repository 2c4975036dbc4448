package viewer

import (
	"math"
	"time"

	"github.com/san-kum/postviz/internal/scene"
)

// Renderer draws a scene through a camera onto its own surface.
type Renderer interface {
	SetSize(width, height int)
	SetClearColor(c scene.Color)
	Render(sc *scene.Scene, cam *scene.PerspectiveCamera) error
}

// Host is the display region a view attaches its renderer to.
type Host interface {
	Size() (width, height int)
	Attach(r Renderer) error
	Detach(r Renderer)
}

// Options configure the viewport built on mount.
type Options struct {
	FPS            int
	FOV            float64
	Near, Far      float64
	CameraPosition scene.Vec3
	CameraTarget   scene.Vec3
	ClearColor     scene.Color
	GroundColor    scene.Color
	GroundWidth    float64
	GroundDepth    float64
	AmbientColor   scene.Color
	PointColor     scene.Color
	PointIntensity float64
	PointPosition  scene.Vec3
}

// DefaultOptions frames a run starting at the origin from slightly above.
func DefaultOptions() Options {
	return Options{
		FPS:            60,
		FOV:            60,
		Near:           0.1,
		Far:            5000,
		CameraPosition: scene.V3(50, 50, 500),
		CameraTarget:   scene.V3(50, 24, 0),
		ClearColor:     scene.MustHex("#ffffff"),
		GroundColor:    scene.MustHex("#527746"),
		GroundWidth:    10000,
		GroundDepth:    500,
		AmbientColor:   scene.MustHex("#404040"),
		PointColor:     scene.MustHex("#ffffff"),
		PointIntensity: 1,
		PointPosition:  scene.V3(0, 0, 900),
	}
}

func (o Options) frameInterval() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// Viewport is the long-lived part of the scene: camera, controls, lights and
// the ground plane. It is built once per mounted view.
type Viewport struct {
	Scene    *scene.Scene
	Camera   *scene.PerspectiveCamera
	Controls *scene.OrbitControls
	Ambient  *scene.AmbientLight
	Light    *scene.PointLight
	Ground   *scene.Mesh
}

// Bootstrap builds the viewport for a width x height surface.
func Bootstrap(width, height int, opts Options) *Viewport {
	sc := scene.NewScene()

	cam := scene.NewPerspectiveCamera(opts.FOV, 1, opts.Near, opts.Far)
	cam.SetAspect(width, height)
	cam.Position = opts.CameraPosition
	cam.LookAt(opts.CameraTarget)
	sc.Add(cam)

	controls := scene.NewOrbitControls(cam)
	controls.MaxDistance = opts.Far / 2
	controls.Update()

	ambient := scene.NewAmbientLight(opts.AmbientColor, 1)
	light := scene.NewPointLight(opts.PointColor, opts.PointIntensity)
	light.Position = opts.PointPosition
	sc.Add(ambient, light)

	ground := scene.NewMesh("ground",
		scene.NewPlaneGeometry(opts.GroundWidth, opts.GroundDepth),
		scene.NewBasicMaterial(opts.GroundColor, scene.DoubleSide),
	)
	ground.Rotation.X = math.Pi / 2
	sc.Add(ground)

	return &Viewport{
		Scene:    sc,
		Camera:   cam,
		Controls: controls,
		Ambient:  ambient,
		Light:    light,
		Ground:   ground,
	}
}

// Release frees the ground plane and empties the scene. Any container still
// attached is emptied through the same disposal pass.
func (vp *Viewport) Release() int {
	return scene.Dispose(vp.Scene)
}
