package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/quadview/pkg/geometry"
)

// Projection constants
const (
	PerspectiveFOV = 75.0 // degrees, vertical
	NearPlane      = 0.1
	FarPlane       = 100000.0
	OrthoDepth     = 100000.0
)

// Matrices returns the view and projection matrices for the camera's current state and pane size
func (c *Camera) Matrices() (view, proj mgl64.Mat4) {
	return BuildMatrices(c.state, c.Aspect())
}

// BuildMatrices builds the look-at view matrix and the projection matrix for
// a camera state. Perspective panes get a fixed-FOV perspective projection,
// ortho panes a true orthographic one whose half-height is distance*0.5.
func BuildMatrices(state CameraState, aspect float64) (view, proj mgl64.Mat4) {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}

	_, _, up := basis(state)
	view = mgl64.LookAtV(eye(state).Vec3(), state.Pan.Vec3(), up.Vec3())

	if state.Type.IsOrtho() {
		halfHeight := state.Distance * 0.5
		halfWidth := halfHeight * aspect
		proj = mgl64.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, -OrthoDepth, OrthoDepth)
	} else {
		proj = mgl64.Perspective(mgl64.DegToRad(PerspectiveFOV), aspect, NearPlane, FarPlane)
	}
	return view, proj
}

// WorldToScreen projects a world point to pixel coordinates. visible is false
// when the point lies behind the camera; x and y are then meaningless.
func WorldToScreen(point geometry.Vector3, view, proj mgl64.Mat4, width, height float64) (x, y float64, visible bool) {
	clip := proj.Mul4(view).Mul4x1(point.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}

	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	x = (ndcX + 1) * 0.5 * width
	y = (1 - ndcY) * 0.5 * height
	return x, y, true
}

// ScreenToWorld maps a pixel to a world position. For ortho panes this is the
// exact inverse of WorldToScreen on the view plane through the target. For the
// perspective pane it returns the point at the target's depth under the pixel,
// which is only an approximation of what lies under the cursor.
func ScreenToWorld(x, y float64, state CameraState, width, height float64) geometry.Vector3 {
	if width <= 0 || height <= 0 {
		return state.Pan
	}
	_, right, up := basis(state)

	if state.Type.IsOrtho() {
		scale := state.Distance / height
		dx := (x - width*0.5) * scale
		dy := (y - height*0.5) * scale
		return state.Pan.Add(right.Mul(dx)).Sub(up.Mul(dy))
	}

	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height
	halfHeight := state.Distance * math.Tan(mgl64.DegToRad(PerspectiveFOV)/2)
	halfWidth := halfHeight * width / height
	return state.Pan.Add(right.Mul(ndcX * halfWidth)).Add(up.Mul(ndcY * halfHeight))
}

// PixelRay returns the pick ray through a pixel. Perspective rays start at
// the eye; ortho rays are parallel to the view direction and start on the
// camera plane.
func PixelRay(x, y float64, state CameraState, width, height float64) geometry.Ray {
	forward, _, _ := basis(state)
	if width <= 0 || height <= 0 {
		return geometry.NewRay(eye(state), forward)
	}

	if state.Type.IsOrtho() {
		onPlane := ScreenToWorld(x, y, state, width, height)
		return geometry.NewRay(onPlane.Sub(forward.Mul(state.Distance)), forward)
	}

	view, proj := BuildMatrices(state, width/height)
	inv := proj.Mul4(view).Inv()
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	if far.W() == 0 {
		return geometry.NewRay(eye(state), forward)
	}
	farPoint := geometry.FromVec3(far.Vec3().Mul(1 / far.W()))
	origin := eye(state)
	return geometry.NewRay(origin, farPoint.Sub(origin))
}

// WorldToScreen projects p into this camera's pane
func (c *Camera) WorldToScreen(p geometry.Vector3) (x, y float64, visible bool) {
	view, proj := c.Matrices()
	return WorldToScreen(p, view, proj, c.width, c.height)
}

// ScreenToWorld maps a pane pixel to world space
func (c *Camera) ScreenToWorld(x, y float64) geometry.Vector3 {
	return ScreenToWorld(x, y, c.state, c.width, c.height)
}

// PixelRay returns the pick ray through a pane pixel
func (c *Camera) PixelRay(x, y float64) geometry.Ray {
	return PixelRay(x, y, c.state, c.width, c.height)
}
