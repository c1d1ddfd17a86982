package render

import (
	"axis-viewer/internal/axis"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawLabels projects each label position to the screen and draws its text there.
// Labels behind the camera are skipped.
func drawLabels(cam rl.Camera3D, labels []axis.Label, size int32, c rl.Color) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	for _, l := range labels {
		pos := toVector(l.Position)
		if rl.Vector3DotProduct(rl.Vector3Subtract(pos, cam.Position), forward) <= 0 {
			continue
		}
		sp := rl.GetWorldToScreen(pos, cam)
		rl.DrawText(l.Text, int32(sp.X), int32(sp.Y)-size/2, size, c)
	}
}
