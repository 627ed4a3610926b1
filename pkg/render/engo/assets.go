// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/mzijlstra/Breakout/pkg/entity"
	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Palette
var (
	ballColor   = color.NRGBA{240, 240, 240, 255}
	paddleColor = color.NRGBA{250, 210, 60, 255}
	trackColor  = color.NRGBA{90, 90, 100, 255}
	brickColor  = color.NRGBA{200, 60, 50, 255}
	brickEdge   = color.NRGBA{120, 30, 25, 255}
	dirtColor   = color.NRGBA{150, 110, 60, 255}
	groundColor = color.NRGBA{120, 90, 50, 255}
)

// SpriteSizes are the pixel sizes of the generated sprites.
type SpriteSizes struct {
	BallW, BallH     int
	PaddleW, PaddleH int
	BrickW, BrickH   int
}

// SpriteImages holds the generated sprite images before they are uploaded.
type SpriteImages struct {
	Ball   *image.NRGBA
	Brick  *image.NRGBA
	Dirt   *image.NRGBA
	Paddle [entity.RotationFrames]*image.NRGBA
	Track  [entity.RotationFrames]*image.NRGBA
}

// BuildSpriteImages draws every sprite. Paddle and track sprites are
// pre-rotated, one image per rotation frame.
func BuildSpriteImages(s SpriteSizes) *SpriteImages {
	imgs := &SpriteImages{
		Ball:  disc(s.BallW, s.BallH, ballColor),
		Brick: framedBox(s.BrickW, s.BrickH, brickColor, brickEdge),
		Dirt:  speckledBox(s.BrickW, s.BrickH, dirtColor),
	}
	trackH := s.PaddleH / 2
	if trackH < 1 {
		trackH = 1
	}
	for f := 0; f < entity.RotationFrames; f++ {
		deg := FrameAngle(f)
		imgs.Paddle[f] = rotatedBox(s.PaddleW, s.PaddleH, deg, paddleColor)
		imgs.Track[f] = rotatedBox(s.PaddleW, trackH, deg, trackColor)
	}
	return imgs
}

// FrameAngle returns the rotation drawn by sprite frame f.
func FrameAngle(f int) float64 {
	return float64(f) * 180 / entity.RotationFrames
}

// rotatedBox draws a w x h box rotated by deg degrees, centred in a square
// image large enough for any rotation.
func rotatedBox(w, h int, deg float64, c color.NRGBA) *image.NRGBA {
	side := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	inv := mgl64.Rotate2D(-physics.DegreesToRadians(deg))
	half := float64(side) / 2
	hw, hh := float64(w)/2, float64(h)/2

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			p := inv.Mul2x1(mgl64.Vec2{float64(x) + 0.5 - half, float64(y) + 0.5 - half})
			if math.Abs(p.X()) <= hw && math.Abs(p.Y()) <= hh {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

func disc(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rx, ry := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			dy := (float64(y) + 0.5 - ry) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

func framedBox(w, h int, fill, edge color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{edge}, image.Point{}, draw.Src)
	if w > 2 && h > 2 {
		draw.Draw(img, image.Rect(1, 1, w-1, h-1), &image.Uniform{fill}, image.Point{}, draw.Src)
	}
	return img
}

// speckledBox fills a box with a fixed dither so debris reads as loose dirt.
func speckledBox(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	dark := color.NRGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x*7+y*13)%5 == 0 {
				img.SetNRGBA(x, y, dark)
			} else {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// AssetManager uploads the sprite images as textures.
type AssetManager struct {
	sizes SpriteSizes

	ball   common.Drawable
	brick  common.Drawable
	dirt   common.Drawable
	paddle [entity.RotationFrames]common.Drawable
	track  [entity.RotationFrames]common.Drawable

	ground        common.Texture
	hasGround     bool
	groundVersion uint64
}

// NewAssetManager creates a new asset manager
func NewAssetManager(sizes SpriteSizes) *AssetManager {
	return &AssetManager{sizes: sizes}
}

// LoadAssets builds and uploads every sprite. It needs a GL context.
func (am *AssetManager) LoadAssets() error {
	imgs := BuildSpriteImages(am.sizes)
	am.ball = toTexture(imgs.Ball)
	am.brick = toTexture(imgs.Brick)
	am.dirt = toTexture(imgs.Dirt)
	for f := range imgs.Paddle {
		am.paddle[f] = toTexture(imgs.Paddle[f])
		am.track[f] = toTexture(imgs.Track[f])
	}
	return nil
}

func toTexture(img *image.NRGBA) common.Texture {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// GroundTexture returns the terrain texture, re-uploading it when the
// terrain changed since the last call. The previous texture is released.
func (am *AssetManager) GroundTexture(t *terrain.Terrain) (common.Drawable, bool) {
	if !am.hasGround || am.groundVersion != t.Version() {
		if am.hasGround {
			am.ground.Close()
		}
		am.ground = toTexture(t.Image(groundColor))
		am.groundVersion = t.Version()
		am.hasGround = true
		return am.ground, true
	}
	return am.ground, false
}

// Ball returns the ball sprite
func (am *AssetManager) Ball() common.Drawable { return am.ball }

// Brick returns the brick sprite
func (am *AssetManager) Brick() common.Drawable { return am.brick }

// Dirt returns the debris sprite
func (am *AssetManager) Dirt() common.Drawable { return am.dirt }

// Paddle returns the paddle face sprite for a rotation frame
func (am *AssetManager) Paddle(frame int) common.Drawable {
	return am.paddle[clampFrame(frame)]
}

// Track returns the track sprite for a rotation frame
func (am *AssetManager) Track(frame int) common.Drawable {
	return am.track[clampFrame(frame)]
}

func clampFrame(f int) int {
	if f < 0 {
		return 0
	}
	if f >= entity.RotationFrames {
		return entity.RotationFrames - 1
	}
	return f
}
