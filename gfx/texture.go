package gfx

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a 2D texture with the same size as the canvas it displays.
type Texture struct {
	texID uint32
	size  image.Point
}

// NewTexture allocates a texture for images of the given size and binds it to
// texture unit 0.
func NewTexture(size image.Point, mode int32) *Texture {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// write texture with nil pointer to initialize the space
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(size.X), int32(size.Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	return &Texture{texID: texID, size: size}
}

// Update uploads img. Images of a different size are ignored.
func (t *Texture) Update(img *image.RGBA) {
	if img.Rect.Size() != t.size {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(t.size.X), int32(t.size.Y),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}
