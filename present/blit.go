package present

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// MapRGB packs three 8-bit channels into the little-endian 0xAABBGGRR
// word gl.TexImage2D(..., gl.RGBA, gl.UNSIGNED_BYTE, ...) expects on a
// little-endian host: byte 0 is R, byte 3 is alpha (always opaque).
// Framebuffer never interprets this encoding itself; it only exists so
// Present can hand the pixel slice straight to OpenGL.
func MapRGB(r, g, b uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | 0xff<<24
}

const quadVertexShader = `
#version 410 core
layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec2 inUV;
out vec2 fragUV;
void main() {
	fragUV = inUV;
	gl_Position = vec4(inPosition, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;
uniform sampler2D frameTex;
void main() {
	outColor = texture(frameTex, fragUV);
}
` + "\x00"

// blitter owns the GPU-side resources for one textured fullscreen
// quad: a VAO/VBO holding NDC positions + UVs, a shader program, and a
// texture re-uploaded from the CPU framebuffer every Present call.
type blitter struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32
	texW    int
	texH    int
}

func newBlitter(width, height int) (*blitter, error) {
	program, err := compileProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("compiling blit shader: %w", err)
	}

	// two triangles covering NDC [-1,1]^2, UV flipped in Y because the
	// framebuffer's row 0 is the top of the image, OpenGL's texture
	// origin is the bottom-left.
	vertices := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		1, 1, 1, 0,

		-1, -1, 0, 1,
		1, 1, 1, 0,
		-1, 1, 0, 0,
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &blitter{program: program, vao: vao, vbo: vbo, texture: tex, texW: width, texH: height}, nil
}

func (b *blitter) draw(width, height int, pixels []uint32) {
	if len(pixels) == 0 {
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	if width != b.texW || height != b.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
		b.texW, b.texH = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(b.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.Uniform1i(gl.GetUniformLocation(b.program, gl.Str("frameTex\x00")), 0)

	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (b *blitter) destroy() {
	gl.DeleteTextures(1, &b.texture)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteProgram(b.program)
}

func compileProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile: %v", log)
	}
	return shader, nil
}
