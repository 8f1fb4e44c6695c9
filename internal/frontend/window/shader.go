package window

const vertexShader = `
#version 410

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragmentShader = `
#version 410

uniform sampler2D framebuffer;
uniform vec3 color;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Lit pixels are stored as 255 in the red channel.
    float lit = texture(framebuffer, fragTexCoord).r;
    outputColor = vec4(color * lit, 1);
}
`

// quadVertices covers the whole viewport with two triangles. The texture
// coordinates are flipped vertically so that row 0 of the framebuffer is
// at the top of the window.
var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
