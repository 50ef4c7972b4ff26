package gpu

// Attribute locations of the full-screen quad; quad vertex shaders declare them with
// layout qualifiers so one vertex array serves every pass program.
const (
	QuadPositionLocation = 0
	QuadTexCoordLocation = 1
)

var (
	quadVertices = []float32{
		// x, y, u, v
		-1, -1, 0, 0,
		1, -1, 1, 0,
		1, 1, 1, 1,
		-1, 1, 0, 1,
	}
	quadIndices = []uint16{0, 1, 2, 0, 2, 3}
)

// Quad is the fixed full-screen quad (4 vertices, 2 triangles).
type Quad struct {
	dev Device
	vao VertexArray
	vbo Buffer
	ebo Buffer
}

func NewQuad(dev Device) *Quad {
	q := &Quad{dev: dev}
	q.vao = dev.CreateVertexArray()
	dev.BindVertexArray(q.vao)

	q.vbo = dev.CreateBuffer()
	dev.BindBuffer(ArrayBuffer, q.vbo)
	dev.BufferDataFloat32(ArrayBuffer, quadVertices, StaticDraw)

	q.ebo = dev.CreateBuffer()
	dev.BindBuffer(ElementArrayBuffer, q.ebo)
	dev.BufferDataUint16(ElementArrayBuffer, quadIndices, StaticDraw)

	dev.EnableVertexAttribArray(QuadPositionLocation)
	dev.VertexAttribPointer(QuadPositionLocation, 2, 4*4, 0)
	dev.EnableVertexAttribArray(QuadTexCoordLocation)
	dev.VertexAttribPointer(QuadTexCoordLocation, 2, 4*4, 2*4)

	dev.BindVertexArray(0)
	return q
}

// Draw issues the quad with whatever program is current.
func (q *Quad) Draw() {
	q.dev.BindVertexArray(q.vao)
	q.dev.DrawElements(Triangles, len(quadIndices))
	q.dev.BindVertexArray(0)
}

func (q *Quad) Release() {
	if q == nil || q.dev == nil {
		return
	}
	q.dev.DeleteBuffer(q.vbo)
	q.dev.DeleteBuffer(q.ebo)
	q.dev.DeleteVertexArray(q.vao)
	q.dev = nil
}
