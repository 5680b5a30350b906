package fractal

// Vertex attribute layout of the interleaved stream. Each vertex record is
// 6 float32 values: 3 position components followed by 3 color components.
//
//	attribute 0: position (3 x f32) at float offset 0 / byte offset 0
//	attribute 1: color    (3 x f32) at float offset 3 / byte offset 12
const (
	// VertexStride is the number of float32 values per vertex record.
	VertexStride = 6

	// VertexStrideBytes is the byte stride per vertex record.
	VertexStrideBytes = VertexStride * 4

	// ColorOffsetBytes is the byte offset of the color attribute within
	// a vertex record.
	ColorOffsetBytes = 3 * 4
)

// Vertex is a single point of a triangle face together with its color.
// Position and color are kept as separate semantic fields; interleaving
// into the flat 6-float wire format happens only at the serialization
// boundary via AppendTo.
type Vertex struct {
	Position Point
	Color    RGBA
}

// AppendTo appends the vertex's 6-float record (x, y, z, r, g, b) to dst
// and returns the extended slice. Alpha is not part of the wire format.
func (v Vertex) AppendTo(dst []float32) []float32 {
	return append(dst,
		float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z),
		float32(v.Color.R), float32(v.Color.G), float32(v.Color.B),
	)
}
