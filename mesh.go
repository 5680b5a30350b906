package fractal

// Mesh is a renderable batch of triangles: an interleaved vertex stream
// (see VertexStride) with optional draw-order indices. Renderers consume
// meshes in scene order; within a mesh, triangles rasterize in stream
// (or index) order.
type Mesh struct {
	// Label is a debug name carried through to GPU resource labels.
	Label string

	// Vertices holds interleaved 6-float vertex records.
	Vertices []float32

	// Indices, when non-nil, selects vertices by record index in groups
	// of three. When nil, vertices are consumed sequentially.
	Indices []uint32
}

// VertexCount returns the number of vertex records in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// TriangleCount returns the number of triangles the mesh draws.
func (m *Mesh) TriangleCount() int {
	if m.IsIndexed() {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// IsIndexed reports whether the mesh uses an index buffer.
func (m *Mesh) IsIndexed() bool {
	return m.Indices != nil
}

// ExpandedVertices returns the mesh as a flat non-indexed stream, the
// shape a vertex-buffer upload consumes. Indexed meshes are resolved by
// copying each referenced record; non-indexed meshes are returned as-is
// without copying. Out-of-range indices are skipped.
func (m *Mesh) ExpandedVertices() []float32 {
	if !m.IsIndexed() {
		return m.Vertices
	}
	out := make([]float32, 0, len(m.Indices)*VertexStride)
	for _, idx := range m.Indices {
		off := int(idx) * VertexStride
		if off+VertexStride > len(m.Vertices) {
			continue
		}
		out = append(out, m.Vertices[off:off+VertexStride]...)
	}
	return out
}

// SierpinskiMesh generates the fractal triangle mesh for the corners
// (a, b, c) subdivided to maxDepth.
func SierpinskiMesh(a, b, c Point, maxDepth int) *Mesh {
	return &Mesh{
		Label:    "sierpinski",
		Vertices: Sierpinski(a, b, c, maxDepth),
	}
}

// BackgroundMesh returns the static full-viewport gradient quad drawn
// behind the fractal: four corner vertices and the index order
// {0,1,2, 0,2,3} splitting the quad into top-left and bottom-right
// triangles.
func BackgroundMesh() *Mesh {
	return &Mesh{
		Label: "background",
		Vertices: []float32{
			// x, y, z, r, g, b
			-1, -1, 0.5, 0, 0, 0.5, // bottom left
			-1, 1, 1, 1, 1, 0.125, // top left
			1, 1, -1, 1, 1, 0.125, // top right
			1, -1, 0.5, 1, 1, 0.5, // bottom right
		},
		Indices: []uint32{
			0, 1, 2, // triangle one (top left)
			0, 2, 3, // triangle two (bottom right)
		},
	}
}

// Scene is an ordered list of meshes together with the clear color the
// frame starts from. Meshes draw in slice order.
type Scene struct {
	Clear  RGBA
	Meshes []*Mesh
}

// NewScene composes the stock frame: the background quad, then the
// Sierpinski triangle on the canonical root corners at the given depth.
func NewScene(maxDepth int) *Scene {
	a, b, c := RootTriangle()
	return &Scene{
		Clear: ClearColor,
		Meshes: []*Mesh{
			BackgroundMesh(),
			SierpinskiMesh(a, b, c, maxDepth),
		},
	}
}

// VertexCount returns the total vertex count drawn per frame, after
// index expansion.
func (s *Scene) VertexCount() int {
	total := 0
	for _, m := range s.Meshes {
		if m.IsIndexed() {
			total += len(m.Indices)
		} else {
			total += m.VertexCount()
		}
	}
	return total
}
