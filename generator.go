package fractal

// DefaultMaxDepth is the recursion bound used by the stock scene. Vertex
// count grows as 3^depth; at depth 8 the stream holds 9,837 vertices
// (59,022 floats), comfortably within a device vertex buffer. Raise with
// care: each additional level triples the geometry.
const DefaultMaxDepth = 8

// Generator produces the interleaved vertex stream of a Sierpinski
// triangle by recursive subdivision.
//
// Each call to Generate walks the subdivision tree depth-first in
// pre-order: the current triangle's three corners are emitted first, then
// the three child triangles formed by its edge midpoints are visited in
// corner order (a-branch, b-branch, c-branch). Every intermediate triangle
// is emitted as a complete face AND subdivided, so the stream layers
// progressively smaller, greener triangles on top of their parents in
// draw order. That overlap is the intended look, not redundancy.
//
// The generator is a pure function of its inputs: no hidden state, no
// randomness, identical inputs produce bit-identical streams. It is
// designed to be reused across frames via Reset().
type Generator struct {
	// vertices holds interleaved 6-float records (see VertexStride).
	vertices []float32

	// maxDepth is the inclusive recursion bound of the current walk.
	maxDepth int
}

// NewGenerator creates a new generator with no pre-allocated capacity.
// Generate sizes the vertex buffer exactly from the closed-form count.
func NewGenerator() *Generator {
	return &Generator{}
}

// Reset clears the generator state for reuse without releasing memory.
func (g *Generator) Reset() {
	g.vertices = g.vertices[:0]
}

// Generate builds the vertex stream for the triangle (a, b, c) subdivided
// to maxDepth and returns it. The returned slice is owned by the generator
// and valid until the next Generate or Reset call.
//
// Generate is total: degenerate (collinear or coincident) corners simply
// produce zero-area geometry, and a negative maxDepth yields an empty
// stream, since depth 0 already exceeds the bound.
func (g *Generator) Generate(a, b, c Point, maxDepth int) []float32 {
	g.Reset()
	g.maxDepth = maxDepth

	if want := VertexCountForDepth(maxDepth) * VertexStride; cap(g.vertices) < want {
		g.vertices = make([]float32, 0, want)
	}

	g.subdivide(a, b, c, 0)
	return g.vertices
}

// subdivide emits the triangle (a, b, c) at the given depth, then recurses
// into its three midpoint children until depth exceeds the bound. The
// recursion stack is at most maxDepth+1 frames deep.
func (g *Generator) subdivide(a, b, c Point, depth int) {
	if depth > g.maxDepth {
		return
	}

	col := DepthColor(depth, g.maxDepth)
	g.vertices = Vertex{Position: a, Color: col}.AppendTo(g.vertices)
	g.vertices = Vertex{Position: b, Color: col}.AppendTo(g.vertices)
	g.vertices = Vertex{Position: c, Color: col}.AppendTo(g.vertices)

	ab := a.Midpoint(b)
	ac := a.Midpoint(c)
	bc := b.Midpoint(c)

	g.subdivide(a, ab, ac, depth+1)
	g.subdivide(b, ab, bc, depth+1)
	g.subdivide(c, ac, bc, depth+1)
}

// Vertices returns the raw interleaved vertex data from the last Generate
// call. Every VertexStride consecutive floats form one vertex record.
func (g *Generator) Vertices() []float32 {
	return g.vertices
}

// VertexCount returns the number of vertices in the generated stream.
func (g *Generator) VertexCount() int {
	return len(g.vertices) / VertexStride
}

// TriangleCount returns the number of triangle faces in the generated
// stream, counting every recursion level.
func (g *Generator) TriangleCount() int {
	return g.VertexCount() / 3
}

// VertexCountForDepth returns the exact number of vertices a subdivision
// to maxDepth produces: 3 * (3^(maxDepth+1) - 1) / 2, or 0 for a negative
// bound. Level k contributes 3^k triangles, and every level is emitted.
func VertexCountForDepth(maxDepth int) int {
	if maxDepth < 0 {
		return 0
	}
	pow := 1 // 3^(maxDepth+1)
	for i := 0; i <= maxDepth; i++ {
		pow *= 3
	}
	return 3 * (pow - 1) / 2
}

// Sierpinski is a convenience wrapper: it generates the vertex stream for
// the triangle (a, b, c) to maxDepth with a throwaway Generator.
func Sierpinski(a, b, c Point, maxDepth int) []float32 {
	return NewGenerator().Generate(a, b, c, maxDepth)
}
