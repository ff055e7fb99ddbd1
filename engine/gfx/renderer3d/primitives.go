package renderer3d

import "github.com/hubastard/canopy/engine/core"

// Cube uploads a unit cube centred on the origin with per-face normals.
func Cube(r core.Renderer) (core.Mesh, error) {
	faces := [6]struct{ n, u, v [3]float32 }{
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
	}
	verts := make([]float32, 0, 6*4*vStride)
	inds := make([]uint32, 0, 6*6)
	for _, f := range faces {
		base := uint32(len(verts) / vStride)
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			for k := 0; k < 3; k++ {
				verts = append(verts, 0.5*(f.n[k]+c[0]*f.u[k]+c[1]*f.v[k]))
			}
			verts = append(verts, f.n[0], f.n[1], f.n[2])
		}
		inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	}
	return r.CreateMesh(core.MeshDesc{Vertices: verts, Indices: inds, Layout: MeshVertexLayout})
}
