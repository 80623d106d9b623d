// Package mesh builds host-agnostic mesh models out of decomposed vertex
// components and exports them to interchange formats.
package mesh

import (
	"sort"

	"github.com/coltfox/Sollumz/vertex"
)

type UVLayer struct {
	Name   string
	Coords []vertex.UV
}

type ColourLayer struct {
	Name    string
	Colours []vertex.Colour
}

// WeightGroup is a named vertex weight group. Additions to the same
// vertex accumulate.
type WeightGroup struct {
	Name    string
	weights map[int]float32
}

func NewWeightGroup(name string) *WeightGroup {
	return &WeightGroup{Name: name, weights: make(map[int]float32)}
}

func (g *WeightGroup) Add(vertexIndex int, weight float32) {
	g.weights[vertexIndex] += weight
}

func (g *WeightGroup) Weight(vertexIndex int) float32 {
	return g.weights[vertexIndex]
}

func (g *WeightGroup) Len() int {
	return len(g.weights)
}

// VertexIndices returns the weighted vertices in ascending order.
func (g *WeightGroup) VertexIndices() []int {
	indices := make([]int, 0, len(g.weights))
	for i := range g.weights {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// Mesh is one geometry converted to editor-shaped data: triangle
// topology over ordered attribute streams plus named weight groups.
type Mesh struct {
	Name     string
	Material string // empty when the shader index was unresolvable

	Positions []vertex.Position
	Faces     [][3]uint32

	Normals    []vertex.Normal
	AutoSmooth bool

	UVLayers     []UVLayer
	ColourLayers []ColourLayer

	Groups []*WeightGroup
}

// Model is an imported drawable: its meshes plus the shader name list
// they index into.
type Model struct {
	Name      string
	Materials []string
	Meshes    []*Mesh
}
