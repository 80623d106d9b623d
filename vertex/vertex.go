package vertex

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type Position = mgl32.Vec3
type Normal = mgl32.Vec3
type UV = mgl32.Vec2
type Colour = color.NRGBA

// Layout describes the attribute shape shared by every record of one
// vertex buffer. Channel slices keep the declaration order of the buffer.
type Layout struct {
	HasNormal      bool
	HasBlendData   bool
	UVChannels     []string // e.g. "texcoord0", "texcoord1"
	ColourChannels []string // e.g. "colour0"
}

// Record is a single decoded vertex. UVs and Colours are parallel to the
// layout channel slices. BlendWeights/BlendIndices are raw bytes as stored
// in the buffer (4 slots per vertex in every known layout).
type Record struct {
	Position     Position
	Normal       Normal
	BlendWeights []uint8
	BlendIndices []uint8
	UVs          []UV
	Colours      []Colour
}

// GroupWeight is one skinning entry: which vertex, and how strongly the
// owning bone pulls on it. Weights are byte/255 and intentionally not
// renormalized, per-vertex sums other than 1.0 occur in source data.
type GroupWeight struct {
	VertexIndex int
	Weight      float32
}

// Components is the decomposed form of a vertex buffer: one ordered
// stream per attribute, indexed by the original vertex order. The *Order
// slices record first-seen order for map keys.
type Components struct {
	Positions    []Position
	Normals      []Normal
	UVMap        map[string][]UV
	ColourMap    map[string][]Colour
	VertexGroups map[int][]GroupWeight

	UVOrder     []string
	ColourOrder []string
	GroupOrder  []int
}
