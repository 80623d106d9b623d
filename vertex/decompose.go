package vertex

import (
	"github.com/pkg/errors"
)

// ErrMalformedBuffer reports buffer-level damage: an index count that is
// not a whole number of triangles, or blend weight/index slot arrays of
// different lengths. Wrapped errors stay detectable with errors.Is.
var ErrMalformedBuffer = errors.New("malformed buffer")

// Decompose splits a flat vertex record stream into per-attribute streams.
// The vertex index space of the result is the input order. Attributes the
// layout does not declare come back empty, never as an error.
func Decompose(layout Layout, records []Record) (*Components, error) {
	c := &Components{
		Positions:    make([]Position, 0, len(records)),
		UVMap:        make(map[string][]UV),
		ColourMap:    make(map[string][]Colour),
		VertexGroups: make(map[int][]GroupWeight),
	}

	if layout.HasNormal {
		c.Normals = make([]Normal, 0, len(records))
	}
	for _, name := range layout.UVChannels {
		c.UVMap[name] = make([]UV, 0, len(records))
		c.UVOrder = append(c.UVOrder, name)
	}
	for _, name := range layout.ColourChannels {
		c.ColourMap[name] = make([]Colour, 0, len(records))
		c.ColourOrder = append(c.ColourOrder, name)
	}

	for vertexIndex, record := range records {
		c.Positions = append(c.Positions, record.Position)

		if layout.HasNormal {
			c.Normals = append(c.Normals, record.Normal)
		}

		if layout.HasBlendData {
			if len(record.BlendWeights) != len(record.BlendIndices) {
				return nil, errors.Wrapf(ErrMalformedBuffer,
					"vertex %d has %d blend weights but %d blend indices",
					vertexIndex, len(record.BlendWeights), len(record.BlendIndices))
			}

			for slot := range record.BlendWeights {
				// 8 bit linear dequantization. Weights are kept as stored:
				// no renormalization, zero-weight slots included.
				weight := float32(record.BlendWeights[slot]) / 255.0
				boneIndex := int(record.BlendIndices[slot])

				if _, seen := c.VertexGroups[boneIndex]; !seen {
					c.GroupOrder = append(c.GroupOrder, boneIndex)
				}
				c.VertexGroups[boneIndex] = append(c.VertexGroups[boneIndex],
					GroupWeight{VertexIndex: vertexIndex, Weight: weight})
			}
		}

		for i, name := range layout.UVChannels {
			c.UVMap[name] = append(c.UVMap[name], record.UVs[i])
		}
		for i, name := range layout.ColourChannels {
			c.ColourMap[name] = append(c.ColourMap[name], record.Colours[i])
		}
	}

	return c, nil
}

// Triangles reshapes a flat index stream into consecutive index triples.
func Triangles(indices []uint32) ([][3]uint32, error) {
	if len(indices)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformedBuffer,
			"index count %d is not a multiple of 3", len(indices))
	}

	faces := make([][3]uint32, len(indices)/3)
	for i := range faces {
		faces[i] = [3]uint32{indices[i*3], indices[i*3+1], indices[i*3+2]}
	}
	return faces, nil
}
