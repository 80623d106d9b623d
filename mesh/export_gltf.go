package mesh

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const maxGLTFInfluences = 4

// ExportGLTF writes the model as binary glTF. One gltf mesh and node per
// geometry, materials shared by name across geometries.
func (m *Model) ExportGLTF(w io.Writer) error {
	doc := gltf.NewDocument()

	materialIndex := make(map[string]uint32)
	for _, name := range m.Materials {
		if _, exists := materialIndex[name]; exists {
			continue
		}
		doc.Materials = append(doc.Materials, &gltf.Material{Name: name})
		materialIndex[name] = uint32(len(doc.Materials) - 1)
	}

	for _, mesh := range m.Meshes {
		primitive := mesh.gltfPrimitive(doc)
		if mesh.Material != "" {
			primitive.Material = gltf.Index(materialIndex[mesh.Material])
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       mesh.Name,
			Primitives: []*gltf.Primitive{primitive},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: mesh.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
	}

	for iNode := range doc.Nodes {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(iNode))
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

func (m *Mesh) gltfPrimitive(doc *gltf.Document) *gltf.Primitive {
	verticesCount := len(m.Positions)
	attributes := make(map[string]uint32)

	positions := make([][3]float32, verticesCount)
	for i, p := range m.Positions {
		positions[i] = p
	}
	attributes["POSITION"] = modeler.WritePosition(doc, positions)

	if len(m.Normals) != 0 {
		normals := make([][3]float32, verticesCount)
		for i, n := range m.Normals {
			if n.Len() > 0.5 {
				n = n.Normalize()
			}
			normals[i] = n
		}
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
	}

	for iLayer, layer := range m.UVLayers {
		uvs := make([][2]float32, verticesCount)
		for i, uv := range layer.Coords {
			uvs[i] = uv
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", iLayer)] = modeler.WriteTextureCoord(doc, uvs)
	}

	for iLayer, layer := range m.ColourLayers {
		colors := make([][4]uint8, verticesCount)
		for i, c := range layer.Colours {
			colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
		}
		attributes[fmt.Sprintf("COLOR_%d", iLayer)] = modeler.WriteColor(doc, colors)
	}

	if len(m.Groups) > 0 {
		joints, weights := m.skinAttributes()
		attributes["JOINTS_0"] = modeler.WriteJoints(doc, joints)
		attributes["WEIGHTS_0"] = modeler.WriteWeights(doc, weights)
	}

	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, face := range m.Faces {
		indices = append(indices, face[0], face[1], face[2])
	}

	return &gltf.Primitive{
		Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
		Attributes: attributes,
	}
}

// skinAttributes flattens weight groups back into fixed 4-influence
// per-vertex arrays. Influences beyond the fourth are dropped, weight
// order inside a vertex follows group order.
func (m *Mesh) skinAttributes() ([][4]uint16, [][4]float32) {
	joints := make([][4]uint16, len(m.Positions))
	weights := make([][4]float32, len(m.Positions))
	used := make([]int, len(m.Positions))

	for iGroup, group := range m.Groups {
		for _, vertexIndex := range group.VertexIndices() {
			w := group.Weight(vertexIndex)
			if w == 0 || used[vertexIndex] >= maxGLTFInfluences {
				continue
			}
			slot := used[vertexIndex]
			joints[vertexIndex][slot] = uint16(iGroup)
			weights[vertexIndex][slot] = w
			used[vertexIndex]++
		}
	}

	return joints, weights
}
