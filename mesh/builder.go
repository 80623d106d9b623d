package mesh

import (
	"fmt"
	"log"

	"github.com/coltfox/Sollumz/vertex"
)

// Builder turns vertex.Components into meshes for one drawable. It owns
// the drawable-wide context a single geometry cannot know: the skeleton
// bone names, the external bone id list, and the shader name list.
type Builder struct {
	BoneNames  []string
	BoneIDs    []uint32
	Materials  []string
	AutoSmooth bool
}

// GroupName resolves the weight group name for a bone index. Indices
// beyond the skeleton but covered by the geometry bone id list belong
// to an externally defined rig (common in mp clothing).
func (b *Builder) GroupName(boneIndex int) string {
	if len(b.BoneNames) > 0 && boneIndex < len(b.BoneNames) {
		return b.BoneNames[boneIndex]
	}
	if len(b.BoneIDs) > 0 && boneIndex < len(b.BoneIDs) {
		return fmt.Sprintf("EXTERNAL_BONE.%d", boneIndex)
	}
	return "UNKNOWN_BONE"
}

// Build assembles a mesh from decomposed components and reshaped faces.
// Faces referencing vertices outside the position list are dropped with
// a warning, everything else is carried over as-is.
func (b *Builder) Build(name string, c *vertex.Components, faces [][3]uint32, shaderIndex int) *Mesh {
	m := &Mesh{
		Name:       name,
		Positions:  c.Positions,
		Normals:    c.Normals,
		AutoSmooth: b.AutoSmooth && len(c.Normals) > 0,
	}

	m.Faces = make([][3]uint32, 0, len(faces))
	for _, face := range faces {
		if int(face[0]) >= len(c.Positions) ||
			int(face[1]) >= len(c.Positions) ||
			int(face[2]) >= len(c.Positions) {
			log.Printf("[mesh] Dropping face %v of %q, only %d vertices", face, name, len(c.Positions))
			continue
		}
		m.Faces = append(m.Faces, face)
	}

	for _, channel := range c.UVOrder {
		m.UVLayers = append(m.UVLayers, UVLayer{Name: channel, Coords: c.UVMap[channel]})
	}
	for _, channel := range c.ColourOrder {
		m.ColourLayers = append(m.ColourLayers, ColourLayer{Name: channel, Colours: c.ColourMap[channel]})
	}

	for _, boneIndex := range c.GroupOrder {
		group := NewWeightGroup(b.GroupName(boneIndex))
		for _, entry := range c.VertexGroups[boneIndex] {
			group.Add(entry.VertexIndex, entry.Weight)
		}
		m.Groups = append(m.Groups, group)
	}

	if shaderIndex < 0 || shaderIndex >= len(b.Materials) {
		log.Printf("[mesh] Material not set for %q. Shader index of %d not found!", name, shaderIndex)
	} else {
		m.Material = b.Materials[shaderIndex]
	}

	return m
}
