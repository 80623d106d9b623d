package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coltfox/Sollumz/vertex"
)

func testComponents() *vertex.Components {
	return &vertex.Components{
		Positions: []vertex.Position{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []vertex.Normal{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVMap: map[string][]vertex.UV{
			"texcoord0": {{0, 0}, {1, 0}, {0, 1}},
		},
		ColourMap: map[string][]vertex.Colour{
			"colour0": {{A: 255}, {A: 255}, {A: 255}},
		},
		VertexGroups: map[int][]vertex.GroupWeight{
			0: {{VertexIndex: 0, Weight: 1.0}},
			3: {{VertexIndex: 1, Weight: 0.5}, {VertexIndex: 1, Weight: 0.25}},
			7: {{VertexIndex: 2, Weight: 1.0}},
		},
		UVOrder:     []string{"texcoord0"},
		ColourOrder: []string{"colour0"},
		GroupOrder:  []int{0, 3, 7},
	}
}

func TestBuilderGroupNaming(t *testing.T) {
	b := &Builder{
		BoneNames: []string{"Root", "Spine"},
		BoneIDs:   []uint32{0, 1, 2, 3, 4},
	}

	tests := []struct {
		boneIndex int
		want      string
	}{
		{0, "Root"},
		{1, "Spine"},
		{3, "EXTERNAL_BONE.3"},
		{7, "UNKNOWN_BONE"},
	}
	for _, test := range tests {
		if got := b.GroupName(test.boneIndex); got != test.want {
			t.Errorf("GroupName(%d) = %q, want %q", test.boneIndex, got, test.want)
		}
	}

	noSkeleton := &Builder{}
	if got := noSkeleton.GroupName(0); got != "UNKNOWN_BONE" {
		t.Errorf("GroupName(0) without skeleton = %q", got)
	}
}

func TestBuilderBuild(t *testing.T) {
	b := &Builder{
		BoneNames:  []string{"Root", "Spine"},
		BoneIDs:    []uint32{0, 1, 2, 3, 4},
		Materials:  []string{"spec", "normal_spec"},
		AutoSmooth: true,
	}

	faces := [][3]uint32{{0, 1, 2}, {0, 2, 1}}
	m := b.Build("geom_0", testComponents(), faces, 1)

	if m.Material != "normal_spec" {
		t.Errorf("material = %q", m.Material)
	}
	if !m.AutoSmooth {
		t.Error("auto smooth not set")
	}
	if len(m.Faces) != 2 {
		t.Errorf("faces = %v", m.Faces)
	}
	if len(m.UVLayers) != 1 || m.UVLayers[0].Name != "texcoord0" {
		t.Errorf("uv layers = %+v", m.UVLayers)
	}
	if len(m.ColourLayers) != 1 || m.ColourLayers[0].Name != "colour0" {
		t.Errorf("colour layers = %+v", m.ColourLayers)
	}

	if len(m.Groups) != 3 {
		t.Fatalf("groups = %+v", m.Groups)
	}
	wantNames := []string{"Root", "EXTERNAL_BONE.3", "UNKNOWN_BONE"}
	for i, want := range wantNames {
		if m.Groups[i].Name != want {
			t.Errorf("group %d name = %q, want %q", i, m.Groups[i].Name, want)
		}
	}

	// two entries for bone 3 on vertex 1 accumulate
	if got := m.Groups[1].Weight(1); got != 0.75 {
		t.Errorf("accumulated weight = %v, want 0.75", got)
	}
}

func TestBuilderMaterialIndexOutOfRange(t *testing.T) {
	b := &Builder{Materials: []string{"spec"}}

	for _, shaderIndex := range []int{-1, 1, 5} {
		m := b.Build("geom_0", testComponents(), nil, shaderIndex)
		if m.Material != "" {
			t.Errorf("material for shader index %d = %q, want unset", shaderIndex, m.Material)
		}
	}
}

func TestBuilderDropsOutOfRangeFaces(t *testing.T) {
	b := &Builder{}
	faces := [][3]uint32{{0, 1, 2}, {0, 1, 9}}

	m := b.Build("geom_0", testComponents(), faces, 0)
	if len(m.Faces) != 1 || m.Faces[0] != [3]uint32{0, 1, 2} {
		t.Errorf("faces = %v", m.Faces)
	}
}

func TestWeightGroupAdditive(t *testing.T) {
	g := NewWeightGroup("Root")
	g.Add(4, 0.25)
	g.Add(4, 0.25)
	g.Add(2, 1.0)

	if g.Weight(4) != 0.5 {
		t.Errorf("weight = %v, want 0.5", g.Weight(4))
	}
	if g.Len() != 2 {
		t.Errorf("len = %d", g.Len())
	}
	indices := g.VertexIndices()
	if len(indices) != 2 || indices[0] != 2 || indices[1] != 4 {
		t.Errorf("indices = %v", indices)
	}
}

func TestExportObj(t *testing.T) {
	b := &Builder{Materials: []string{"spec"}, AutoSmooth: true}
	m := b.Build("geom_0", testComponents(), [][3]uint32{{0, 1, 2}}, 0)
	model := &Model{Name: "test", Materials: []string{"spec"}, Meshes: []*Mesh{m}}

	var buf bytes.Buffer
	if err := model.ExportObj(&buf); err != nil {
		t.Fatalf("ExportObj() = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"o geom_0", "usemtl spec", "f 1/1/1 2/2/2 3/3/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("obj output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "vn "); got != 3 {
		t.Errorf("expected 3 normals, got %d:\n%s", got, out)
	}
}

func TestExportGLTF(t *testing.T) {
	b := &Builder{
		BoneNames:  []string{"Root"},
		Materials:  []string{"spec"},
		AutoSmooth: true,
	}
	m := b.Build("geom_0", testComponents(), [][3]uint32{{0, 1, 2}}, 0)
	model := &Model{Name: "test", Materials: []string{"spec"}, Meshes: []*Mesh{m}}

	var buf bytes.Buffer
	if err := model.ExportGLTF(&buf); err != nil {
		t.Fatalf("ExportGLTF() = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty gltf output")
	}
	// binary gltf magic
	if string(buf.Bytes()[:4]) != "glTF" {
		t.Errorf("magic = %q", buf.Bytes()[:4])
	}
}
