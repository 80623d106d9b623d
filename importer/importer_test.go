package importer

import (
	"testing"

	"github.com/coltfox/Sollumz/config"
	"github.com/coltfox/Sollumz/cwxml"
)

const twoGeometryXML = `<Drawable>
 <Name>prop_bench</Name>
 <ShaderGroup>
  <Shaders>
   <Item><Name>spec</Name></Item>
  </Shaders>
 </ShaderGroup>
 <Skeleton>
  <Bones>
   <Item><Name>Root</Name><Index value="0" /></Item>
  </Bones>
 </Skeleton>
 <DrawableModelsHigh>
  <Item>
   <Geometries>
    <Item>
     <ShaderIndex value="0" />
     <VertexBuffer>
      <Layout type="GTAV1">
       <Position />
       <Normal />
       <TexCoord0 />
      </Layout>
      <Data>
       0 0 0  0 0 1  0 0
       1 0 0  0 0 1  1 0
       0 1 0  0 0 1  0 1
      </Data>
     </VertexBuffer>
     <IndexBuffer>
      <Data>0 1 2</Data>
     </IndexBuffer>
    </Item>
    <Item>
     <ShaderIndex value="4" />
     <VertexBuffer>
      <Layout type="GTAV1">
       <Position />
      </Layout>
      <Data>
       0 0 0
       1 0 0
      </Data>
     </VertexBuffer>
     <IndexBuffer>
      <Data>0 1 0 1</Data>
     </IndexBuffer>
    </Item>
   </Geometries>
  </Item>
 </DrawableModelsHigh>
</Drawable>`

func TestImportDrawableSkipsMalformedGeometry(t *testing.T) {
	d, err := cwxml.NewDrawableFromData([]byte(twoGeometryXML))
	if err != nil {
		t.Fatalf("NewDrawableFromData() = %v", err)
	}

	imp := New(config.Default())
	model, err := imp.ImportDrawable(d)
	if err != nil {
		t.Fatalf("ImportDrawable() = %v", err)
	}

	if model.Name != "prop_bench" {
		t.Errorf("name = %q", model.Name)
	}
	// second geometry has 4 indices, not a triangle list, must be skipped
	if len(model.Meshes) != 1 {
		t.Fatalf("meshes = %d, want 1", len(model.Meshes))
	}

	m := model.Meshes[0]
	if m.Name != "prop_bench.model0.geom0" {
		t.Errorf("mesh name = %q", m.Name)
	}
	if m.Material != "spec" {
		t.Errorf("material = %q", m.Material)
	}
	if len(m.Faces) != 1 || len(m.Positions) != 3 {
		t.Errorf("topology: %d faces, %d vertices", len(m.Faces), len(m.Positions))
	}
	if !m.AutoSmooth {
		t.Error("auto smooth not set")
	}
	if len(m.UVLayers) != 1 || m.UVLayers[0].Name != "texcoord0" {
		t.Errorf("uv layers = %+v", m.UVLayers)
	}
}

func TestImportDrawableGeneratesNames(t *testing.T) {
	const unnamed = `<Drawable>
 <DrawableModelsHigh>
  <Item>
   <Geometries>
    <Item>
     <ShaderIndex value="0" />
     <VertexBuffer>
      <Layout type="GTAV1"><Position /></Layout>
      <Data>
       0 0 0
      </Data>
     </VertexBuffer>
     <IndexBuffer><Data>0 0 0</Data></IndexBuffer>
    </Item>
   </Geometries>
  </Item>
 </DrawableModelsHigh>
</Drawable>`

	d, err := cwxml.NewDrawableFromData([]byte(unnamed))
	if err != nil {
		t.Fatalf("NewDrawableFromData() = %v", err)
	}

	imp := New(nil)
	first, err := imp.ImportDrawable(d)
	if err != nil {
		t.Fatalf("ImportDrawable() = %v", err)
	}
	if first.Name == "" {
		t.Error("expected a generated name")
	}

	second, err := imp.ImportDrawable(d)
	if err != nil {
		t.Fatalf("ImportDrawable() = %v", err)
	}
	if second.Name == first.Name {
		t.Errorf("generated names collide: %q", first.Name)
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary()
	if lib.Len() != 0 || lib.First() != nil {
		t.Fatal("library not empty")
	}

	d, err := cwxml.NewDrawableFromData([]byte(twoGeometryXML))
	if err != nil {
		t.Fatalf("NewDrawableFromData() = %v", err)
	}
	model, err := New(nil).ImportDrawable(d)
	if err != nil {
		t.Fatalf("ImportDrawable() = %v", err)
	}
	lib.Add(model)

	if lib.Len() != 1 {
		t.Errorf("len = %d", lib.Len())
	}
	if got, ok := lib.Get("prop_bench"); !ok || got != model {
		t.Errorf("Get() = %v, %v", got, ok)
	}
	if names := lib.Names(); len(names) != 1 || names[0] != "prop_bench" {
		t.Errorf("names = %v", names)
	}
	if lib.First() != model {
		t.Error("First() mismatch")
	}
}
