package cwxml

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

type Bone struct {
	Name         string   `xml:"Name"`
	Tag          ValueInt `xml:"Tag"`
	Index        ValueInt `xml:"Index"`
	ParentIndex  ValueInt `xml:"ParentIndex"`
	SiblingIndex ValueInt `xml:"SiblingIndex"`
	Flags        string   `xml:"Flags"`
	Translation  Vector3  `xml:"Translation"`
	Rotation     Vector4  `xml:"Rotation"`
	Scale        Vector3  `xml:"Scale"`
}

type Skeleton struct {
	Bones []Bone `xml:"Bones>Item"`
}

type Shader struct {
	Name         string   `xml:"Name"`
	FileName     string   `xml:"FileName"`
	RenderBucket ValueInt `xml:"RenderBucket"`
}

type ShaderGroup struct {
	Shaders []Shader `xml:"Shaders>Item"`
}

type Geometry struct {
	ShaderIndex    ValueInt     `xml:"ShaderIndex"`
	BoundingBoxMin Vector3      `xml:"BoundingBoxMin"`
	BoundingBoxMax Vector3      `xml:"BoundingBoxMax"`
	BoneIDs        UintList     `xml:"BoneIDs"`
	VertexBuffer   VertexBuffer `xml:"VertexBuffer"`
	IndexBuffer    IndexBuffer  `xml:"IndexBuffer"`
}

type DrawableModel struct {
	RenderMask ValueInt   `xml:"RenderMask"`
	Flags      ValueInt   `xml:"Flags"`
	HasSkin    ValueInt   `xml:"HasSkin"`
	BoneIndex  ValueInt   `xml:"BoneIndex"`
	Geometries []Geometry `xml:"Geometries>Item"`
}

type Drawable struct {
	XMLName xml.Name

	Name                 string     `xml:"Name"`
	BoundingSphereCenter Vector3    `xml:"BoundingSphereCenter"`
	BoundingSphereRadius ValueFloat `xml:"BoundingSphereRadius"`
	BoundingBoxMin       Vector3    `xml:"BoundingBoxMin"`
	BoundingBoxMax       Vector3    `xml:"BoundingBoxMax"`
	LodDistHigh          ValueFloat `xml:"LodDistHigh"`
	LodDistMed           ValueFloat `xml:"LodDistMed"`
	LodDistLow           ValueFloat `xml:"LodDistLow"`

	ShaderGroup ShaderGroup `xml:"ShaderGroup"`
	Skeleton    Skeleton    `xml:"Skeleton"`

	ModelsHigh []DrawableModel `xml:"DrawableModelsHigh>Item"`
	ModelsMed  []DrawableModel `xml:"DrawableModelsMedium>Item"`
	ModelsLow  []DrawableModel `xml:"DrawableModelsLow>Item"`
}

type DrawableDictionary struct {
	Drawables []Drawable `xml:"Item"`
}

// Models returns the model list for a LOD name, falling back to the
// highest populated level for assets that skip levels.
func (d *Drawable) Models(lod string) []DrawableModel {
	switch lod {
	case "med", "medium":
		if len(d.ModelsMed) > 0 {
			return d.ModelsMed
		}
	case "low":
		if len(d.ModelsLow) > 0 {
			return d.ModelsLow
		}
	}

	if len(d.ModelsHigh) > 0 {
		return d.ModelsHigh
	}
	if len(d.ModelsMed) > 0 {
		return d.ModelsMed
	}
	return d.ModelsLow
}

// BoneNames returns skeleton bone names in index order.
func (d *Drawable) BoneNames() []string {
	if len(d.Skeleton.Bones) == 0 {
		return nil
	}
	names := make([]string, len(d.Skeleton.Bones))
	for i, bone := range d.Skeleton.Bones {
		names[i] = bone.Name
	}
	return names
}

// ShaderNames returns shader names in shader index order.
func (d *Drawable) ShaderNames() []string {
	names := make([]string, len(d.ShaderGroup.Shaders))
	for i, shader := range d.ShaderGroup.Shaders {
		names[i] = shader.Name
	}
	return names
}

func NewDrawableFromData(b []byte) (*Drawable, error) {
	d := &Drawable{}
	if err := xml.Unmarshal(b, d); err != nil {
		return nil, errors.Wrapf(err, "failed to parse drawable xml")
	}
	return d, nil
}

func NewDictionaryFromData(b []byte) (*DrawableDictionary, error) {
	dict := &DrawableDictionary{}
	if err := xml.Unmarshal(b, dict); err != nil {
		return nil, errors.Wrapf(err, "failed to parse drawable dictionary xml")
	}
	return dict, nil
}
