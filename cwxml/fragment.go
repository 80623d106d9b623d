package cwxml

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// Fragment is a breakable prop (.yft): a drawable plus physics groups.
// Only the render side is imported, physics LODs are skipped.
type Fragment struct {
	XMLName xml.Name

	Name                 string     `xml:"Name"`
	BoundingSphereCenter Vector3    `xml:"BoundingSphereCenter"`
	BoundingSphereRadius ValueFloat `xml:"BoundingSphereRadius"`

	Drawable *Drawable `xml:"Drawable"`
}

func NewFragmentFromData(b []byte) (*Fragment, error) {
	f := &Fragment{}
	if err := xml.Unmarshal(b, f); err != nil {
		return nil, errors.Wrapf(err, "failed to parse fragment xml")
	}
	if f.Drawable == nil {
		return nil, errors.Errorf("fragment %q has no drawable", f.Name)
	}
	if f.Drawable.Name == "" {
		f.Drawable.Name = f.Name
	}
	return f, nil
}
