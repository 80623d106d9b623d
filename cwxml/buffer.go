package cwxml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/coltfox/Sollumz/vertex"
)

// VertexBuffer holds the declared layout of one geometry's vertex data
// and the decoded records. The <Layout> child element names define the
// attribute order of each line of the <Data> grid.
type VertexBuffer struct {
	Flags     uint32
	Semantics []string // layout element names, declaration order
	Layout    vertex.Layout
	Records   []vertex.Record
}

// IndexBuffer is the flat face index stream of one geometry.
type IndexBuffer struct {
	Indices []uint32
}

func (vb *VertexBuffer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var data string

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Flags":
				var flags ValueUint
				if err := d.DecodeElement(&flags, &el); err != nil {
					return err
				}
				vb.Flags = flags.Value
			case "Layout":
				if err := vb.parseLayout(d); err != nil {
					return err
				}
			case "Data", "Data2":
				// some exporters emit the grid twice, the copies are equal
				var raw string
				if err := d.DecodeElement(&raw, &el); err != nil {
					return err
				}
				if data == "" {
					data = raw
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return vb.parseData(data)
			}
		}
	}
}

func (vb *VertexBuffer) parseLayout(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			vb.Semantics = append(vb.Semantics, el.Name.Local)
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			vb.buildLayout()
			return nil
		}
	}
}

func (vb *VertexBuffer) buildLayout() {
	for _, semantic := range vb.Semantics {
		name := strings.ToLower(semantic)
		switch {
		case name == "normal":
			vb.Layout.HasNormal = true
		case name == "blendweights":
			vb.Layout.HasBlendData = true
		case strings.Contains(name, "texcoord"):
			vb.Layout.UVChannels = append(vb.Layout.UVChannels, name)
		case strings.Contains(name, "colour") || strings.Contains(name, "color"):
			vb.Layout.ColourChannels = append(vb.Layout.ColourChannels, name)
		}
	}
}

// tokensFor returns how many grid tokens one vertex consumes for a
// layout semantic.
func tokensFor(semantic string) (int, error) {
	name := strings.ToLower(semantic)
	switch {
	case name == "position" || name == "normal":
		return 3, nil
	case name == "blendweights" || name == "blendindices":
		return 4, nil
	case name == "tangent":
		return 4, nil
	case strings.Contains(name, "texcoord"):
		return 2, nil
	case strings.Contains(name, "colour") || strings.Contains(name, "color"):
		return 4, nil
	}
	return 0, errors.Errorf("unsupported layout semantic %q", semantic)
}

func (vb *VertexBuffer) parseData(data string) error {
	tokensPerVertex := 0
	for _, semantic := range vb.Semantics {
		n, err := tokensFor(semantic)
		if err != nil {
			return err
		}
		tokensPerVertex += n
	}

	for lineIndex, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != tokensPerVertex {
			return errors.Wrapf(vertex.ErrMalformedBuffer,
				"vertex line %d has %d values, layout needs %d",
				lineIndex, len(fields), tokensPerVertex)
		}

		record, err := vb.parseRecord(fields)
		if err != nil {
			return errors.Wrapf(err, "vertex line %d", lineIndex)
		}
		vb.Records = append(vb.Records, record)
	}

	return nil
}

func (vb *VertexBuffer) parseRecord(fields []string) (vertex.Record, error) {
	var record vertex.Record

	cursor := 0
	floats := func(n int) ([4]float32, error) {
		var out [4]float32
		for i := 0; i < n; i++ {
			v, err := strconv.ParseFloat(fields[cursor], 32)
			if err != nil {
				return out, errors.Wrapf(vertex.ErrMalformedBuffer, "bad float %q", fields[cursor])
			}
			out[i] = float32(v)
			cursor++
		}
		return out, nil
	}
	bytes4 := func() ([4]uint8, error) {
		var out [4]uint8
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseUint(fields[cursor], 10, 8)
			if err != nil {
				return out, errors.Wrapf(vertex.ErrMalformedBuffer, "bad byte %q", fields[cursor])
			}
			out[i] = uint8(v)
			cursor++
		}
		return out, nil
	}

	for _, semantic := range vb.Semantics {
		name := strings.ToLower(semantic)
		switch {
		case name == "position":
			v, err := floats(3)
			if err != nil {
				return record, err
			}
			record.Position = vertex.Position{v[0], v[1], v[2]}
		case name == "normal":
			v, err := floats(3)
			if err != nil {
				return record, err
			}
			record.Normal = vertex.Normal{v[0], v[1], v[2]}
		case name == "blendweights":
			v, err := bytes4()
			if err != nil {
				return record, err
			}
			record.BlendWeights = v[:]
		case name == "blendindices":
			v, err := bytes4()
			if err != nil {
				return record, err
			}
			record.BlendIndices = v[:]
		case name == "tangent":
			// present in many layouts, not consumed by the importer
			if _, err := floats(4); err != nil {
				return record, err
			}
		case strings.Contains(name, "texcoord"):
			v, err := floats(2)
			if err != nil {
				return record, err
			}
			record.UVs = append(record.UVs, vertex.UV{v[0], v[1]})
		case strings.Contains(name, "colour") || strings.Contains(name, "color"):
			v, err := bytes4()
			if err != nil {
				return record, err
			}
			record.Colours = append(record.Colours, vertex.Colour{R: v[0], G: v[1], B: v[2], A: v[3]})
		}
	}

	return record, nil
}

func (ib *IndexBuffer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "Data" {
				var list UintList
				if err := list.UnmarshalXML(d, el); err != nil {
					return err
				}
				ib.Indices = list
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}
