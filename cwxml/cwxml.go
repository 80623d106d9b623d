// Package cwxml deserializes CodeWalker XML exports of RAGE assets
// (.ydr.xml drawables, .ydd.xml dictionaries, .yft.xml fragments) into
// vertex buffers and skeleton/shader metadata.
package cwxml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CodeWalker stores scalars as value attributes: <LodDistHigh value="120" />

type ValueFloat struct {
	Value float32 `xml:"value,attr"`
}

type ValueInt struct {
	Value int `xml:"value,attr"`
}

type ValueUint struct {
	Value uint32 `xml:"value,attr"`
}

type Vector3 struct {
	X float32 `xml:"x,attr"`
	Y float32 `xml:"y,attr"`
	Z float32 `xml:"z,attr"`
}

type Vector4 struct {
	X float32 `xml:"x,attr"`
	Y float32 `xml:"y,attr"`
	Z float32 `xml:"z,attr"`
	W float32 `xml:"w,attr"`
}

// UintList parses comma or whitespace separated integer chardata,
// used for <BoneIDs>0, 1, 2</BoneIDs>.
type UintList []uint32

func (l *UintList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	list := make(UintList, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "failed to parse %q element of %q list", field, start.Name.Local)
		}
		list = append(list, uint32(v))
	}

	*l = list
	return nil
}
