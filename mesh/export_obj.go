package mesh

import (
	"fmt"
	"io"
)

// ExportObj writes the model as Wavefront OBJ. Weight groups have no OBJ
// representation and are skipped.
func (m *Model) ExportObj(_w io.Writer) error {
	w := func(format string, args ...interface{}) {
		_w.Write(([]byte)(fmt.Sprintf(format+"\n", args...)))
	}

	for _, mesh := range m.Meshes {
		for _, p := range mesh.Positions {
			w("v %f %f %f", p[0], p[1], p[2])
		}
		if len(mesh.UVLayers) > 0 {
			for _, uv := range mesh.UVLayers[0].Coords {
				w("vt %f %f", uv[0], -uv[1])
			}
		}
		for _, n := range mesh.Normals {
			w("vn %f %f %f", n[0], n[1], n[2])
		}
	}

	iV := uint32(1)
	iT := uint32(1)
	iN := uint32(1)

	for _, mesh := range m.Meshes {
		w("o %s", mesh.Name)
		if mesh.Material != "" {
			w("usemtl %s", mesh.Material)
		}

		haveUV := len(mesh.UVLayers) > 0
		haveNorm := len(mesh.Normals) > 0

		for _, face := range mesh.Faces {
			if haveNorm {
				if haveUV {
					w("f %v/%v/%v %v/%v/%v %v/%v/%v",
						iV+face[0], iT+face[0], iN+face[0],
						iV+face[1], iT+face[1], iN+face[1],
						iV+face[2], iT+face[2], iN+face[2])
				} else {
					w("f %v//%v %v//%v %v//%v",
						iV+face[0], iN+face[0],
						iV+face[1], iN+face[1],
						iV+face[2], iN+face[2])
				}
			} else {
				if haveUV {
					w("f %v/%v %v/%v %v/%v",
						iV+face[0], iT+face[0],
						iV+face[1], iT+face[1],
						iV+face[2], iT+face[2])
				} else {
					w("f %v %v %v", iV+face[0], iV+face[1], iV+face[2])
				}
			}
		}

		iV += uint32(len(mesh.Positions))
		if haveUV {
			iT += uint32(len(mesh.UVLayers[0].Coords))
		}
		if haveNorm {
			iN += uint32(len(mesh.Normals))
		}
	}

	return nil
}
