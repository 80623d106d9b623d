// Package importer drives the import pipeline: CodeWalker XML in,
// mesh models out. A geometry with a damaged buffer is reported and
// skipped, the rest of the batch continues.
package importer

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/coltfox/Sollumz/config"
	"github.com/coltfox/Sollumz/cwxml"
	"github.com/coltfox/Sollumz/mesh"
	"github.com/coltfox/Sollumz/status"
	"github.com/coltfox/Sollumz/utils"
	"github.com/coltfox/Sollumz/vertex"
)

type Importer struct {
	cfg     *config.Config
	namegen utils.RandomNameGenerator
	trace   *utils.Logger
}

func New(cfg *config.Config) *Importer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Importer{cfg: cfg}
}

// SetTraceLog enables a per-geometry decode trace, nil disables it.
func (imp *Importer) SetTraceLog(w io.Writer) {
	if w == nil {
		imp.trace = nil
		return
	}
	imp.trace = &utils.Logger{Writer: w}
}

// ImportDrawable converts one drawable at the configured LOD. Unnamed
// drawables get a generated name so viewer routes stay addressable.
func (imp *Importer) ImportDrawable(d *cwxml.Drawable) (*mesh.Model, error) {
	name := d.Name
	if name == "" {
		name = imp.namegen.RandomName()
	}

	model := &mesh.Model{
		Name:      name,
		Materials: d.ShaderNames(),
	}
	builder := &mesh.Builder{
		BoneNames:  d.BoneNames(),
		Materials:  model.Materials,
		AutoSmooth: imp.cfg.AutoSmooth,
	}

	models := d.Models(imp.cfg.Lod)
	total := 0
	for i := range models {
		total += len(models[i].Geometries)
	}

	done := 0
	for iModel := range models {
		for iGeometry := range models[iModel].Geometries {
			geometry := &models[iModel].Geometries[iGeometry]
			meshName := fmt.Sprintf("%s.model%d.geom%d", name, iModel, iGeometry)

			builder.BoneIDs = geometry.BoneIDs
			m, err := imp.importGeometry(builder, meshName, geometry)
			if err != nil {
				status.Error("Skipped %s: %v", meshName, err)
				log.Printf("[importer] Skipping geometry %q: %v", meshName, err)
				continue
			}

			model.Meshes = append(model.Meshes, m)
			done++
			status.Progress(float32(done)/float32(total), "Imported %s", meshName)
		}
	}

	if total > 0 && len(model.Meshes) == 0 {
		return nil, errors.Errorf("no usable geometry in drawable %q", name)
	}
	return model, nil
}

func (imp *Importer) importGeometry(builder *mesh.Builder, name string, g *cwxml.Geometry) (*mesh.Mesh, error) {
	imp.trace.Printf("%s: layout %v, %d vertices, %d indices",
		name, g.VertexBuffer.Semantics, len(g.VertexBuffer.Records), len(g.IndexBuffer.Indices))

	components, err := vertex.Decompose(g.VertexBuffer.Layout, g.VertexBuffer.Records)
	if err != nil {
		return nil, err
	}
	faces, err := vertex.Triangles(g.IndexBuffer.Indices)
	if err != nil {
		return nil, err
	}

	imp.trace.Printf("%s: %d faces, %d uv channels, %d colour channels, %d weight groups",
		name, len(faces), len(components.UVOrder), len(components.ColourOrder), len(components.GroupOrder))

	return builder.Build(name, components, faces, g.ShaderIndex.Value), nil
}

func (imp *Importer) ImportFragment(f *cwxml.Fragment) (*mesh.Model, error) {
	return imp.ImportDrawable(f.Drawable)
}

// ImportDictionary converts every drawable of a dictionary. Drawables
// failing entirely are reported and skipped.
func (imp *Importer) ImportDictionary(dict *cwxml.DrawableDictionary) []*mesh.Model {
	models := make([]*mesh.Model, 0, len(dict.Drawables))
	for i := range dict.Drawables {
		model, err := imp.ImportDrawable(&dict.Drawables[i])
		if err != nil {
			status.Error("Skipped dictionary entry %d: %v", i, err)
			log.Printf("[importer] Skipping dictionary entry %d: %v", i, err)
			continue
		}
		models = append(models, model)
	}
	return models
}

// ImportFile dispatches on the CodeWalker export suffix. A dictionary
// yields several models, the other formats one.
func (imp *Importer) ImportFile(path string) ([]*mesh.Model, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}

	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".ydr.xml"):
		d, err := cwxml.NewDrawableFromData(data)
		if err != nil {
			return nil, err
		}
		model, err := imp.ImportDrawable(d)
		if err != nil {
			return nil, err
		}
		return []*mesh.Model{model}, nil
	case strings.HasSuffix(base, ".yft.xml"):
		f, err := cwxml.NewFragmentFromData(data)
		if err != nil {
			return nil, err
		}
		model, err := imp.ImportFragment(f)
		if err != nil {
			return nil, err
		}
		return []*mesh.Model{model}, nil
	case strings.HasSuffix(base, ".ydd.xml"):
		dict, err := cwxml.NewDictionaryFromData(data)
		if err != nil {
			return nil, err
		}
		return imp.ImportDictionary(dict), nil
	}
	return nil, errors.Errorf("unsupported file %q", path)
}

// ImportDirectory imports every recognized CodeWalker export under dir.
// Files that fail are reported and skipped.
func (imp *Importer) ImportDirectory(dir string) (*Library, error) {
	lib := NewLibrary()

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isCodeWalkerExport(path) {
			return nil
		}

		models, err := imp.ImportFile(path)
		if err != nil {
			status.Error("Skipped %s: %v", filepath.Base(path), err)
			log.Printf("[importer] Skipping file %q: %v", path, err)
			return nil
		}
		for _, model := range models {
			lib.Add(model)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %q", dir)
	}

	status.Info("Imported %d models from %s", lib.Len(), dir)
	return lib, nil
}

func isCodeWalkerExport(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".ydr.xml") ||
		strings.HasSuffix(base, ".yft.xml") ||
		strings.HasSuffix(base, ".ydd.xml")
}
