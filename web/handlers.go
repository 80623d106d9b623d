package web

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/coltfox/Sollumz/mesh"
	"github.com/coltfox/Sollumz/status"
	"github.com/coltfox/Sollumz/utils"
	"github.com/coltfox/Sollumz/webutils"
)

type meshSummary struct {
	Name         string
	Material     string
	Vertices     int
	Faces        int
	HasNormals   bool
	UVLayers     []string
	ColourLayers []string
	Groups       []string
}

type modelSummary struct {
	Name      string
	Materials []string
	Meshes    []meshSummary
}

func summarize(model *mesh.Model) modelSummary {
	summary := modelSummary{
		Name:      model.Name,
		Materials: model.Materials,
		Meshes:    make([]meshSummary, 0, len(model.Meshes)),
	}
	for _, m := range model.Meshes {
		ms := meshSummary{
			Name:       m.Name,
			Material:   m.Material,
			Vertices:   len(m.Positions),
			Faces:      len(m.Faces),
			HasNormals: len(m.Normals) != 0,
		}
		for _, layer := range m.UVLayers {
			ms.UVLayers = append(ms.UVLayers, layer.Name)
		}
		for _, layer := range m.ColourLayers {
			ms.ColourLayers = append(ms.ColourLayers, layer.Name)
		}
		for _, group := range m.Groups {
			ms.Groups = append(ms.Groups, group.Name)
		}
		summary.Meshes = append(summary.Meshes, ms)
	}
	return summary
}

func HandlerModelList(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, serverLibrary.Names())
}

func HandlerModel(w http.ResponseWriter, r *http.Request) {
	model, ok := serverLibrary.Get(mux.Vars(r)["model"])
	if !ok {
		webutils.WriteNotFound(w, "model")
		return
	}
	webutils.WriteJson(w, summarize(model))
}

func HandlerGeometry(w http.ResponseWriter, r *http.Request) {
	model, ok := serverLibrary.Get(mux.Vars(r)["model"])
	if !ok {
		webutils.WriteNotFound(w, "model")
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["geometry"])
	if err != nil || index < 0 || index >= len(model.Meshes) {
		webutils.WriteNotFound(w, "geometry")
		return
	}
	webutils.WriteJson(w, summarize(model).Meshes[index])
}

func HandlerDumpModel(w http.ResponseWriter, r *http.Request) {
	model, ok := serverLibrary.Get(mux.Vars(r)["model"])
	if !ok {
		webutils.WriteNotFound(w, "model")
		return
	}

	switch action := mux.Vars(r)["action"]; action {
	case "gltf":
		var buf bytes.Buffer
		if err := model.ExportGLTF(&buf); err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "gltf export of %q failed", model.Name))
			return
		}
		webutils.WriteFile(w, &buf, model.Name+".glb")
	case "obj":
		var buf bytes.Buffer
		if err := model.ExportObj(&buf); err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "obj export of %q failed", model.Name))
			return
		}
		webutils.WriteFile(w, &buf, model.Name+".obj")
	case "spew":
		webutils.WriteFile(w, strings.NewReader(utils.SDump(model)), model.Name+".txt")
	default:
		webutils.WriteError(w, errors.Errorf("unknown action %q", action))
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "websocket upgrade failed"))
		return
	}
	status.NewClient(conn)
}
