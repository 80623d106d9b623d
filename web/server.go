// Package web serves imported models for inspection: JSON summaries,
// glTF/OBJ downloads and a websocket status feed.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/coltfox/Sollumz/importer"
)

var serverLibrary *importer.Library

func StartServer(addr string, lib *importer.Library) error {
	serverLibrary = lib

	r := mux.NewRouter()
	r.HandleFunc("/json/models", HandlerModelList)
	r.HandleFunc("/json/models/{model}", HandlerModel)
	r.HandleFunc("/json/models/{model}/{geometry}", HandlerGeometry)
	r.HandleFunc("/dump/models/{model}/{action}", HandlerDumpModel)
	r.HandleFunc("/ws/status", HandlerStatusWS)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
