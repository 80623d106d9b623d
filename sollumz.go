package main

import (
	"flag"
	"log"
	"os"

	"github.com/coltfox/Sollumz/config"
	"github.com/coltfox/Sollumz/importer"
	"github.com/coltfox/Sollumz/mesh"
	"github.com/coltfox/Sollumz/web"
)

func exportModel(model *mesh.Model, gltfOut, objOut string) {
	if gltfOut != "" {
		f, err := os.Create(gltfOut)
		if err != nil {
			log.Fatal(err)
		}
		if err := model.ExportGLTF(f); err != nil {
			f.Close()
			log.Fatal(err)
		}
		f.Close()
		log.Printf("[sollumz] Exported %q to %s", model.Name, gltfOut)
	}
	if objOut != "" {
		f, err := os.Create(objOut)
		if err != nil {
			log.Fatal(err)
		}
		if err := model.ExportObj(f); err != nil {
			f.Close()
			log.Fatal(err)
		}
		f.Close()
		log.Printf("[sollumz] Exported %q to %s", model.Name, objOut)
	}
}

func main() {
	var addr, cfgPath, file, dir, gltfOut, objOut, lod, trace string
	var serve bool
	flag.StringVar(&addr, "i", "", "Address of viewer server")
	flag.StringVar(&trace, "trace", "", "Path for a decode trace log")
	flag.StringVar(&cfgPath, "cfg", "", "Path to yaml config file")
	flag.StringVar(&file, "file", "", "Path to a .ydr.xml, .ydd.xml or .yft.xml export")
	flag.StringVar(&dir, "dir", "", "Directory with CodeWalker xml exports")
	flag.StringVar(&gltfOut, "gltf", "", "Binary gltf output path")
	flag.StringVar(&objOut, "obj", "", "Wavefront obj output path")
	flag.StringVar(&lod, "lod", "", "LOD override: high, med or low")
	flag.BoolVar(&serve, "serve", false, "Start the viewer server")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	if lod != "" {
		cfg.Lod = lod
	}
	if addr != "" {
		cfg.ListenAddr = addr
		serve = true
	}

	imp := importer.New(cfg)
	if trace != "" {
		f, err := os.Create(trace)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		imp.SetTraceLog(f)
	}

	lib := importer.NewLibrary()

	switch {
	case file != "":
		models, err := imp.ImportFile(file)
		if err != nil {
			log.Fatal(err)
		}
		for _, model := range models {
			lib.Add(model)
		}
	case dir != "":
		var err error
		if lib, err = imp.ImportDirectory(dir); err != nil {
			log.Fatal(err)
		}
	default:
		flag.PrintDefaults()
		return
	}

	if lib.Len() == 0 {
		log.Fatal("nothing imported")
	}

	if gltfOut != "" || objOut != "" {
		if lib.Len() > 1 {
			log.Printf("[sollumz] %d models imported, exporting %q", lib.Len(), lib.First().Name)
		}
		exportModel(lib.First(), gltfOut, objOut)
	}

	if serve {
		if err := web.StartServer(cfg.ListenAddr, lib); err != nil {
			log.Fatal(err)
		}
	}
}
