package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds import settings. Zero-value fields fall back to Default()
// values when loaded from file.
type Config struct {
	Lod        string `yaml:"lod"`         // high, med or low
	AutoSmooth bool   `yaml:"auto_smooth"` // smooth shading from custom normals
	ListenAddr string `yaml:"listen_addr"` // viewer server address
}

func Default() *Config {
	return &Config{
		Lod:        "high",
		AutoSmooth: true,
		ListenAddr: ":8000",
	}
}

func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %q", path)
	}
	if cfg.Lod != "high" && cfg.Lod != "med" && cfg.Lod != "low" {
		return nil, errors.Errorf("unknown lod %q in config %q", cfg.Lod, path)
	}
	return cfg, nil
}
