package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is a flat, YAML-persistable bundle of every tunable flag, so a
// known-good parameter set can be saved once and reused across runs instead
// of retyping a dozen flags.
type config struct {
	DoubleImage            bool    `yaml:"double_image"`
	NScalesPerOctave       int     `yaml:"n_scales"`
	Sigma0                 float64 `yaml:"sigma0"`
	KernelTruncationFactor float64 `yaml:"kernel_truncation_factor"`
	BorderDistance         int     `yaml:"border_distance"`
	PeakThreshold          float64 `yaml:"peak_threshold"`
	EdgeThreshold          float64 `yaml:"edge_threshold"`
	MagnificationFactor    float64 `yaml:"magnification_factor"`

	SNNThreshold float64 `yaml:"snn_threshold"`

	RansacMaxNIterations   int     `yaml:"ransac_max_n_iterations"`
	RansacInlierThreshold  float64 `yaml:"ransac_inlier_threshold"`
}

// loadConfig reads a YAML parameter bundle from path.
func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}

// saveConfig writes cfg to path as YAML.
func saveConfig(path string, cfg config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}

// flagValue pairs a flag's parsed value with the config field that would
// supply its default, so applyConfigDefaults can copy one onto the other
// without caring about the underlying type.
type flagValue struct {
	flagPtr   interface{}
	configPtr interface{}
}

// applyConfigDefaults overwrites every flag in flags that was not explicitly
// set on the command line with the corresponding value from the loaded
// config. Flags the caller did pass on the command line take precedence.
func applyConfigDefaults(flags map[string]flagValue) {
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for name, fv := range flags {
		if explicit[name] {
			continue
		}
		switch dst := fv.flagPtr.(type) {
		case *bool:
			*dst = *fv.configPtr.(*bool)
		case *int:
			*dst = *fv.configPtr.(*int)
		case *float64:
			*dst = *fv.configPtr.(*float64)
		}
	}
}
