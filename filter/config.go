package filter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the build configuration read by deflog-gen, usually from
// deflog.yaml in the module root.
type Config struct {
	// Crate scoping the filter. Default: last element of the module path.
	Crate string `yaml:"crate"`

	// Filter specification. Nil when absent, which is not the same as empty.
	Spec *string `yaml:"filter"`

	// Prefix of the generated constants. Default: log
	Prefix string `yaml:"prefix"`

	// Name of the generated file in every package. Default: deflog_gen.go
	Output string `yaml:"output"`
}

func (c *Config) setDefaults() {
	if c.Prefix == "" {
		c.Prefix = "log"
	}

	if c.Output == "" {
		c.Output = "deflog_gen.go"
	}
}

// LoadConfig reads a YAML build configuration. Environment variables are not
// applied; see ApplyEnv.
func LoadConfig(path string) (cfg Config, err error) {
	b, err := os.ReadFile(path)

	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err = yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.setDefaults()
	return
}

// ApplyEnv lets <prefix>_CRATE and <prefix>_LOG override the file.
func (c *Config) ApplyEnv(prefix string) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	if crate := os.Getenv(prefix + "_CRATE"); crate != "" {
		c.Crate = crate
	}

	if spec, ok := os.LookupEnv(prefix + "_LOG"); ok {
		c.Spec = &spec
	}

	c.setDefaults()
}

// Filter builds the directive table described by the configuration.
func (c Config) Filter() (*EnvFilter, error) {
	if c.Crate == "" {
		return nil, ErrMissingCrate
	}

	if c.Spec == nil {
		return New(c.Crate), nil
	}

	return Parse(*c.Spec, c.Crate)
}
