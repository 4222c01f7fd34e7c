package sarif

import (
	gce "github.com/demaconsulting/SarifMark/pkg/encoding"
)

// Config holds report defaults read from the "sarif" section of a SarifMark
// configuration file. Explicit CLI flags take precedence.
type Config struct {
	ReportDepth int    `yaml:"reportDepth" json:"reportDepth"`
	Heading     string `yaml:"heading,omitempty" json:"heading,omitempty"`
	Enforce     bool   `yaml:"enforce" json:"enforce"`
}

func DefaultConfig() Config {
	return Config{ReportDepth: MinDepth}
}

func NewConfigDecoder() *gce.MapDecoder[Config] {
	return gce.NewMapDecoder[Config](ConfigType, ConfigFieldName)
}
