// Package config loads builder tuning parameters from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/strip.report/internal/spacepoint"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// maxConfigFileSize bounds tuning files for safety.
const maxConfigFileSize = 1 * 1024 * 1024

// TuningConfig is the JSON schema for builder tuning. All fields are
// optional pointers so partial files are safe: omitted fields keep
// their defaults.
type TuningConfig struct {
	// Reference vertex
	VertexX *float64 `json:"vertex_x,omitempty"`
	VertexY *float64 `json:"vertex_y,omitempty"`
	VertexZ *float64 `json:"vertex_z,omitempty"`

	// Matching gates
	DiffDist   *float64 `json:"diff_dist,omitempty"`
	DiffTheta2 *float64 `json:"diff_theta2,omitempty"`
	DiffPhi2   *float64 `json:"diff_phi2,omitempty"`

	// Solver params
	UsePerpProj             *bool    `json:"use_perp_proj,omitempty"`
	StripLengthTolerance    *float64 `json:"strip_length_tolerance,omitempty"`
	StripLengthGapTolerance *float64 `json:"strip_length_gap_tolerance,omitempty"`

	// Clustering params
	ClusterFrontHits *bool `json:"cluster_front_hits,omitempty"`
	ClusterBackHits  *bool `json:"cluster_back_hits,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg TuningConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}

	return &cfg, nil
}

// GetDiffDist returns the distance gate or its default.
func (c *TuningConfig) GetDiffDist() float64 {
	if c.DiffDist != nil {
		return *c.DiffDist
	}
	return spacepoint.DefaultDiffDist
}

// GetDiffTheta2 returns the squared polar-angle gate or its default.
func (c *TuningConfig) GetDiffTheta2() float64 {
	if c.DiffTheta2 != nil {
		return *c.DiffTheta2
	}
	return spacepoint.DefaultDiffTheta2
}

// GetDiffPhi2 returns the squared azimuth gate or its default.
func (c *TuningConfig) GetDiffPhi2() float64 {
	if c.DiffPhi2 != nil {
		return *c.DiffPhi2
	}
	return spacepoint.DefaultDiffPhi2
}

// GetStripLengthTolerance returns the acceptance tolerance or its default.
func (c *TuningConfig) GetStripLengthTolerance() float64 {
	if c.StripLengthTolerance != nil {
		return *c.StripLengthTolerance
	}
	return spacepoint.DefaultStripLengthTolerance
}

// GetStripLengthGapTolerance returns the recovery tolerance or its default.
func (c *TuningConfig) GetStripLengthGapTolerance() float64 {
	if c.StripLengthGapTolerance != nil {
		return *c.StripLengthGapTolerance
	}
	return spacepoint.DefaultStripLengthGapTolerance
}

// GetUsePerpProj reports whether the perpendicular-projection mode is
// selected. Defaults to false (vertex-based solve).
func (c *TuningConfig) GetUsePerpProj() bool {
	if c.UsePerpProj != nil {
		return *c.UsePerpProj
	}
	return false
}

// GetClusterFrontHits reports whether front-side clustering is enabled.
// Defaults to true.
func (c *TuningConfig) GetClusterFrontHits() bool {
	if c.ClusterFrontHits != nil {
		return *c.ClusterFrontHits
	}
	return true
}

// GetClusterBackHits reports whether back-side clustering is enabled.
// Defaults to true.
func (c *TuningConfig) GetClusterBackHits() bool {
	if c.ClusterBackHits != nil {
		return *c.ClusterBackHits
	}
	return true
}

// GetVertex returns the reference vertex, defaulting to the origin.
func (c *TuningConfig) GetVertex() r3.Vec {
	var v r3.Vec
	if c.VertexX != nil {
		v.X = *c.VertexX
	}
	if c.VertexY != nil {
		v.Y = *c.VertexY
	}
	if c.VertexZ != nil {
		v.Z = *c.VertexZ
	}
	return v
}

// ToBuilderConfig maps the tuning file onto the builder's parameter set.
func (c *TuningConfig) ToBuilderConfig() *spacepoint.Config {
	return &spacepoint.Config{
		Vertex:                  c.GetVertex(),
		DiffDist:                c.GetDiffDist(),
		DiffTheta2:              c.GetDiffTheta2(),
		DiffPhi2:                c.GetDiffPhi2(),
		UsePerpProj:             c.GetUsePerpProj(),
		StripLengthTolerance:    c.GetStripLengthTolerance(),
		StripLengthGapTolerance: c.GetStripLengthGapTolerance(),
		ClusterFrontHits:        c.GetClusterFrontHits(),
		ClusterBackHits:         c.GetClusterBackHits(),
	}
}
