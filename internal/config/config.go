// internal/config/config.go

// Package config holds the typed settings for a simulation run. Every
// stage receives its configuration explicitly; there is no package-level
// mutable state and no implicit seed.
package config

import (
	"fmt"
	"time"
)

// Inputs are the three positional arguments shared by every family.
type Inputs struct {
	GenomeTable    string `yaml:"genome-table"`
	AbundanceTable string `yaml:"abund-table"`
	OutputDir      string `yaml:"output-dir"`
}

// Run carries the settings common to all simulator families.
type Run struct {
	Threads    int           `mapstructure:"threads" yaml:"threads"`
	TempDir    string        `mapstructure:"tmp-dir" yaml:"tmp-dir"`
	Gzip       bool          `mapstructure:"gzip" yaml:"gzip"`
	Debug      bool          `mapstructure:"debug" yaml:"debug"`
	Quiet      bool          `mapstructure:"quiet" yaml:"quiet"`
	KeepTemp   bool          `mapstructure:"keep-temp" yaml:"keep-temp"`
	StrictTaxa bool          `mapstructure:"strict-taxa" yaml:"strict-taxa"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

func DefaultRun() Run {
	return Run{
		Threads: 1,
		TempDir: ".sim_reads",
	}
}

func (c Run) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("threads must be >= 1 (got %d)", c.Threads)
	}
	if c.TempDir == "" {
		return fmt.Errorf("tmp-dir must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", c.Timeout)
	}
	return nil
}

// Illumina configures art_illumina runs. Params is the passthrough escape
// hatch for flags without a typed field; it is filled from the repeatable
// --art-extra flag only, because config-file keys are case-folded while
// simulator flags are case-sensitive. The snapshot still records it.
type Illumina struct {
	Run      `mapstructure:",squash" yaml:",inline"`
	SeqDepth float64           `mapstructure:"seq-depth" yaml:"seq-depth"`
	Paired   bool              `mapstructure:"art-paired" yaml:"art-paired"`
	ReadLen  int               `mapstructure:"art-len" yaml:"art-len"`
	MFLen    float64           `mapstructure:"art-mflen" yaml:"art-mflen"`
	SDev     float64           `mapstructure:"art-sdev" yaml:"art-sdev"`
	SeqSys   string            `mapstructure:"art-seqsys" yaml:"art-seqsys"`
	Seed     int64             `mapstructure:"seed" yaml:"seed"`
	Params   map[string]string `mapstructure:"-" yaml:"art-params,omitempty"`
}

func DefaultIllumina() Illumina {
	return Illumina{
		Run:      DefaultRun(),
		SeqDepth: 1e5,
		ReadLen:  150,
		MFLen:    200,
		SDev:     10,
		SeqSys:   "HS25",
		Seed:     -1,
	}
}

// Mates reports the read count per fragment: 2 when paired mode is on
// explicitly or implied by a positive mean fragment length.
func (c Illumina) Mates() int {
	if c.Paired || c.MFLen > 0 {
		return 2
	}
	return 1
}

// SeedSet reports whether a seed should be forwarded to the simulator.
// Negative means unset.
func (c Illumina) SeedSet() bool { return c.Seed >= 0 }

func (c Illumina) Validate() error {
	if err := c.Run.Validate(); err != nil {
		return err
	}
	if c.SeqDepth <= 0 {
		return fmt.Errorf("seq-depth must be > 0 (got %g)", c.SeqDepth)
	}
	if c.ReadLen <= 0 {
		return fmt.Errorf("art-len must be > 0 (got %d)", c.ReadLen)
	}
	if c.SDev < 0 {
		return fmt.Errorf("art-sdev must be >= 0 (got %g)", c.SDev)
	}
	if c.SeqSys == "" {
		return fmt.Errorf("art-seqsys must not be empty")
	}
	return ValidateExtras(c.Params)
}

// PacBio configures simlord runs.
type PacBio struct {
	Run      `mapstructure:",squash" yaml:",inline"`
	SeqDepth float64           `mapstructure:"seq-depth" yaml:"seq-depth"`
	Params   map[string]string `mapstructure:"-" yaml:"sl-params,omitempty"`
}

func DefaultPacBio() PacBio {
	return PacBio{Run: DefaultRun(), SeqDepth: 1e5}
}

func (c PacBio) Validate() error {
	if err := c.Run.Validate(); err != nil {
		return err
	}
	if c.SeqDepth <= 0 {
		return fmt.Errorf("seq-depth must be > 0 (got %g)", c.SeqDepth)
	}
	return ValidateExtras(c.Params)
}

// Nanopore configures nanosim-h runs.
type Nanopore struct {
	Run      `mapstructure:",squash" yaml:",inline"`
	SeqDepth float64           `mapstructure:"seq-depth" yaml:"seq-depth"`
	Circular bool              `mapstructure:"circular" yaml:"circular"`
	Params   map[string]string `mapstructure:"-" yaml:"ns-params,omitempty"`
}

func DefaultNanopore() Nanopore {
	return Nanopore{Run: DefaultRun(), SeqDepth: 1e5, Circular: true}
}

func (c Nanopore) Validate() error {
	if err := c.Run.Validate(); err != nil {
		return err
	}
	if c.SeqDepth <= 0 {
		return fmt.Errorf("seq-depth must be > 0 (got %g)", c.SeqDepth)
	}
	return ValidateExtras(c.Params)
}
