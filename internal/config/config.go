// Package config loads the YAML run configuration used by the descent CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/descent/internal/model"
)

// Config captures the knobs of one training run.
type Config struct {
	Kind          string  `yaml:"kind"`
	Iterations    int     `yaml:"iterations"`
	LearningRate  float64 `yaml:"learning_rate"`
	Hidden        []int   `yaml:"hidden"`
	BatchSize     int     `yaml:"batch_size"`
	ReportEvery   int     `yaml:"report_every"`
	Seed          int64   `yaml:"seed"`
	DataDir       string  `yaml:"data_dir"`
	BaseURL       string  `yaml:"base_url"`
	StableSoftmax bool    `yaml:"stable_softmax"`
	Standardize   bool    `yaml:"standardize"`
	Synthetic     bool    `yaml:"synthetic"`
	History       string  `yaml:"history"`
}

// Overrides captures CLI supplied values. Zero values leave the config
// untouched.
type Overrides struct {
	Kind          string
	Iterations    int
	LearningRate  float64
	Hidden        []int
	BatchSize     int
	ReportEvery   int
	Seed          int64
	DataDir       string
	BaseURL       string
	StableSoftmax bool
	Standardize   bool
	Synthetic     bool
	History       string
}

// Default returns the hyperparameters of the reference experiment for kind.
func Default(kind model.Kind) Config {
	cfg := Config{
		Kind:         kind.String(),
		Iterations:   10000,
		LearningRate: 0.01,
		ReportEvery:  kind.DefaultReportEvery(),
		Seed:         1,
		DataDir:      "data",
	}
	switch kind {
	case model.Linear:
		cfg.Iterations = 2000
		cfg.LearningRate = 0.001
	case model.Network:
		cfg.Hidden = []int{128}
		cfg.BatchSize = 512
	}
	return cfg
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML from r. Keys missing from the document take the
// defaults of the configured kind, while keys present keep their value even
// when it is zero. Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(doc, &head); err != nil {
		return nil, err
	}
	if head.Kind == "" {
		return nil, errors.New("kind is required")
	}
	kind, err := model.ParseKind(head.Kind)
	if err != nil {
		return nil, err
	}

	cfg := Default(kind)
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Kind != "" {
		c.Kind = o.Kind
	}
	if o.Iterations > 0 {
		c.Iterations = o.Iterations
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if len(o.Hidden) > 0 {
		c.Hidden = append([]int(nil), o.Hidden...)
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.ReportEvery > 0 {
		c.ReportEvery = o.ReportEvery
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	c.StableSoftmax = c.StableSoftmax || o.StableSoftmax
	c.Standardize = c.Standardize || o.Standardize
	c.Synthetic = c.Synthetic || o.Synthetic
	if o.History != "" {
		c.History = o.History
	}
}

// Model returns the parsed model kind.
func (c *Config) Model() (model.Kind, error) {
	return model.ParseKind(c.Kind)
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	kind, err := c.Model()
	if err != nil {
		return err
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be > 0 (got %d)", c.Iterations)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be >= 0 (got %d)", c.BatchSize)
	}
	if c.ReportEvery < 0 {
		return fmt.Errorf("report_every must be >= 0 (got %d)", c.ReportEvery)
	}
	if kind == model.Network {
		if len(c.Hidden) == 0 {
			return errors.New("network needs at least one hidden width")
		}
		for i, h := range c.Hidden {
			if h <= 0 {
				return fmt.Errorf("hidden[%d] must be > 0 (got %d)", i, h)
			}
		}
	} else if len(c.Hidden) > 0 {
		return fmt.Errorf("%s has no hidden layers", kind)
	}
	if !c.Synthetic && c.DataDir == "" {
		return errors.New("data_dir must be set unless synthetic is true")
	}
	return nil
}
