// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

const (
	// DefaultCredentialEnv is the environment variable holding the sample licence key.
	DefaultCredentialEnv = "APDFL_KEY"
	// DefaultBuildTool is the build tool used for the clean and package steps.
	DefaultBuildTool = "mvn"
	// DefaultVCSTool is the tool used to remove untracked files.
	DefaultVCSTool = "git"
	// DefaultJava is the JVM launcher.
	DefaultJava = "java"
	// DefaultJarSuffix is appended to the sample short name to build the archive file name.
	DefaultJarSuffix = "-1.0-SNAPSHOT-jar-with-dependencies.jar"
)

var (
	// ErrInvalidConfig is returned when the configuration cannot be decoded or fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnsupportedFormat is returned for configuration files that are neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported configuration format, use .yaml, .yml or .hcl")
)

// FileNames are the configuration files looked for in the root directory, in order.
var FileNames = []string{"samplerunner.yaml", "samplerunner.yml", "samplerunner.hcl"}

// DefaultSamples is the built-in sample list.
var DefaultSamples = []string{
	"ConvertToOffice/",
	"FlattenTransparency/",
	"ListWords/",
	"MergePDF/",
	"PDFAConverter/",
	"PDFOptimize",
	"RasterizePage/",
	"Redactions/",
	"RegexExtractText/",
	"RegexTextSearch/",
	"SplitPDF/",
	"TextExtract",
	"Watermark/",
}

// Config is the samplerunner configuration.
type Config struct {
	// Root is the directory that sample paths are relative to.
	Root string `yaml:"root" hcl:"root,optional"`
	// CredentialEnv names the environment variable holding the credential.
	CredentialEnv string `yaml:"credential_env" hcl:"credential_env,optional"`
	BuildTool     string `yaml:"build_tool" hcl:"build_tool,optional"`
	// CleanArgs are the build tool arguments for the clean step.
	CleanArgs []string `yaml:"clean_args" hcl:"clean_args,optional"`
	// PackageArgs are the build tool arguments for the build step.
	PackageArgs  []string `yaml:"package_args" hcl:"package_args,optional"`
	VCSTool      string   `yaml:"vcs_tool" hcl:"vcs_tool,optional"`
	VCSCleanArgs []string `yaml:"vcs_clean_args" hcl:"vcs_clean_args,optional"`
	Java         string   `yaml:"java" hcl:"java,optional"`
	JarSuffix    string   `yaml:"jar_suffix" hcl:"jar_suffix,optional"`
	// Samples is the ordered list of sample directories.
	Samples []string `yaml:"samples" hcl:"samples,optional"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	c := &Config{}
	c.applyDefaults()

	return c
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}

	if c.CredentialEnv == "" {
		c.CredentialEnv = DefaultCredentialEnv
	}

	if c.BuildTool == "" {
		c.BuildTool = DefaultBuildTool
	}

	if len(c.CleanArgs) == 0 {
		c.CleanArgs = []string{"clean"}
	}

	if len(c.PackageArgs) == 0 {
		c.PackageArgs = []string{"package"}
	}

	if c.VCSTool == "" {
		c.VCSTool = DefaultVCSTool
	}

	if len(c.VCSCleanArgs) == 0 {
		c.VCSCleanArgs = []string{"clean", "-fdx"}
	}

	if c.Java == "" {
		c.Java = DefaultJava
	}

	if c.JarSuffix == "" {
		c.JarSuffix = DefaultJarSuffix
	}

	if len(c.Samples) == 0 {
		c.Samples = slices.Clone(DefaultSamples)
	}
}

// Parse decodes src, choosing the format from the extension of filename.
// HCL expressions can use the env object, built from environ.
// Empty fields are filled with defaults. The result is not validated.
func Parse(filename string, src []byte, environ map[string]string) (*Config, error) {
	c := &Config{}

	switch strings.ToLower(path.Ext(filepath.ToSlash(filename))) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(src, c, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, filename, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, src, evalContext(environ), c); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, filename, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, filename, ErrUnsupportedFormat)
	}

	c.applyDefaults()

	return c, nil
}

func evalContext(environ map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(environ))
	for k, v := range environ {
		vals[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vals),
		},
	}
}
