package model

import (
	"fmt"
	"strings"
	"unicode"
)

// Built-in values used when the config file does not set a field.
const (
	DefaultDocker   = "docker"
	DefaultImage    = "ghcr.io/cosmos/gaia"
	DefaultVersion  = "sha-fca0a63"
	DefaultChainID  = "mytest"
	DefaultShell    = "sh"
	DefaultScript   = "/usr/test.sh"
	DefaultExpected = "hello world"
	DefaultGreeting = "hello ugo"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, e := range es {
		sb.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
	}
	return sb.String()
}

// Config is the gaiad-auto.yaml file.
type Config struct {
	Docker   string      `yaml:"docker"`
	Image    string      `yaml:"image"`
	Version  string      `yaml:"version"`
	ChainID  string      `yaml:"chain-id"`
	RunArgs  []string    `yaml:"run-args,omitempty"` // Extra tokens passed to docker run before the image
	Command  []string    `yaml:"command,omitempty"`  // Container command; keeps the container alive for the smoke script
	Smoke    SmokeConfig `yaml:"smoke"`
	Greeting string      `yaml:"greeting"`
}

type SmokeConfig struct {
	Shell    string `yaml:"shell"`
	Script   string `yaml:"script"`
	Expected string `yaml:"expected"`
}

func DefaultConfig() Config {
	return Config{
		Docker:  DefaultDocker,
		Image:   DefaultImage,
		Version: DefaultVersion,
		ChainID: DefaultChainID,
		Command: []string{"sleep", "infinity"},
		Smoke: SmokeConfig{
			Shell:    DefaultShell,
			Script:   DefaultScript,
			Expected: DefaultExpected,
		},
		Greeting: DefaultGreeting,
	}
}

// ImageRef is the reference handed to docker run.
func (c *Config) ImageRef() string {
	if strings.HasPrefix(c.Version, "sha256:") {
		return c.Image + "@" + c.Version
	}
	return c.Image + ":" + c.Version
}

// StartArgs builds the docker run arguments for a detached container named name.
func (c *Config) StartArgs(name string) []string {
	args := []string{"-d", "--name", name, "-e", "CHAIN_ID=" + c.ChainID}
	args = append(args, c.RunArgs...)
	args = append(args, c.ImageRef())
	return append(args, c.Command...)
}

func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(c.Docker) == "" {
		errs = append(errs, ValidationError{Field: "docker", Message: "docker binary cannot be empty"})
	}

	if strings.TrimSpace(c.Image) == "" {
		errs = append(errs, ValidationError{Field: "image", Message: "image cannot be empty"})
	} else if !isValidReference(c.Image) {
		errs = append(errs, ValidationError{Field: "image", Message: "image cannot contain whitespace or control characters"})
	} else if hasTagOrDigest(c.Image) {
		errs = append(errs, ValidationError{Field: "image", Message: "image must not carry a tag or digest; use version"})
	}

	if strings.TrimSpace(c.Version) == "" {
		errs = append(errs, ValidationError{Field: "version", Message: "image version cannot be empty"})
	} else if !isValidReference(c.Version) || strings.ContainsAny(c.Version, "/@") ||
		(strings.Contains(c.Version, ":") && !strings.HasPrefix(c.Version, "sha256:")) {
		errs = append(errs, ValidationError{Field: "version", Message: "image version contains invalid characters"})
	}

	if c.ChainID == "" {
		errs = append(errs, ValidationError{Field: "chain-id", Message: "chain id cannot be empty"})
	} else if !isValidChainID(c.ChainID) {
		errs = append(errs, ValidationError{Field: "chain-id", Message: "chain id contains invalid characters (only letters, digits, '.', '_' and '-' allowed)"})
	}

	for i, arg := range c.RunArgs {
		if arg == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("run-args[%d]", i), Message: "argument cannot be empty"})
		}
	}

	if strings.TrimSpace(c.Smoke.Shell) == "" {
		errs = append(errs, ValidationError{Field: "smoke.shell", Message: "shell cannot be empty"})
	}
	if strings.TrimSpace(c.Smoke.Script) == "" {
		errs = append(errs, ValidationError{Field: "smoke.script", Message: "script cannot be empty"})
	}

	return errs
}

func isValidReference(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// hasTagOrDigest reports whether image already names a tag or digest. A ':'
// before the last '/' is a registry port.
func hasTagOrDigest(image string) bool {
	if strings.Contains(image, "@") {
		return true
	}
	return strings.Contains(image[strings.LastIndex(image, "/")+1:], ":")
}

func isValidChainID(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
