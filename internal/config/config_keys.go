// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go handles the YAML structure and loading; this file
// serves the CLI and MCP, where config is addressed by dotted keys such as
// "diff.context".
//
// Design: Pointers are used for optional numeric and boolean fields so "not
// set" (nil) differs from "explicitly zero/false", and defaults only apply to
// the former.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/llmedit/internal/diff"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"diff.context", "diff.algorithm", "diff.tokenizer", "diff.longest_token",
		"limits.max_path", "limits.max_content",
		"output.colour",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "diff.context":
		return strconv.Itoa(c.Context()), nil
	case "diff.algorithm":
		return c.Algorithm().String(), nil
	case "diff.tokenizer":
		return c.Tokenizer().String(), nil
	case "diff.longest_token":
		return strconv.FormatBool(c.LongestToken()), nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	case "output.colour":
		return c.Colour(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "diff.context":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinContext || n > MaxContext {
			return fmt.Errorf("%w: diff.context must be an integer between %d and %d", ErrInvalidValue, MinContext, MaxContext)
		}
		c.Diff.Context = &n
	case "diff.algorithm":
		a, err := diff.ParseAlgorithm(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		c.Diff.Algorithm = a.String()
	case "diff.tokenizer":
		k, err := tokenize.ParseKind(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		c.Diff.Tokenizer = k.String()
	case "diff.longest_token":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: diff.longest_token must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Diff.LongestToken = &b
	case "limits.max_path":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxPath || n > MaxMaxPath {
			return fmt.Errorf("%w: limits.max_path must be an integer between %d and %d", ErrInvalidValue, MinMaxPath, MaxMaxPath)
		}
		c.Limits.MaxPath = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxContent || n > MaxMaxContent {
			return fmt.Errorf("%w: limits.max_content must be an integer between %d and %d", ErrInvalidValue, MinMaxContent, MaxMaxContent)
		}
		c.Limits.MaxContent = &n
	case "output.colour":
		v := strings.ToLower(value)
		switch v {
		case ColourAuto, ColourAlways, ColourNever:
			c.Output.Colour = v
		default:
			return fmt.Errorf("%w: output.colour must be auto, always or never", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		all[k] = v
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "diff.context":
		return c.Diff.Context != nil
	case "diff.algorithm":
		return c.Diff.Algorithm != ""
	case "diff.tokenizer":
		return c.Diff.Tokenizer != ""
	case "diff.longest_token":
		return c.Diff.LongestToken != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "output.colour":
		return c.Output.Colour != ""
	default:
		return false
	}
}
