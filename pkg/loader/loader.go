// Package loader reads structured input into order-preserving Values. The
// whole input is consumed before rendering starts; the format is
// auto-detected.
package loader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hrwtech/rich-tables/internal/render"
)

// ErrNotStructured reports input that parsed as nothing more than raw text.
// Callers typically print the text as-is instead of failing.
type ErrNotStructured struct {
	Text string
}

func (e *ErrNotStructured) Error() string {
	return "input is not structured data"
}

// Load parses input, auto-detecting the format. Supported:
//   - single JSON object/array
//   - newline-delimited JSON (one object per line)
//   - YAML: single document or multi-document (separated by ---)
//   - TOML
//
// JSON and YAML object keys keep document order.
func Load(input string) (render.Value, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return render.Value{}, fmt.Errorf("empty input")
	}

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(lines)
	}

	// TOML [section] headers look like JSON arrays, so check TOML before
	// falling through to the JSON/YAML path.
	if isLikelyTOML(input) {
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		v, err := loadYAMLDoc(input)
		if err != nil {
			return render.Value{}, fmt.Errorf("invalid JSON: %w", err)
		}
		return v, nil
	}

	v, err := loadYAMLDoc(input)
	if err != nil || v.Kind() == render.KindString {
		// Bare text is not an error worth dying on; let the caller decide.
		return render.Value{}, &ErrNotStructured{Text: input}
	}
	return v, nil
}

// LoadReader consumes the reader fully and parses the result.
func LoadReader(r io.Reader) (render.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return render.Value{}, fmt.Errorf("reading input: %w", err)
	}
	return Load(string(data))
}

// loadYAMLDoc parses one JSON/YAML document via the yaml node tree, which
// keeps mapping keys in document order.
func loadYAMLDoc(input string) (render.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(input), &node); err != nil {
		return render.Value{}, err
	}
	return render.FromYAML(&node)
}

func loadMultiDocYAML(input string) (render.Value, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var docs []render.Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return render.Value{}, fmt.Errorf("invalid YAML document %d: %w", len(docs)+1, err)
		}
		v, err := render.FromYAML(&node)
		if err != nil {
			return render.Value{}, err
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return render.Value{}, fmt.Errorf("no YAML documents found")
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return render.List(docs...), nil
}

func isLikelyNDJSON(lines []string) bool {
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") && !strings.HasPrefix(line, "[") {
			return false
		}
		seen++
	}
	return seen > 1
}

func loadNDJSON(lines []string) (render.Value, error) {
	var docs []render.Value
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := loadYAMLDoc(line)
		if err != nil {
			return render.Value{}, fmt.Errorf("invalid JSON on line %d: %w", i+1, err)
		}
		docs = append(docs, v)
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return render.List(docs...), nil
}

func isLikelyTOML(input string) bool {
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") &&
			!strings.Contains(line, ",") && !strings.Contains(line, "\"") {
			// A bracket line holding a bare JSON literal is an array, not a
			// table header.
			name := strings.TrimSpace(line[1 : len(line)-1])
			if _, err := strconv.ParseFloat(name, 64); err == nil {
				return false
			}
			if name == "true" || name == "false" || name == "null" {
				return false
			}
			return true
		}
		// key = value at the top of the document
		if idx := strings.Index(line, "="); idx > 0 && !strings.HasPrefix(line, "{") {
			key := strings.TrimSpace(line[:idx])
			return key != "" && !strings.ContainsAny(key, ":{}")
		}
		return false
	}
	return false
}

// loadTOML decodes TOML into a plain map; TOML key order is not preserved,
// so keys come back sorted.
func loadTOML(input string) (render.Value, error) {
	var data map[string]interface{}
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return render.Value{}, fmt.Errorf("invalid TOML: %w", err)
	}
	return render.FromAny(data), nil
}
