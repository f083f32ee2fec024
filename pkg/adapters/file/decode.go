package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// readDocument reads a YAML or JSON file into generic maps.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDocument(data, formatOf(path))
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "yaml"
}

func parseDocument(data []byte, format string) (map[string]any, error) {
	var doc map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}
	return doc, nil
}

// decode maps a generic document onto a dto struct. Unknown keys are rejected so that
// typos in hand-written templates surface as errors.
func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       markerShorthand,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// markerShorthand turns a plain string into a MarkerEntry.
func markerShorthand(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(dto.MarkerEntry{}) {
		return map[string]any{"name": data}, nil
	}
	return data, nil
}

// resolvePath finds source under base, trying the known extensions when it has none.
func resolvePath(base, source string) (string, error) {
	path := source
	if base != "" && !filepath.IsAbs(source) {
		path = filepath.Join(base, source)
	}
	candidates := []string{path}
	if filepath.Ext(path) == "" {
		candidates = append(candidates, path+".yaml", path+".yml", path+".json")
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%s: %w", source, os.ErrNotExist)
}
