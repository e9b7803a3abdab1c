package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const narrativesFile = "narratives.yaml"

// Load builds the catalog from the definitions compiled into the binary.
func Load(v *validator.Validator) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded catalog: %w", err)
	}
	return LoadFS(sub, v)
}

// LoadFS builds a catalog from a directory holding one YAML file per instrument
// plus narratives.yaml.
func LoadFS(fsys fs.FS, v *validator.Validator) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var (
		instruments []*models.Instrument
		narratives  Narratives
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		if name == narrativesFile {
			if err := decodeStrict(data, &narratives); err != nil {
				return nil, apperrors.NewConfigurationError("", "", fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}

		var inst models.Instrument
		if err := decodeStrict(data, &inst); err != nil {
			return nil, apperrors.NewConfigurationError(strings.TrimSuffix(name, ".yaml"), "", err.Error())
		}
		instruments = append(instruments, &inst)
	}

	return New(instruments, narratives, v)
}

// decodeStrict rejects keys that do not map to a field, so typos in definitions fail loudly.
func decodeStrict(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
