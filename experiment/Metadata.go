package experiment

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MetadataFile is the name of the file that WriteMetadata writes
const MetadataFile = "metadata.json"

// Metadata describes the model and configuration of an experiment
type Metadata struct {
	ModelName  string                 `json:"model_name"`
	Game       string                 `json:"game"`
	QNetwork   interface{}            `json:"q_network"`
	Parameters map[string]interface{} `json:"parameters"`
	Optimizer  interface{}            `json:"optimizer_parameters"`
}

// WriteMetadata writes m as JSON to the metadata file in dir, creating
// dir if needed. The path of the written file is returned.
func WriteMetadata(dir string, m Metadata) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "writeMetadata")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "writeMetadata")
	}

	path := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(err, "writeMetadata")
	}
	return path, nil
}

// ReadMetadata reads the metadata file in dir
func ReadMetadata(dir string) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return Metadata{}, errors.Wrap(err, "readMetadata")
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, errors.Wrap(err, "readMetadata")
	}
	return m, nil
}
