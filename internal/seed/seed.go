// Package seed loads the district and upazila reference data.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/blood-heros/apiserver/types"
)

//go:embed data/*.json
var data embed.FS

// Districts returns the bundled district list.
func Districts() ([]types.District, error) {
	var districts []types.District
	if err := decodeEmbedded("data/districts.json", &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// Upazilas returns the bundled upazila list.
func Upazilas() ([]types.Upazila, error) {
	var upazilas []types.Upazila
	if err := decodeEmbedded("data/upazilas.json", &upazilas); err != nil {
		return nil, err
	}
	return upazilas, nil
}

// LoadDistricts reads a district list from a JSON file.
func LoadDistricts(path string) ([]types.District, error) {
	var districts []types.District
	if err := decodeFile(path, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// LoadUpazilas reads an upazila list from a JSON file.
func LoadUpazilas(path string) ([]types.Upazila, error) {
	var upazilas []types.Upazila
	if err := decodeFile(path, &upazilas); err != nil {
		return nil, err
	}
	return upazilas, nil
}

func decodeEmbedded(name string, dst any) error {
	f, err := data.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return decode(f, name, dst)
}

func decodeFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return decode(f, path, dst)
}

func decode(r io.Reader, name string, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
