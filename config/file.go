package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/imasker/warden/log"
)

// NewFromYaml creates a config object from YAML file
func NewFromYaml(cnfPath string) (*Config, error) {
	cnf, err := fromFile(cnfPath)
	if err != nil {
		return nil, err
	}

	log.Logger.Info("Successfully loaded config from file %s", cnfPath)

	return cnf, nil
}

func fromFile(cnfPath string) (*Config, error) {
	cnf := clone(defaultCnf)

	file, err := os.Open(cnfPath)
	// Config file not found
	if err != nil {
		return nil, fmt.Errorf("open file error: %s", err)
	}
	defer file.Close()

	// Config file found, let's try to decode it
	if err = yaml.NewDecoder(file).Decode(cnf); err != nil {
		return nil, fmt.Errorf("decode YAML error: %s", err)
	}

	return fillSections(cnf), nil
}
