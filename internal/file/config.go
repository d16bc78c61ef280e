package file

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/divVerent/midiroll/internal/processor"
)

// ReadConfig reads the shared configuration.
func ReadConfig(fsys fs.FS, configFile string) (*processor.Config, error) {
	f, err := fsys.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("could not open: %w", err)
	}
	defer f.Close()
	var config processor.Config
	err = yaml.NewDecoder(f).Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	return &config, nil
}
