package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/assetd/internal/resource"
)

// MountsFile is the YAML document read from ASSETD_MOUNTS_FILE.
//
//	mounts:
//	  - prefix: /foobar
//	    root: /test-resources
//	    welcome: index.html
type MountsFile struct {
	Mounts []MountEntry `yaml:"mounts"`
}

type MountEntry struct {
	Prefix  string `yaml:"prefix"`
	Root    string `yaml:"root"`
	Welcome string `yaml:"welcome"`
}

// MountsLoader reads and validates a mounts file
type MountsLoader struct {
	filePath string
}

func NewMountsLoader(filePath string) *MountsLoader {
	return &MountsLoader{
		filePath: filePath,
	}
}

// Load parses the file and validates every entry. Duplicate prefixes are rejected.
func (l *MountsLoader) Load() ([]resource.Mount, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mounts file: %w", err)
	}

	var file MountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mounts yaml: %w", err)
	}
	if len(file.Mounts) == 0 {
		return nil, fmt.Errorf("mounts file %s declares no mounts", l.filePath)
	}

	mounts := make([]resource.Mount, 0, len(file.Mounts))
	seen := make(map[string]bool, len(file.Mounts))
	for i, e := range file.Mounts {
		m, err := resource.NewMount(e.Prefix, e.Root, e.Welcome)
		if err != nil {
			return nil, fmt.Errorf("mount #%d: %w", i+1, err)
		}
		if seen[m.Prefix] {
			return nil, fmt.Errorf("mount #%d: duplicate prefix %q", i+1, m.Prefix)
		}
		seen[m.Prefix] = true
		mounts = append(mounts, m)
	}
	return mounts, nil
}
