// Package config loads a duocache.Config from a YAML file, for callers
// that prefer file-based configuration over the functional-options
// pattern used elsewhere in the module.
package config

import (
	"fmt"
	"os"

	"github.com/hupe1980/duocache"
	"gopkg.in/yaml.v3"
)

// File mirrors duocache.Config with yaml tags. It is decoded separately
// from duocache.Config so the public Config struct never has to carry
// serialization tags for a format most callers won't use.
type File struct {
	DiskCacheEnabled            bool   `yaml:"disk_cache_enabled"`
	DiskCacheRootFolder         string `yaml:"disk_cache_root_folder"`
	PixelMemoryCacheCapacityMB  int64  `yaml:"pixel_memory_cache_capacity_mb"`
	StringMemoryCacheCapacityMB int64  `yaml:"string_memory_cache_capacity_mb"`
}

// ToConfig converts a decoded File into a duocache.Config.
func (f File) ToConfig() duocache.Config {
	return duocache.Config{
		DiskCacheEnabled:            f.DiskCacheEnabled,
		DiskCacheRootFolder:         f.DiskCacheRootFolder,
		PixelMemoryCacheCapacityMB:  f.PixelMemoryCacheCapacityMB,
		StringMemoryCacheCapacityMB: f.StringMemoryCacheCapacityMB,
	}
}

// LoadYAML reads path and decodes it into a duocache.Config.
func LoadYAML(path string) (duocache.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return duocache.Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return duocache.Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f.ToConfig(), nil
}
