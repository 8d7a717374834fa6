// Package iofs prepares the file system locations used by gndash and
// reads uploaded files from disk.
package iofs

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gndash/pkg/config"
	"github.com/gnames/gndash/pkg/templates"
)

// EnsureDirs creates config, cache and log directories if they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644)
	if err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadUpload reads a local spreadsheet and returns its base name and
// content. Files larger than maxBytes are rejected before reading;
// maxBytes of zero disables the check.
func ReadUpload(path string, maxBytes int64) (string, []byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, ReadFileError(path, err)
	}
	if info.IsDir() {
		return "", nil, ReadFileError(path, os.ErrInvalid)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", nil, FileTooLargeError(
			path, humanize.Bytes(uint64(maxBytes)),
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, ReadFileError(path, err)
	}
	return filepath.Base(path), data, nil
}
