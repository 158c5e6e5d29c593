package datasync

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// YAMLSink writes records to game_analytics.yml in a directory.
type YAMLSink struct {
	outputDir string
}

func NewYAMLSink(outputDir string) *YAMLSink {
	return &YAMLSink{outputDir: outputDir}
}

// Path returns the file WriteAll writes.
func (s *YAMLSink) Path() string {
	return filepath.Join(s.outputDir, ExportFileName)
}

// WriteAll replaces the export file with records.
func (s *YAMLSink) WriteAll(records []analytics.GameAnalytics) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if records == nil {
		records = []analytics.GameAnalytics{}
	}
	if err := writeYAML(s.Path(), records); err != nil {
		return fmt.Errorf("write %s: %w", ExportFileName, err)
	}
	return nil
}

// ReadYAML reads records written by YAMLSink.
func ReadYAML(path string) ([]analytics.GameAnalytics, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var records []analytics.GameAnalytics
	if err := yaml.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return records, nil
}

func writeYAML(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
