package datasync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/at-ishikawa/playtrack/internal/scorm"
	"github.com/at-ishikawa/playtrack/internal/xapi"
)

// ReadStatements reads a JSON file holding one xAPI statement or an array of them.
func ReadStatements(path string) ([]xapi.Statement, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	content = bytes.TrimSpace(content)
	if len(content) > 0 && content[0] == '[' {
		var statements []xapi.Statement
		if err := json.Unmarshal(content, &statements); err != nil {
			return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
		}
		return statements, nil
	}

	var statement xapi.Statement
	if err := json.Unmarshal(content, &statement); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return []xapi.Statement{statement}, nil
}

// ReadSCORMData reads a JSON file holding a SCORM 1.2 data block rooted at cmi.
func ReadSCORMData(path string) (scorm.Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return scorm.Data{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var data scorm.Data
	if err := json.Unmarshal(content, &data); err != nil {
		return scorm.Data{}, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return data, nil
}
