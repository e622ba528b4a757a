package testrun

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ResultsFileName is the artifact written after each run.
const ResultsFileName = "inso-test-results.json"

// writeResults records the run in the working directory. The artifact
// survives only when keep is set; otherwise it is removed again after
// the write.
func writeResults(workingDir string, summary *Summary, keep bool) error {
	path := filepath.Join(workingDir, ResultsFileName)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	if !keep {
		return os.Remove(path)
	}
	return nil
}
