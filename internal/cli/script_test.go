package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const scriptConfig = `scripts:
  check: lint spec spec.yaml
  ship: generate config --type kubernetes spec.yaml
  chain: check
  empty: "   "
`

func scriptDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, ".insorc.yaml", scriptConfig)
	writeFile(t, dir, "spec.yaml", validSpec)
	return dir
}

func TestScript_DispatchRunsBuiltin(t *testing.T) {
	dir := scriptDir(t)

	code, stdout, _ := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "check")

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "$ ")
	assert.Contains(t, stdout, "━")
	assert.Contains(t, stdout, "lint spec spec.yaml")
	assert.Contains(t, stdout, "petstore is valid")
}

func TestScript_PassthroughArgsAppended(t *testing.T) {
	dir := scriptDir(t)

	// The generate script already names a type; the passthrough output
	// flag reaches the leaf untouched.
	code, stdout, _ := testCLI(t, rootOptions{Version: "dev"},
		"-w", dir, "ship", "--output", "ingress.yaml")

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "$ ")
	assert.Contains(t, stdout, "--output ingress.yaml")
}

func TestScript_GlobalFlagsVisibleToScript(t *testing.T) {
	dir := scriptDir(t)

	// -w is only set on the outer invocation; the echoed command line
	// shows it re-serialized for the inner run.
	code, stdout, _ := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "check")

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "--workingDir="+dir)
}

func TestScript_MissingIsBenign(t *testing.T) {
	dir := scriptDir(t)

	code, _, stderr := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "deploy")

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "No script matched 'deploy'")
	assert.Contains(t, stderr, "Available scripts:")
	assert.Contains(t, stderr, "check")
}

func TestScript_MissingWithoutConfigIsBenign(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "deploy")

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "No script matched 'deploy'")
}

func TestScript_EmptyIsBenign(t *testing.T) {
	dir := scriptDir(t)

	code, _, stderr := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "empty")

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "No script matched 'empty'")
}

func TestScript_ChainingRejected(t *testing.T) {
	dir := scriptDir(t)

	// "chain" expands to "check", which is itself a script. The inner
	// tree runs at depth 1 and refuses to resolve it.
	code, _, stderr := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "chain")

	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, stderr, "resolves to another script")
}

func TestScript_DepthGuardDirect(t *testing.T) {
	dir := scriptDir(t)

	code, _, stderr := testCLI(t, rootOptions{Version: "dev", ScriptDepth: 1},
		"-w", dir, "check")

	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, stderr, "resolves to another script 'check'")
}

func TestScript_FailureCodePropagates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".insorc.yaml", "scripts:\n  check: lint spec spec.yaml\n")
	writeFile(t, dir, "spec.yaml", "name: broken\noperations:\n  - id: badOp\n    method: FETCH\n    path: pets\n")

	code, stdout, _ := testCLI(t, rootOptions{Version: "dev"}, "-w", dir, "check")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "lint failed")
}

func TestChangedGlobalFlags(t *testing.T) {
	root := newRootCommand(rootOptions{Version: "dev"})
	root.PersistentFlags().Set("ci", "true")
	root.PersistentFlags().Set("workingDir", "/tmp/project")

	flags := changedGlobalFlags(root)

	assert.Contains(t, flags, "--ci")
	assert.Contains(t, flags, "--workingDir=/tmp/project")
	assert.NotContains(t, flags, "--appDataDir=")
}
