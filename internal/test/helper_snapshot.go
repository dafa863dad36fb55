package test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// snapshotDirName is resolved relative to the calling test's package
// directory (where go test runs).
const snapshotDirName = "testdata/snapshots"

// UpdateGoldenFiles rewrites all stored snapshots instead of comparing, set
// TEST_UPDATE_GOLDEN=true to use.
var UpdateGoldenFiles = os.Getenv("TEST_UPDATE_GOLDEN") == "true"

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type snapshoter struct {
	update   bool
	label    string
	replacer func(s string) string
}

// Snapshoter compares against golden files stored under testdata/snapshots,
// named after the running test. A missing golden file is recorded on first
// use. Customize per call site by chaining:
//
//	test.Snapshoter.Label("-pretty").Save(t, result)
var Snapshoter = snapshoter{
	update:   false,
	label:    "",
	replacer: func(s string) string { return s },
}

// Save stores or compares the spew dump of the given values.
func (s snapshoter) Save(t *testing.T, data ...interface{}) {
	t.Helper()
	s.save(t, spewConfig.Sdump(data...))
}

// SaveString stores or compares a raw string payload.
func (s snapshoter) SaveString(t *testing.T, data string) {
	t.Helper()
	s.save(t, data)
}

// Update returns a Snapshoter that overwrites its golden file.
func (s snapshoter) Update(update bool) snapshoter {
	s.update = update
	return s
}

// Label returns a Snapshoter with a filename suffix, for tests saving more
// than one snapshot.
func (s snapshoter) Label(label string) snapshoter {
	s.label = label
	return s
}

// Replacer returns a Snapshoter that filters the dump before storing, used
// to mask values that change between runs.
func (s snapshoter) Replacer(replacer func(s string) string) snapshoter {
	s.replacer = replacer
	return s
}

func (s snapshoter) save(t *testing.T, dump string) {
	t.Helper()

	dump = s.replacer(dump)

	require.NoError(t, os.MkdirAll(snapshotDirName, 0o755))

	// Subtest names contain slashes.
	snapshotName := fmt.Sprintf("%s%s.golden", strings.ReplaceAll(t.Name(), "/", "-"), s.label)
	snapshotPath := filepath.Join(snapshotDirName, snapshotName)

	if s.update || UpdateGoldenFiles {
		require.NoError(t, os.WriteFile(snapshotPath, []byte(dump), 0o644))
		t.Logf("Updated snapshot %s", snapshotPath)

		return
	}

	expected, err := os.ReadFile(snapshotPath)
	if os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(snapshotPath, []byte(dump), 0o644))
		t.Logf("Recorded new snapshot %s", snapshotPath)

		return
	}
	require.NoError(t, err)

	if string(expected) != dump {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expected)),
			B:        difflib.SplitLines(dump),
			FromFile: "Expected",
			ToFile:   "Current",
			Context:  2,
		})
		require.NoError(t, err)

		t.Errorf("Snapshot %s differs:\n%s", snapshotName, diff)
	}
}
