package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqops/cliacase/internal/caselist"
	"github.com/seqops/cliacase/internal/runname"
	"github.com/seqops/cliacase/internal/samplekey"
)

// writeStubHelper writes a shell script that plays the sampleKeyGen.pl
// role: it validates the -f argument and prints a key/value table.
func writeStubHelper(t *testing.T, dir, table string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub helper is a shell script")
	}

	stub := filepath.Join(dir, "samplekeygen-stub.sh")
	script := "#!/bin/sh\n" +
		"case \"$*\" in *ion_params_00.json*) ;; *) exit 1 ;; esac\n" +
		"cat <<'EOF'\n" + table + "EOF\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0755))
	return stub
}

// TestAddFlow_EndToEnd walks the whole linear pipeline: backup, run-name
// extraction, sample collection through the external helper, case-number
// derivation, and the final append.
func TestAddFlow_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	runDir := filepath.Join(dir, "Auto_user_Run2_117_205")
	require.NoError(t, os.MkdirAll(runDir, 0755))

	caseList := filepath.Join(dir, "clia_case_list.csv")
	require.NoError(t, os.WriteFile(caseList, []byte("ABC-00001,MSN0001,Run1\n"), 0644))

	opts := samplekey.DefaultOptions()
	opts.Command = writeStubHelper(t, dir, "IonXpress_001\tMSN0002-R001\n")

	bak, err := caselist.Backup(caseList)
	require.NoError(t, err)
	assert.FileExists(t, bak)

	name, matched := runname.Extract(runDir)
	require.True(t, matched)
	assert.Equal(t, "Run2", name)

	samples, err := samplekey.Collect(runDir, false, opts)
	require.NoError(t, err)
	require.Equal(t, []string{"MSN0002"}, samples)

	next, err := caselist.NextCaseNumber(caseList)
	require.NoError(t, err)
	assert.Equal(t, "ABC-00002", next)

	record := caselist.Record(next, samples, name)
	assert.Equal(t, "ABC-00002,MSN0002,Run2", record)
	require.NoError(t, caselist.Append(caseList, record))

	data, err := os.ReadFile(caseList)
	require.NoError(t, err)
	assert.Equal(t, "ABC-00001,MSN0001,Run1\nABC-00002,MSN0002,Run2\n", string(data))

	// The backup still holds the pre-append contents.
	bakData, err := os.ReadFile(bak)
	require.NoError(t, err)
	assert.Equal(t, "ABC-00001,MSN0001,Run1\n", string(bakData))

	// The appended list passes a full sequence check.
	issues, err := caselist.Check(caseList)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

// TestAddFlow_FailingHelper: a helper that produces no usable output
// must not grow the case list.
func TestAddFlow_FailingHelper(t *testing.T) {
	dir := t.TempDir()

	runDir := filepath.Join(dir, "Auto_user_Run3_118_206")
	require.NoError(t, os.MkdirAll(runDir, 0755))

	caseList := filepath.Join(dir, "clia_case_list.csv")
	require.NoError(t, os.WriteFile(caseList, []byte("ABC-00001,MSN0001,Run1\n"), 0644))

	opts := samplekey.DefaultOptions()
	opts.Command = filepath.Join(dir, "no-such-helper")

	samples, err := samplekey.Collect(runDir, false, opts)
	require.NoError(t, err)
	assert.Empty(t, samples)

	// The caller treats the empty set as fatal and never appends; the
	// case list is unchanged.
	data, err := os.ReadFile(caseList)
	require.NoError(t, err)
	assert.Equal(t, "ABC-00001,MSN0001,Run1\n", string(data))
}

// TestAddFlow_OCPCohort runs the special-cohort derivation end to end.
func TestAddFlow_OCPCohort(t *testing.T) {
	dir := t.TempDir()

	runDir := filepath.Join(dir, "Auto_user_OCP-Run_119_207")
	require.NoError(t, os.MkdirAll(runDir, 0755))

	opts := samplekey.DefaultOptions()
	opts.Command = writeStubHelper(t, dir,
		"IonXpress_001\t10123-DNA01\n"+
			"IonXpress_002\t20123-DNA01\n"+
			"IonXpress_003\tMSN0001-R001\n")

	samples, err := samplekey.Collect(runDir, true, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"10123-D"}, samples)
}
