// Package samplekey collects sample identifiers for a sequencing run by
// invoking the external sampleKeyGen.pl helper against the run's
// parameter file and reducing its key/value output.
package samplekey

import (
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Defaults for the helper contract. All of them can be overridden
// through the config file.
const (
	DefaultCommand       = "sampleKeyGen.pl"
	DefaultParamsFile    = "ion_params_00.json"
	DefaultPrefix        = "MSN"
	DefaultSuffixLen     = 4
	DefaultCohortPattern = `^1\d{4}-[DR]NA`
)

// DefaultFlags returns the fixed flags passed to the helper ahead of
// the parameter-file path.
func DefaultFlags() []string {
	return []string{"-p", "-r"}
}

// Options describes how to invoke the helper and reduce its output.
type Options struct {
	// Command is the helper executable, resolved via PATH.
	Command string
	// Flags are passed before "-f <params_file>".
	Flags []string
	// ParamsFile is the parameter filename under the run directory.
	ParamsFile string
	// Prefix selects values in standard mode.
	Prefix string
	// SuffixLen is the fixed-length barcode suffix stripped from every
	// selected value.
	SuffixLen int
	// CohortPattern selects values in cohort mode.
	CohortPattern string
}

// DefaultOptions returns the helper contract used in production.
func DefaultOptions() Options {
	return Options{
		Command:       DefaultCommand,
		Flags:         DefaultFlags(),
		ParamsFile:    DefaultParamsFile,
		Prefix:        DefaultPrefix,
		SuffixLen:     DefaultSuffixLen,
		CohortPattern: DefaultCohortPattern,
	}
}

// Collect runs the helper against runDir's parameter file and returns
// the deduplicated, sorted sample identifiers.
//
// The call blocks until the helper exits. Its exit status and stderr
// are deliberately not inspected: a failed helper simply produces no
// parsable output, and the caller treats an empty result as fatal.
func Collect(runDir string, cohort bool, opts Options) ([]string, error) {
	paramsPath := filepath.Join(runDir, opts.ParamsFile)

	args := append(append([]string{}, opts.Flags...), "-f", paramsPath)
	out, _ := exec.Command(opts.Command, args...).Output()

	samples := ParseKeyTable(out)
	return Reduce(samples, cohort, opts)
}

// ParseKeyTable parses the helper's tab-separated key/value output.
// Lines without exactly one tab are skipped; duplicate keys keep the
// last value seen.
func ParseKeyTable(out []byte) map[string]string {
	table := make(map[string]string)
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			continue
		}
		table[fields[0]] = fields[1]
	}
	return table
}

// Reduce filters the key table's values by derivation mode, strips the
// barcode suffix, and returns the unique identifiers in sorted order.
func Reduce(table map[string]string, cohort bool, opts Options) ([]string, error) {
	keep := func(v string) bool { return strings.HasPrefix(v, opts.Prefix) }
	if cohort {
		re, err := regexp.Compile(opts.CohortPattern)
		if err != nil {
			return nil, err
		}
		keep = re.MatchString
	}

	uniq := make(map[string]struct{})
	for _, v := range table {
		if !keep(v) {
			continue
		}
		// Values too short to carry a barcode suffix are ignored.
		if len(v) <= opts.SuffixLen {
			continue
		}
		uniq[v[:len(v)-opts.SuffixLen]] = struct{}{}
	}

	ids := make([]string, 0, len(uniq))
	for id := range uniq {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
