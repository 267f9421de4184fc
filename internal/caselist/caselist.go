// Package caselist reads and appends records of the flat CSV case-list
// file.
//
// Each line is "case_number,sample_1,...,sample_n,run_name" with no
// header and no quoting; fields must not contain commas. Case numbers
// look like "PROJ-00042" and increase by exactly 1 per record, derived
// from the last line only.
package caselist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// caseNumberWidth is the minimum zero-padded width of the numeric part.
// Numbers that outgrow it keep their natural width.
const caseNumberWidth = 5

// NextCaseNumber reads the last record of the case list and returns the
// case number that the next record must carry.
func NextCaseNumber(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read case list: %w", err)
	}

	last := lastLine(string(data))
	if last == "" {
		return "", fmt.Errorf("case list %s is empty", path)
	}

	caseNum, _, found := strings.Cut(last, ",")
	if !found {
		return "", fmt.Errorf("malformed last record %q: no comma-separated fields", last)
	}

	project, number, err := splitCaseNumber(caseNum)
	if err != nil {
		return "", fmt.Errorf("malformed case number in last record %q: %w", last, err)
	}

	return fmt.Sprintf("%s-%0*d", project, caseNumberWidth, number+1), nil
}

// splitCaseNumber splits "PROJ-00042" into its project code and number.
func splitCaseNumber(caseNum string) (project string, number int, err error) {
	project, numStr, found := strings.Cut(caseNum, "-")
	if !found {
		return "", 0, fmt.Errorf("%q has no hyphen", caseNum)
	}
	number, err = strconv.Atoi(numStr)
	if err != nil {
		return "", 0, fmt.Errorf("%q has a non-numeric suffix", caseNum)
	}
	return project, number, nil
}

// lastLine returns the final non-empty line of the file contents.
func lastLine(data string) string {
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")
	return lines[len(lines)-1]
}

// Record formats a new case-list record. No quoting is applied, so the
// identifiers and run name must not contain commas.
func Record(caseNum string, samples []string, runName string) string {
	fields := make([]string, 0, len(samples)+2)
	fields = append(fields, caseNum)
	fields = append(fields, samples...)
	fields = append(fields, runName)
	return strings.Join(fields, ",")
}

// Append writes the record and a trailing newline to the end of the
// case list. There is no locking; concurrent invocations race.
func Append(path, record string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open case list for append: %w", err)
	}

	if _, err := f.WriteString(record + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append record: %w", err)
	}
	return f.Close()
}

// Backup copies the case list to a dot-prefixed ".<name>.bak" file in
// the same directory, preserving the file mode. Any previous backup is
// overwritten; there is no rotation.
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open case list: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat case list: %w", err)
	}

	dir, name := filepath.Split(path)
	bakPath := filepath.Join(dir, "."+name+".bak")

	dst, err := os.OpenFile(bakPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup: %w", err)
	}

	return bakPath, nil
}

// Issue describes one malformed or out-of-sequence record found by Check.
type Issue struct {
	Line    int // 1-based line number
	Record  string
	Problem string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s (%q)", i.Line, i.Problem, i.Record)
}

// Check walks the whole case list and reports records whose case
// numbers are malformed or do not increase by exactly 1. Unlike the
// append path, which trusts the last line, Check validates every line.
func Check(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case list: %w", err)
	}

	var issues []Issue
	prevNumber := -1
	prevProject := ""

	for n, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		lineNo := n + 1
		if line == "" {
			issues = append(issues, Issue{lineNo, line, "empty record"})
			continue
		}

		caseNum, _, found := strings.Cut(line, ",")
		if !found {
			issues = append(issues, Issue{lineNo, line, "no comma-separated fields"})
			continue
		}

		project, number, err := splitCaseNumber(caseNum)
		if err != nil {
			issues = append(issues, Issue{lineNo, line, err.Error()})
			continue
		}

		if prevNumber >= 0 {
			if project != prevProject {
				issues = append(issues, Issue{lineNo, line,
					fmt.Sprintf("project changed from %s to %s", prevProject, project)})
			} else if number != prevNumber+1 {
				issues = append(issues, Issue{lineNo, line,
					fmt.Sprintf("case number %d does not follow %d", number, prevNumber)})
			}
		}
		prevNumber = number
		prevProject = project
	}

	return issues, nil
}
