package sat

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadDIMACSFile parses a DIMACS-CNF file, recovering "c id <i> type <label>" annotations as labels
func ReadDIMACSFile(fileName string) (SAT, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return SAT{}, errors.Wrap(err, "could not open file")
	}
	defer file.Close()

	return ReadDIMACS(file)
}

func ReadDIMACS(r io.Reader) (SAT, error) {
	var (
		sat          SAT
		seenHeader   bool
		declared     int
		pendingLabel string
		labelled     bool
		clause       []int64
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		// Comments (possibly carrying a clause annotation)
		if strings.HasPrefix(line, "c") {
			fields := strings.Fields(line)
			if len(fields) == 5 && fields[1] == "id" && fields[3] == "type" {
				pendingLabel = fields[4]
				labelled = true
			}
			continue
		}

		// Problem line
		if strings.HasPrefix(line, "p") {
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return SAT{}, errors.Errorf("invalid problem line: %s", line)
			}
			variables, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return SAT{}, errors.Wrap(err, "invalid variable count")
			}
			clauses, err := strconv.Atoi(parts[3])
			if err != nil || clauses < 0 {
				return SAT{}, errors.Errorf("invalid clause count: %s", parts[3])
			}
			sat.Variables, declared, seenHeader = variables, clauses, true
			sat.Clauses = make([][]int64, 0, clauses)
			continue
		}

		if !seenHeader {
			return SAT{}, errors.Errorf("clause found before the problem line: %s", line)
		}

		// Clause line: a clause may span several lines and ends at 0
		for _, literalStr := range strings.Fields(line) {
			literal, err := strconv.ParseInt(literalStr, 10, 64)
			if err != nil {
				return SAT{}, errors.Wrapf(err, "invalid literal '%s'", literalStr)
			}
			if literal == 0 {
				sat.Clauses = append(sat.Clauses, clause)
				sat.Labels = append(sat.Labels, pendingLabel)
				clause, pendingLabel = nil, ""
				continue
			}
			if uint64(max(literal, -literal)) > sat.Variables {
				return SAT{}, errors.Errorf("literal %d exceeds the declared %d variables", literal, sat.Variables)
			}
			clause = append(clause, literal)
		}
	}

	if err := scanner.Err(); err != nil {
		return SAT{}, errors.Wrap(err, "error reading file")
	}
	if !seenHeader {
		return SAT{}, errors.New("missing problem line")
	}
	if len(clause) > 0 {
		return SAT{}, errors.New("unterminated clause at end of input")
	}
	if len(sat.Clauses) != declared {
		return SAT{}, errors.Errorf("problem line declares %d clauses but %d were found", declared, len(sat.Clauses))
	}
	if !labelled {
		sat.Labels = nil
	}

	return sat, nil
}
