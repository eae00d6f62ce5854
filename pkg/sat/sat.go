package sat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// SATSolution holds one signed literal per variable, in the engine's native order
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
	// Labels optionally annotates each clause (same length as Clauses) with its origin
	Labels []string
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	s.writeDIMACS(&builder)
	return builder.String()
}

// WriteDIMACS renders the instance in DIMACS-CNF. When labels are present every clause is
// preceded by a "c id <1-based index> type <label>" comment line.
func (s SAT) WriteDIMACS(w io.Writer) error {
	buffered := bufio.NewWriter(w)
	s.writeDIMACS(buffered)
	return buffered.Flush()
}

// WriteDIMACSFile creates or overwrites path with the instance's DIMACS rendering
func (s SAT) WriteDIMACSFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create DIMACS file")
	}
	if err := s.WriteDIMACS(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "cannot write DIMACS file %v", path)
	}
	return errors.Wrapf(file.Close(), "cannot close DIMACS file %v", path)
}

func (s SAT) writeDIMACS(w io.Writer) {
	fmt.Fprintf(w, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for i, clause := range s.Clauses {
		if i < len(s.Labels) {
			fmt.Fprintf(w, "c id %d type %s\n", i+1, s.Labels[i])
		}
		for _, literal := range clause {
			fmt.Fprintf(w, "%d ", literal)
		}
		io.WriteString(w, "0\n")
	}
}
