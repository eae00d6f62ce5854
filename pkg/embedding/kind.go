package embedding

import "github.com/pkg/errors"

// Kind tags a clause with the constraint family that produced it
type Kind int

const (
	AtLeastOne Kind = iota
	AtMostOne
	MutualExclusion
	EdgeConsistency
)

var kindNames = [...]string{
	AtLeastOne:      "at_least_one",
	AtMostOne:       "at_most_one",
	MutualExclusion: "mutual_exclusion",
	EdgeConsistency: "edge_consistency",
}

// Kinds lists every clause kind in emission order
func Kinds() []Kind {
	return []Kind{AtLeastOne, AtMostOne, MutualExclusion, EdgeConsistency}
}

func (kind Kind) String() string {
	if kind < 0 || int(kind) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[kind]
}

func ParseKind(value string) (Kind, error) {
	for _, kind := range Kinds() {
		if kind.String() == value {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown clause kind %q", value)
}
