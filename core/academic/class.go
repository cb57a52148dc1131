package academic

import (
	"strings"

	"github.com/pkg/errors"
)

// ClassRank is a year of study, stored as its lower-case code.
type ClassRank string

const (
	ClassFE ClassRank = "fe"
	ClassSE ClassRank = "se"
	ClassTE ClassRank = "te"
	ClassBE ClassRank = "be"
)

var (
	// Classes lists the class ranks in ascending order.
	Classes = []ClassRank{ClassFE, ClassSE, ClassTE, ClassBE}

	ErrUnknownClass = errors.New("unknown class")

	classLongLabels = map[ClassRank]string{
		ClassFE: "FE (First Year)",
		ClassSE: "SE (Second Year)",
		ClassTE: "TE (Third Year)",
		ClassBE: "BE (Final Year)",
	}
)

// ParseClass parses a class code, case-insensitively.
func ParseClass(s string) (ClassRank, error) {
	c := ClassRank(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", errors.Wrapf(ErrUnknownClass, "%q", s)
	}
	return c, nil
}

func (c ClassRank) IsValid() bool {
	return c.Rank() > 0
}

// Rank is the position of c in Classes, starting at 1. Unknown classes rank 0.
func (c ClassRank) Rank() int {
	for i, cls := range Classes {
		if c == cls {
			return i + 1
		}
	}
	return 0
}

// Label is the short upper-case code, e.g. "FE".
func (c ClassRank) Label() string {
	return strings.ToUpper(string(c))
}

// LongLabel is e.g. "FE (First Year)". Unknown classes fall back to Label.
func (c ClassRank) LongLabel() string {
	if l, ok := classLongLabels[c]; ok {
		return l
	}
	return c.Label()
}

type ClassOption struct {
	Name  string    `json:"name"`
	Value ClassRank `json:"value"`
}

// ClassOptions lists the class ranks for selection inputs.
func ClassOptions() []ClassOption {
	opts := make([]ClassOption, 0, len(Classes))
	for _, c := range Classes {
		opts = append(opts, ClassOption{Name: c.LongLabel(), Value: c})
	}
	return opts
}
