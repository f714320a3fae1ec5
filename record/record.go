package record

import (
	"cmp"
	"strconv"
	"strings"
)

// Record defines a single dataset row describing a serviceman: full name,
// job, unit and salary.
type Record struct {
	Name   string
	Job    string
	Unit   string
	Salary int
}

// Compare orders records by unit, then name, then salary. It returns -1, 0 or +1.
// All the relational helpers below are derived from it.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.Unit, b.Unit); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Salary, b.Salary)
}

// Less reports whether a orders strictly before b.
func Less(a, b Record) bool {
	return Compare(a, b) < 0
}

// Greater reports whether a orders strictly after b.
func Greater(a, b Record) bool {
	return Compare(a, b) > 0
}

func LessOrEqual(a, b Record) bool {
	return Compare(a, b) <= 0
}

func GreaterOrEqual(a, b Record) bool {
	return Compare(a, b) >= 0
}

func (r Record) String() string {
	return strings.Join([]string{r.Name, r.Job, r.Unit, strconv.Itoa(r.Salary)}, ",")
}
