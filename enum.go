package simplelog

import (
	"golang.org/x/exp/constraints"
)

// enumNotFound is returned by EnumString for values it cannot name.
const enumNotFound = "Could not find string associated with enum value. " +
	"Ensure that the enum is a UENUM and the index provided exists."

// EnumString returns the name of the enum value v, where names lists the
// names of an enumeration by index. Values without a name yield a fixed
// explanatory text rather than an error, so the result can always be
// logged.
func EnumString[T constraints.Integer](names []string, v T) string {
	if v < 0 || uint64(v) >= uint64(len(names)) {
		return enumNotFound
	}

	return names[int(v)]
}
