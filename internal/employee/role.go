package employee

import "fmt"

// Role is the closed set of positions an employee can hold.
type Role int

const (
	RoleIntern Role = iota
	RoleFresher
	RoleSenior
)

var roleLabels = map[Role]string{
	RoleIntern:  "INTERN",
	RoleFresher: "FRESHER",
	RoleSenior:  "SENIOR",
}

// Roles returns every role in selector order.
func Roles() []Role {
	return []Role{RoleIntern, RoleFresher, RoleSenior}
}

// String returns the uppercase label used in CSV files and listings.
func (r Role) String() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("ROLE(%d)", int(r))
}

// RoleFromSelector converts the menu selector (1-3) into a Role.
func RoleFromSelector(n int) (Role, error) {
	switch n {
	case 1:
		return RoleIntern, nil
	case 2:
		return RoleFresher, nil
	case 3:
		return RoleSenior, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSelector, n)
	}
}

// ParseRole converts an uppercase label back into a Role.
func ParseRole(label string) (Role, error) {
	for role, candidate := range roleLabels {
		if candidate == label {
			return role, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, label)
}
