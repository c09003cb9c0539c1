// Package roster owns the in-memory employee collection. The store is
// single-actor by design: every operation runs to completion on the
// caller, and queries hand back fresh slices so stored order can only
// change through the store itself.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crewdesk/crewdesk/internal/employee"
)

// ErrDuplicateID reports an add or load that would repeat an id.
var ErrDuplicateID = errors.New("roster: duplicate employee id")

// Store keeps employees in insertion order, unique by id.
type Store struct {
	clock   employee.Clock
	entries []*employee.Employee
}

// New builds an empty store. A nil clock falls back to time.Now.
func New(clock employee.Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{clock: clock}
}

// Now reports the store's current time. The shell uses it when
// constructing employees so validation and listings share one clock.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Len reports how many employees are on the roster.
func (s *Store) Len() int {
	return len(s.entries)
}

// Add appends e iff its id is unused. A duplicate id leaves the roster
// untouched and is reported to the caller, never treated as fatal here.
func (s *Store) Add(e *employee.Employee) error {
	if _, ok := s.GetByID(e.ID()); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, e.ID())
	}
	s.entries = append(s.entries, e)
	return nil
}

// Remove deletes the employee with the given id, reporting whether a
// removal happened.
func (s *Store) Remove(id int) bool {
	for i, e := range s.entries {
		if e.ID() == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// GetByID looks up an employee. A miss is an absent result, not an error.
func (s *Store) GetByID(id int) (*employee.Employee, bool) {
	for _, e := range s.entries {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// Raise applies a percentage raise to one employee, reporting whether
// the id matched.
func (s *Store) Raise(id int, pct float64) bool {
	e, ok := s.GetByID(id)
	if !ok {
		return false
	}
	e.ApplyRaise(pct)
	return true
}

// RaiseAll applies a percentage raise to every employee, or only to the
// given role when filter is non-nil. Zero matches is still success.
func (s *Store) RaiseAll(pct float64, filter *employee.Role) {
	for _, e := range s.entries {
		if filter == nil || e.Role() == *filter {
			e.ApplyRaise(pct)
		}
	}
}

// Filter returns the employees satisfying pred, preserving roster order.
func (s *Store) Filter(pred func(*employee.Employee) bool) []*employee.Employee {
	var matched []*employee.Employee
	for _, e := range s.entries {
		if pred(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// All returns an ordered snapshot of the roster.
func (s *Store) All() []*employee.Employee {
	out := make([]*employee.Employee, len(s.entries))
	copy(out, s.entries)
	return out
}

// SortedView returns a copy of the roster ordered by less; the stored
// order is untouched.
func (s *Store) SortedView(less func(a, b *employee.Employee) bool) []*employee.Employee {
	view := s.All()
	sort.SliceStable(view, func(i, j int) bool { return less(view[i], view[j]) })
	return view
}

// ByName orders by name, case-insensitive ascending.
func ByName(a, b *employee.Employee) bool {
	return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
}

// BySalaryDesc orders by salary, highest first.
func BySalaryDesc(a, b *employee.Employee) bool {
	return a.Salary() > b.Salary()
}

// ByJoinDate orders by join date, earliest first.
func ByJoinDate(a, b *employee.Employee) bool {
	return a.JoinDate().Before(b.JoinDate())
}

// TotalPayroll sums every salary; an empty roster reports 0.
func (s *Store) TotalPayroll() float64 {
	var total float64
	for _, e := range s.entries {
		total += e.Salary()
	}
	return total
}

// AverageSalaryByRole reports the mean salary for every role. Roles with
// no members map to 0.
func (s *Store) AverageSalaryByRole() map[employee.Role]float64 {
	averages := make(map[employee.Role]float64, len(employee.Roles()))
	for _, role := range employee.Roles() {
		var sum float64
		var count int
		for _, e := range s.entries {
			if e.Role() == role {
				sum += e.Salary()
				count++
			}
		}
		if count > 0 {
			averages[role] = sum / float64(count)
		} else {
			averages[role] = 0
		}
	}
	return averages
}

// ReplaceAll swaps in a freshly loaded roster. The previous contents
// survive untouched if the replacement repeats an id, so a failed load
// never half-applies.
func (s *Store) ReplaceAll(entries []*employee.Employee) error {
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID()]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, e.ID())
		}
		seen[e.ID()] = struct{}{}
	}
	s.entries = append([]*employee.Employee(nil), entries...)
	return nil
}
