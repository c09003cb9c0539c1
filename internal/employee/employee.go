// Package employee holds the roster's entity model: the Employee record,
// the closed Role set, and the validation rules both enforce.
package employee

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidAge rejects ages of 18 or below, on construction and update.
	ErrInvalidAge = errors.New("employee: age must be above 18")

	// ErrInvalidJoinDate rejects join dates after the current date.
	ErrInvalidJoinDate = errors.New("employee: join date is in the future")

	// ErrInvalidSelector rejects role selectors outside 1-3.
	ErrInvalidSelector = errors.New("employee: unknown role selector")

	// ErrInvalidRole rejects role labels outside INTERN/FRESHER/SENIOR.
	ErrInvalidRole = errors.New("employee: unknown role")
)

// Clock supplies the current time. The store and the shell inject it so
// join-date validation and experience math stay deterministic in tests.
type Clock func() time.Time

// Employee is one roster entry. ID and join date are fixed at
// construction; everything else mutates through the setters so the age
// invariant cannot be bypassed.
type Employee struct {
	id       int
	name     string
	age      int
	salary   float64
	role     Role
	joinDate time.Time
}

// New validates and builds an Employee. The now argument anchors the
// join-date check.
func New(id int, name string, age int, salary float64, role Role, joinDate time.Time, now time.Time) (*Employee, error) {
	if age <= 18 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAge, age)
	}
	if joinDate.After(now) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJoinDate, joinDate.Format(time.DateOnly))
	}
	return &Employee{
		id:       id,
		name:     name,
		age:      age,
		salary:   salary,
		role:     role,
		joinDate: joinDate,
	}, nil
}

func (e *Employee) ID() int             { return e.id }
func (e *Employee) Name() string        { return e.name }
func (e *Employee) Age() int            { return e.age }
func (e *Employee) Salary() float64     { return e.salary }
func (e *Employee) Role() Role          { return e.role }
func (e *Employee) JoinDate() time.Time { return e.joinDate }

// SetName replaces the display name.
func (e *Employee) SetName(name string) { e.name = name }

// SetAge updates the age, re-applying the >18 invariant.
func (e *Employee) SetAge(age int) error {
	if age <= 18 {
		return fmt.Errorf("%w: got %d", ErrInvalidAge, age)
	}
	e.age = age
	return nil
}

// SetSalary replaces the salary outright.
func (e *Employee) SetSalary(salary float64) { e.salary = salary }

// SetRole moves the employee to a different role.
func (e *Employee) SetRole(role Role) { e.role = role }

// ApplyRaise scales the salary by pct percent. Negative values cut pay;
// values at or below -100 are passed through unclamped.
func (e *Employee) ApplyRaise(pct float64) {
	e.salary *= 1 + pct/100
}

// ExperienceYears reports whole calendar years between the join date and
// asOf. Partial years truncate: the count ticks up on the anniversary.
func (e *Employee) ExperienceYears(asOf time.Time) int {
	years := asOf.Year() - e.joinDate.Year()
	anniversary := time.Date(asOf.Year(), e.joinDate.Month(), e.joinDate.Day(), 0, 0, 0, 0, asOf.Location())
	if asOf.Before(anniversary) {
		years--
	}
	return years
}
