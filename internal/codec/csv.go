// Package codec converts the roster to and from its CSV file format:
// a fixed header line followed by one six-field line per employee.
// Fields are joined raw, no quoting, so names must not contain commas.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crewdesk/crewdesk/internal/employee"
)

// Header is the first line of every roster file. Decode discards the
// first line without checking it against this value.
const Header = "id,name,age,salary,role,joinDate"

const fieldCount = 6

// ErrMalformedRecord reports a data line with fewer than six fields.
var ErrMalformedRecord = errors.New("codec: malformed record")

// Encode writes the header and one line per employee in roster order.
func Encode(w io.Writer, entries []*employee.Employee) error {
	out := bufio.NewWriter(w)
	if _, err := out.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("codec: write header: %w", err)
	}
	for _, e := range entries {
		line := strings.Join([]string{
			strconv.Itoa(e.ID()),
			e.Name(),
			strconv.Itoa(e.Age()),
			strconv.FormatFloat(e.Salary(), 'f', -1, 64),
			e.Role().String(),
			e.JoinDate().Format(time.DateOnly),
		}, ",")
		if _, err := out.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("codec: write record %d: %w", e.ID(), err)
		}
	}
	return out.Flush()
}

// Decode parses a roster file. The first line is skipped as the header,
// blank lines are ignored, and every record is rebuilt through
// employee.New with now anchoring the join-date check, so historical
// rows that violate the entity invariants fail the whole load. Decode
// returns either every employee or an error, never a partial roster.
func Decode(r io.Reader, now time.Time) ([]*employee.Employee, error) {
	scanner := bufio.NewScanner(r)
	entries := []*employee.Employee{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		e, err := decodeRecord(line, now)
		if err != nil {
			return nil, fmt.Errorf("codec: line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("codec: read: %w", err)
	}
	return entries, nil
}

func decodeRecord(line string, now time.Time) (*employee.Employee, error) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return nil, fmt.Errorf("%w: %d of %d fields", ErrMalformedRecord, len(fields), fieldCount)
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	age, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("age: %w", err)
	}
	salary, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("salary: %w", err)
	}
	role, err := employee.ParseRole(fields[4])
	if err != nil {
		return nil, err
	}
	joinDate, err := time.Parse(time.DateOnly, fields[5])
	if err != nil {
		return nil, fmt.Errorf("joinDate: %w", err)
	}
	return employee.New(id, fields[1], age, salary, role, joinDate, now)
}

// SaveFile writes the roster to path, replacing any previous contents.
func SaveFile(path string, entries []*employee.Employee) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create %s: %w", path, err)
	}
	if err := Encode(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads the roster from path.
func LoadFile(path string, now time.Time) ([]*employee.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, now)
}
