package codec

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk/internal/employee"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustEmployee(t *testing.T, id int, name string, age int, salary float64, role employee.Role, join time.Time) *employee.Employee {
	t.Helper()
	e, err := employee.New(id, name, age, salary, role, join, testNow)
	if err != nil {
		t.Fatalf("employee %d: %v", id, err)
	}
	return e
}

func TestEncodeWritesHeaderAndRecords(t *testing.T) {
	entries := []*employee.Employee{
		mustEmployee(t, 1, "Asha Rao", 25, 1000, employee.RoleFresher, date(2020, time.January, 1)),
		mustEmployee(t, 2, "Bina", 30, 2000.5, employee.RoleSenior, date(2019, time.January, 1)),
	}
	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "id,name,age,salary,role,joinDate\n" +
		"1,Asha Rao,25,1000,FRESHER,2020-01-01\n" +
		"2,Bina,30,2000.5,SENIOR,2019-01-01\n"
	if buf.String() != want {
		t.Fatalf("encoded =\n%s\nwant =\n%s", buf.String(), want)
	}
}

func TestRoundTripPreservesFieldsAndOrder(t *testing.T) {
	entries := []*employee.Employee{
		mustEmployee(t, 3, "chirag", 22, 500.25, employee.RoleIntern, date(2024, time.March, 10)),
		mustEmployee(t, 1, "Asha", 25, 1100.0000001, employee.RoleFresher, date(2020, time.January, 1)),
		mustEmployee(t, 2, "Bina", 30, 2000, employee.RoleSenior, date(2019, time.January, 1)),
	}
	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(&buf, testNow)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(entries) {
		t.Fatalf("len = %d, want %d", len(decoded), len(entries))
	}
	for i, want := range entries {
		got := decoded[i]
		if got.ID() != want.ID() || got.Name() != want.Name() || got.Age() != want.Age() ||
			got.Salary() != want.Salary() || got.Role() != want.Role() || !got.JoinDate().Equal(want.JoinDate()) {
			t.Fatalf("entry %d mismatch: got id=%d name=%q age=%d salary=%v role=%s join=%s",
				i, got.ID(), got.Name(), got.Age(), got.Salary(), got.Role(), got.JoinDate().Format(time.DateOnly))
		}
	}
}

func TestDecodeSkipsAnyFirstLineAndBlanks(t *testing.T) {
	// The first line is discarded without being checked against Header.
	input := "this is not the expected header\n" +
		"\n" +
		"1,Asha,25,1000,FRESHER,2020-01-01\n" +
		"   \n" +
		"2,Bina,30,2000,SENIOR,2019-01-01\n"
	decoded, err := Decode(strings.NewReader(input), testNow)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len = %d, want 2", len(decoded))
	}
}

func TestDecodeEmptyInputYieldsEmptyRoster(t *testing.T) {
	decoded, err := Decode(strings.NewReader(""), testNow)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("len = %d, want 0", len(decoded))
	}
}

func TestDecodeMalformedRecord(t *testing.T) {
	input := Header + "\n1,Asha,25,1000,FRESHER\n"
	_, err := Decode(strings.NewReader(input), testNow)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestDecodeInvalidRole(t *testing.T) {
	input := Header + "\n1,Asha,25,1000,MANAGER,2020-01-01\n"
	_, err := Decode(strings.NewReader(input), testNow)
	if !errors.Is(err, employee.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestDecodeParseFailures(t *testing.T) {
	cases := []string{
		"x,Asha,25,1000,FRESHER,2020-01-01",  // id
		"1,Asha,old,1000,FRESHER,2020-01-01", // age
		"1,Asha,25,lots,FRESHER,2020-01-01",  // salary
		"1,Asha,25,1000,FRESHER,01/01/2020",  // date
	}
	for _, line := range cases {
		_, err := Decode(strings.NewReader(Header+"\n"+line+"\n"), testNow)
		if err == nil {
			t.Fatalf("line %q decoded without error", line)
		}
	}
}

func TestDecodeReenforcesEntityInvariants(t *testing.T) {
	// A historical row with age <= 18 fails the whole load.
	input := Header + "\n1,Asha,17,1000,FRESHER,2020-01-01\n"
	_, err := Decode(strings.NewReader(input), testNow)
	if !errors.Is(err, employee.ErrInvalidAge) {
		t.Fatalf("err = %v, want ErrInvalidAge", err)
	}

	// So does a join date after the load-time clock.
	input = Header + "\n1,Asha,25,1000,FRESHER,2030-01-01\n"
	_, err = Decode(strings.NewReader(input), testNow)
	if !errors.Is(err, employee.ErrInvalidJoinDate) {
		t.Fatalf("err = %v, want ErrInvalidJoinDate", err)
	}
}

func TestDecodeFailureIsAllOrNothing(t *testing.T) {
	input := Header + "\n" +
		"1,Asha,25,1000,FRESHER,2020-01-01\n" +
		"2,Bina,30,broken,SENIOR,2019-01-01\n" +
		"3,Chirag,22,500,INTERN,2024-03-10\n"
	decoded, err := Decode(strings.NewReader(input), testNow)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if decoded != nil {
		t.Fatalf("failed decode must not return partial entries")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "employees.csv")
	entries := []*employee.Employee{
		mustEmployee(t, 1, "Asha", 25, 1000, employee.RoleFresher, date(2020, time.January, 1)),
	}
	if err := SaveFile(path, entries); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), Header+"\n") {
		t.Fatalf("file missing header: %q", string(data))
	}
	loaded, err := LoadFile(path, testNow)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name() != "Asha" {
		t.Fatalf("unexpected load result: %+v", loaded)
	}
}
