package catalogs

import (
	"slices"
	"strings"
)

// Department owns a set of courses keyed by course code, plus its chair and
// major count. Like Course, it relies on the Catalog for synchronization.
// The zero value is an empty department with no code.
type Department struct {
	code    string
	chair   string
	majors  int
	courses map[string]*Course
}

// NewDepartment creates a department. The courses are copied, so later
// changes to the argument do not reach the department. A negative major
// count is treated as zero.
func NewDepartment(code, chair string, majors int, courses map[string]*Course) *Department {
	if majors < 0 {
		majors = 0
	}
	d := &Department{
		code:    code,
		chair:   chair,
		majors:  majors,
		courses: make(map[string]*Course, len(courses)),
	}
	for k, c := range courses {
		if c != nil {
			d.courses[k] = c.Clone()
		}
	}
	return d
}

// Code returns the department code, e.g. "COMS".
func (d *Department) Code() string { return d.code }

// Chair returns the department chair.
func (d *Department) Chair() string { return d.chair }

// Majors returns the number of declared majors.
func (d *Department) Majors() int { return d.majors }

// Len returns the number of courses.
func (d *Department) Len() int { return len(d.courses) }

// AddMajor increments the major count.
func (d *Department) AddMajor() {
	d.majors++
}

// RemoveMajor decrements the major count. At zero it does nothing.
func (d *Department) RemoveMajor() {
	if d.majors > 0 {
		d.majors--
	}
}

// Course returns the course stored under code. The pointer is owned by the
// department; callers outside a Catalog update must not retain it.
func (d *Department) Course(code string) (*Course, bool) {
	c, ok := d.courses[code]
	return c, ok
}

// CourseCodes returns the course codes in ascending order.
func (d *Department) CourseCodes() []string {
	codes := make([]string, 0, len(d.courses))
	for code := range d.courses {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// UpsertCourse stores a copy of course under code, replacing any existing
// entry. A nil course is ignored.
func (d *Department) UpsertCourse(code string, course *Course) {
	if course == nil {
		return
	}
	d.ensureCourses()
	d.courses[code] = course.Clone()
}

// CreateCourse adds a new course with zero enrollment and returns it.
func (d *Department) CreateCourse(code, instructor, location, timeSlot string, capacity int) *Course {
	c := NewCourse(capacity, instructor, location, timeSlot)
	d.ensureCourses()
	d.courses[code] = c
	return c
}

func (d *Department) ensureCourses() {
	if d.courses == nil {
		d.courses = make(map[string]*Course)
	}
}

// String renders every course in course-code order, one per line, as
// "<dept> <course>: " followed by the course rendering.
func (d *Department) String() string {
	var b strings.Builder
	for _, code := range d.CourseCodes() {
		b.WriteString(d.code)
		b.WriteString(" ")
		b.WriteString(code)
		b.WriteString(": ")
		b.WriteString(d.courses[code].String())
		b.WriteString("\n")
	}
	return b.String()
}

// Equal compares code, chair, majors and courses by value. Course order is
// irrelevant.
func (d *Department) Equal(other *Department) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.code != other.code || d.chair != other.chair || d.majors != other.majors {
		return false
	}
	if len(d.courses) != len(other.courses) {
		return false
	}
	for code, c := range d.courses {
		oc, ok := other.courses[code]
		if !ok || !c.Equal(oc) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (d *Department) Clone() *Department {
	if d == nil {
		return nil
	}
	return NewDepartment(d.code, d.chair, d.majors, d.courses)
}
