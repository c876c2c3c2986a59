package output

import (
	"io"
	"maps"
	"slices"

	"github.com/agentstation/coursemap/pkg/catalogs"
)

// DepartmentRow is the listing view of a department.
type DepartmentRow struct {
	Code    string `json:"code" yaml:"code"`
	Chair   string `json:"chair" yaml:"chair"`
	Majors  int    `json:"majors" yaml:"majors"`
	Courses int    `json:"courses" yaml:"courses"`
}

// CourseRow is the listing view of a course.
type CourseRow struct {
	Department string `json:"department" yaml:"department"`
	Course     string `json:"course" yaml:"course"`
	Instructor string `json:"instructor" yaml:"instructor"`
	Location   string `json:"location" yaml:"location"`
	Time       string `json:"time" yaml:"time"`
	Enrolled   int    `json:"enrolled" yaml:"enrolled"`
	Capacity   int    `json:"capacity" yaml:"capacity"`
	Full       bool   `json:"full" yaml:"full"`
}

// DepartmentRows lists every department in code order.
func DepartmentRows(cat *catalogs.Catalog) []DepartmentRow {
	departments := cat.Departments()
	rows := make([]DepartmentRow, 0, len(departments))
	for _, code := range slices.Sorted(maps.Keys(departments)) {
		d := departments[code]
		rows = append(rows, DepartmentRow{
			Code:    d.Code(),
			Chair:   d.Chair(),
			Majors:  d.Majors(),
			Courses: d.Len(),
		})
	}
	return rows
}

// CourseRows lists the courses of d in course-code order.
func CourseRows(d *catalogs.Department) []CourseRow {
	codes := d.CourseCodes()
	rows := make([]CourseRow, 0, len(codes))
	for _, code := range codes {
		c, _ := d.Course(code)
		rows = append(rows, CourseRow{
			Department: d.Code(),
			Course:     code,
			Instructor: c.Instructor(),
			Location:   c.Location(),
			Time:       c.TimeSlot(),
			Enrolled:   c.Enrolled(),
			Capacity:   c.Capacity(),
			Full:       c.IsFull(),
		})
	}
	return rows
}

// Write formats data to w.
func Write(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}
