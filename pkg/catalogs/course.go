package catalogs

import "fmt"

// Course is the mutable state of a single course offering.
//
// Enroll and Drop keep the enrollment within [0, capacity]. SetEnrolled is
// an administrative override and may leave a course over or under capacity.
// A Course is not safe for concurrent use on its own; the owning Catalog
// serializes access.
type Course struct {
	capacity   int
	enrolled   int
	location   string
	instructor string
	timeSlot   string
}

// NewCourse creates a course with zero enrollment. Negative capacities are
// treated as zero.
func NewCourse(capacity int, instructor, location, timeSlot string) *Course {
	if capacity < 0 {
		capacity = 0
	}
	return &Course{
		capacity:   capacity,
		location:   location,
		instructor: instructor,
		timeSlot:   timeSlot,
	}
}

// Capacity returns the maximum enrollment.
func (c *Course) Capacity() int { return c.capacity }

// Enrolled returns the current enrollment.
func (c *Course) Enrolled() int { return c.enrolled }

// Location returns where the course meets.
func (c *Course) Location() string { return c.location }

// Instructor returns who teaches the course.
func (c *Course) Instructor() string { return c.instructor }

// TimeSlot returns when the course meets.
func (c *Course) TimeSlot() string { return c.timeSlot }

// IsFull reports whether enrollment has reached capacity.
func (c *Course) IsFull() bool {
	return c.enrolled >= c.capacity
}

// Enroll adds one student if the course is not full.
func (c *Course) Enroll() bool {
	if c.IsFull() {
		return false
	}
	c.enrolled++
	return true
}

// Drop removes one student if anyone is enrolled.
func (c *Course) Drop() bool {
	if c.enrolled <= 0 {
		return false
	}
	c.enrolled--
	return true
}

// SetEnrolled overwrites the enrollment count without any bounds check.
func (c *Course) SetEnrolled(count int) {
	c.enrolled = count
}

// ReassignLocation moves the course.
func (c *Course) ReassignLocation(location string) {
	c.location = location
}

// ReassignInstructor changes who teaches the course.
func (c *Course) ReassignInstructor(instructor string) {
	c.instructor = instructor
}

// ReassignTime changes when the course meets.
func (c *Course) ReassignTime(timeSlot string) {
	c.timeSlot = timeSlot
}

// String renders the course the way the API returns it. The leading newline
// is part of the format.
func (c *Course) String() string {
	return fmt.Sprintf("\nInstructor: %s; Location: %s; Time: %s", c.instructor, c.location, c.timeSlot)
}

// Equal reports structural equality. Two nil courses are equal.
func (c *Course) Equal(other *Course) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Clone returns an independent copy.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
