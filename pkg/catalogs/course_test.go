package catalogs_test

import (
	"testing"

	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/stretchr/testify/assert"
)

func TestCourseZeroValue(t *testing.T) {
	var c catalogs.Course
	assert.Empty(t, c.Location())
	assert.Empty(t, c.Instructor())
	assert.Empty(t, c.TimeSlot())
	assert.False(t, c.Drop(), "empty course cannot drop")
	assert.True(t, c.IsFull(), "zero capacity is full")
}

func TestCourseGetters(t *testing.T) {
	c := catalogs.NewCourse(120, "Gail Kaiser", "501 NWC", "10:10-11:25")
	assert.Equal(t, 120, c.Capacity())
	assert.Equal(t, 0, c.Enrolled())
	assert.Equal(t, "501 NWC", c.Location())
	assert.Equal(t, "Gail Kaiser", c.Instructor())
	assert.Equal(t, "10:10-11:25", c.TimeSlot())
}

func TestCourseNegativeCapacity(t *testing.T) {
	c := catalogs.NewCourse(-5, "a", "b", "c")
	assert.Equal(t, 0, c.Capacity())
}

func TestCourseString(t *testing.T) {
	c := catalogs.NewCourse(250, "Griffin Newbold", "417 IAB", "11:40-12:55")
	assert.Equal(t, "\nInstructor: Griffin Newbold; Location: 417 IAB; Time: 11:40-12:55", c.String())
}

func TestCourseEnroll(t *testing.T) {
	c := catalogs.NewCourse(10, "Gail Kaiser", "501 NWC", "10:10-11:25")
	for i := 0; i < 10; i++ {
		assert.False(t, c.IsFull())
		assert.True(t, c.Enroll())
	}
	assert.True(t, c.IsFull())
	assert.False(t, c.Enroll())
	assert.Equal(t, 10, c.Enrolled(), "failed enroll must not mutate")
}

func TestCourseDrop(t *testing.T) {
	c := catalogs.NewCourse(10, "Gail Kaiser", "501 NWC", "10:10-11:25")
	assert.False(t, c.IsFull())

	c.SetEnrolled(10)
	assert.True(t, c.IsFull())

	for i := 10; i > 0; i-- {
		assert.True(t, c.Drop())
		assert.Equal(t, i-1, c.Enrolled())
	}
	assert.False(t, c.Drop())
	assert.Equal(t, 0, c.Enrolled())
}

func TestCourseSetEnrolledBypassesBounds(t *testing.T) {
	c := catalogs.NewCourse(50, "Uday Menon", "627 MUDD", "11:40-12:55")

	c.SetEnrolled(52)
	assert.Equal(t, 52, c.Enrolled())
	assert.True(t, c.IsFull())
	assert.False(t, c.Enroll())
	assert.True(t, c.Drop())
	assert.Equal(t, 51, c.Enrolled())

	c.SetEnrolled(-3)
	assert.Equal(t, -3, c.Enrolled())
	assert.False(t, c.Drop())
}

func TestCourseReassign(t *testing.T) {
	c := catalogs.NewCourse(10, "Gail Kaiser", "501 NWC", "10:10-11:25")
	c.ReassignLocation("417 IAB")
	c.ReassignInstructor("Adam Cannon")
	c.ReassignTime("11:40-12:55")

	assert.Equal(t, "417 IAB", c.Location())
	assert.Equal(t, "Adam Cannon", c.Instructor())
	assert.Equal(t, "11:40-12:55", c.TimeSlot())
}

func TestCourseEqual(t *testing.T) {
	base := func() *catalogs.Course {
		return catalogs.NewCourse(10, "Gail Kaiser", "501 NWC", "10:10-11:25")
	}

	tests := []struct {
		name  string
		other func() *catalogs.Course
		want  bool
	}{
		{"identical", base, true},
		{"capacity differs", func() *catalogs.Course {
			return catalogs.NewCourse(11, "Gail Kaiser", "501 NWC", "10:10-11:25")
		}, false},
		{"enrollment differs", func() *catalogs.Course {
			c := base()
			c.SetEnrolled(1)
			return c
		}, false},
		{"location differs", func() *catalogs.Course {
			c := base()
			c.ReassignLocation("417 IAB")
			return c
		}, false},
		{"nil", func() *catalogs.Course { return nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base().Equal(tt.other()))
		})
	}

	var a, b *catalogs.Course
	assert.True(t, a.Equal(b))
}

func TestCourseClone(t *testing.T) {
	c := catalogs.NewCourse(10, "Gail Kaiser", "501 NWC", "10:10-11:25")
	clone := c.Clone()
	assert.True(t, c.Equal(clone))

	clone.Enroll()
	assert.Equal(t, 0, c.Enrolled())
	assert.False(t, c.Equal(clone))
}
