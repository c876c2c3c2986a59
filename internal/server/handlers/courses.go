package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentstation/coursemap/internal/server/response"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/constants"
)

// courseText serves a read route that renders one course.
func (h *Handlers) courseText(w http.ResponseWriter, r *http.Request, render func(*catalogs.Course) string) {
	p, ok := params(w, r, ParamDept, ParamCourse)
	if !ok {
		return
	}
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	h.cachedText(w, r, cat, func() (string, error) {
		c, err := cat.Course(p[0], p[1])
		if err != nil {
			return "", err
		}
		return render(c), nil
	})
}

// HandleRetrieveCourse handles GET /retrieveCourse?deptCode=&courseCode=.
func (h *Handlers) HandleRetrieveCourse(w http.ResponseWriter, r *http.Request) {
	h.courseText(w, r, (*catalogs.Course).String)
}

// HandleIsCourseFull handles GET /isCourseFull?deptCode=&courseCode=.
func (h *Handlers) HandleIsCourseFull(w http.ResponseWriter, r *http.Request) {
	h.courseText(w, r, func(c *catalogs.Course) string {
		return strconv.FormatBool(c.IsFull())
	})
}

// HandleCourseLocation handles GET /findCourseLocation?deptCode=&courseCode=.
func (h *Handlers) HandleCourseLocation(w http.ResponseWriter, r *http.Request) {
	h.courseText(w, r, func(c *catalogs.Course) string {
		return c.Location() + " is where the course is located."
	})
}

// HandleCourseInstructor handles GET /findCourseInstructor?deptCode=&courseCode=.
func (h *Handlers) HandleCourseInstructor(w http.ResponseWriter, r *http.Request) {
	h.courseText(w, r, func(c *catalogs.Course) string {
		return c.Instructor() + " is the instructor for the course."
	})
}

// HandleCourseTime handles GET /findCourseTime?deptCode=&courseCode=.
func (h *Handlers) HandleCourseTime(w http.ResponseWriter, r *http.Request) {
	h.courseText(w, r, func(c *catalogs.Course) string {
		return "The course meets at: " + c.TimeSlot()
	})
}

// HandleEnroll handles GET|PATCH /enrollStudentInCourse?deptCode=&courseCode=.
// A full course answers 400.
func (h *Handlers) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	p, ok := params(w, r, ParamDept, ParamCourse)
	if !ok {
		return
	}
	h.updateCourse(w, r, "enroll", p[0], p[1], (*catalogs.Course).Enroll,
		constants.MsgStudentEnrolled, constants.MsgStudentNotEnrolled)
}

// HandleDrop handles GET|PATCH /dropStudentFromCourse?deptCode=&courseCode=.
// An empty course answers 400.
func (h *Handlers) HandleDrop(w http.ResponseWriter, r *http.Request) {
	p, ok := params(w, r, ParamDept, ParamCourse)
	if !ok {
		return
	}
	h.updateCourse(w, r, "drop", p[0], p[1], (*catalogs.Course).Drop,
		constants.MsgStudentDropped, constants.MsgStudentNotDropped)
}

// HandleSetEnrollmentCount handles PATCH /setEnrollmentCount?deptCode=&courseCode=&count=.
// The count overwrites enrollment unconditionally, even beyond capacity.
func (h *Handlers) HandleSetEnrollmentCount(w http.ResponseWriter, r *http.Request) {
	p, ok := params(w, r, ParamDept, ParamCourse, ParamCount)
	if !ok {
		return
	}
	count, err := strconv.ParseInt(p[2], 10, 32)
	if err != nil {
		response.BadRequest(w, constants.MsgInvalidCount)
		return
	}
	h.reassign(w, r, "set_enrollment", p[0], p[1], func(c *catalogs.Course) bool {
		if c.Enrolled() == int(count) {
			return false
		}
		c.SetEnrolled(int(count))
		return true
	})
}

// HandleChangeLocation handles PATCH /changeCourseLocation?deptCode=&courseCode=&location=.
func (h *Handlers) HandleChangeLocation(w http.ResponseWriter, r *http.Request) {
	h.reassignString(w, r, "change_location", ParamLocation, (*catalogs.Course).Location, (*catalogs.Course).ReassignLocation)
}

// HandleChangeInstructor handles PATCH /changeCourseTeacher?deptCode=&courseCode=&instructor=.
func (h *Handlers) HandleChangeInstructor(w http.ResponseWriter, r *http.Request) {
	h.reassignString(w, r, "change_instructor", ParamInstructor, (*catalogs.Course).Instructor, (*catalogs.Course).ReassignInstructor)
}

// HandleChangeTime handles PATCH /changeCourseTime?deptCode=&courseCode=&time=.
func (h *Handlers) HandleChangeTime(w http.ResponseWriter, r *http.Request) {
	h.reassignString(w, r, "change_time", ParamTime, (*catalogs.Course).TimeSlot, (*catalogs.Course).ReassignTime)
}

func (h *Handlers) reassignString(
	w http.ResponseWriter,
	r *http.Request,
	operation, param string,
	get func(*catalogs.Course) string,
	set func(*catalogs.Course, string),
) {
	p, ok := params(w, r, ParamDept, ParamCourse, param)
	if !ok {
		return
	}
	value := p[2]
	h.reassign(w, r, operation, p[0], p[1], func(c *catalogs.Course) bool {
		if get(c) == value {
			return false
		}
		set(c, value)
		return true
	})
}

// reassign applies an unconditional course update; it always succeeds once
// the course is found.
func (h *Handlers) reassign(w http.ResponseWriter, r *http.Request, operation, dept, course string, fn func(*catalogs.Course) bool) {
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	changed, err := cat.UpdateCourse(dept, course, fn)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if changed {
		h.mutated(r, operation, dept, course)
	}
	response.TextOK(w, constants.MsgAttributeUpdated)
}

// updateCourse applies a conditional course update and answers with okMsg,
// or 400 failMsg when fn reports no change.
func (h *Handlers) updateCourse(w http.ResponseWriter, r *http.Request, operation, dept, course string, fn func(*catalogs.Course) bool, okMsg, failMsg string) {
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	changed, err := cat.UpdateCourse(dept, course, fn)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if !changed {
		response.BadRequest(w, failMsg)
		return
	}
	h.mutated(r, operation, dept, course)
	response.TextOK(w, okMsg)
}
