package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentstation/coursemap/internal/server/response"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/constants"
	"github.com/agentstation/coursemap/pkg/errors"
)

// department looks up a department copy for a read route.
func department(cat *catalogs.Catalog, code string) (*catalogs.Department, error) {
	d, ok := cat.Lookup(code)
	if !ok {
		return nil, errors.NewNotFoundError("department", code)
	}
	return d, nil
}

// HandleRetrieveDepartment handles GET /retrieveDept?deptCode=.
// The body is the department rendering: one line pair per course.
func (h *Handlers) HandleRetrieveDepartment(w http.ResponseWriter, r *http.Request) {
	p, ok := params(w, r, ParamDept)
	if !ok {
		return
	}
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	h.cachedText(w, r, cat, func() (string, error) {
		d, err := department(cat, p[0])
		if err != nil {
			return "", err
		}
		return d.String(), nil
	})
}

// HandleMajorCount handles GET /getMajorCountFromDept?deptCode=.
func (h *Handlers) HandleMajorCount(w http.ResponseWriter, r *http.Request) {
	p, ok := params(w, r, ParamDept)
	if !ok {
		return
	}
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	h.cachedText(w, r, cat, func() (string, error) {
		d, err := department(cat, p[0])
		if err != nil {
			return "", err
		}
		return "There are: " + strconv.Itoa(d.Majors()) + " majors in the department", nil
	})
}

// HandleDepartmentChair handles GET /idDeptChair?deptCode=.
func (h *Handlers) HandleDepartmentChair(w http.ResponseWriter, r *http.Request) {
	p, ok := params(w, r, ParamDept)
	if !ok {
		return
	}
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	h.cachedText(w, r, cat, func() (string, error) {
		d, err := department(cat, p[0])
		if err != nil {
			return "", err
		}
		return d.Chair() + " is the department chair.", nil
	})
}

// HandleAddMajor handles GET|PATCH /addMajorToDept?deptCode=.
func (h *Handlers) HandleAddMajor(w http.ResponseWriter, r *http.Request) {
	h.updateDepartment(w, r, "add_major", func(d *catalogs.Department) bool {
		d.AddMajor()
		return true
	})
}

// HandleRemoveMajor handles GET|PATCH /removeMajorFromDept?deptCode=.
// Removing a major from a department with none succeeds without a change.
func (h *Handlers) HandleRemoveMajor(w http.ResponseWriter, r *http.Request) {
	h.updateDepartment(w, r, "remove_major", func(d *catalogs.Department) bool {
		before := d.Majors()
		d.RemoveMajor()
		return d.Majors() != before
	})
}

func (h *Handlers) updateDepartment(w http.ResponseWriter, r *http.Request, operation string, fn func(*catalogs.Department) bool) {
	p, ok := params(w, r, ParamDept)
	if !ok {
		return
	}
	cat, ok := h.catalog(w)
	if !ok {
		return
	}
	changed, err := cat.UpdateDepartment(p[0], fn)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if changed {
		h.mutated(r, operation, p[0], "")
	}
	response.TextOK(w, constants.MsgMajorUpdated)
}
