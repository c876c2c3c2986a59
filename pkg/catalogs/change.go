package catalogs

import "time"

// ChangeType identifies what a mutation touched.
type ChangeType string

const (
	// DepartmentUpdated is emitted when a department-level field changes.
	DepartmentUpdated ChangeType = "department.updated"
	// CourseUpdated is emitted when a course changes.
	CourseUpdated ChangeType = "course.updated"
	// CatalogReplaced is emitted after ReplaceAll or Load.
	CatalogReplaced ChangeType = "catalog.replaced"
)

// Change describes a committed mutation.
type Change struct {
	Type       ChangeType `json:"type"`
	Department string     `json:"department,omitempty"`
	Course     string     `json:"course,omitempty"`
	Revision   uint64     `json:"revision"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Observer is called after a mutation is committed and the catalog lock has
// been released, so it may read the catalog.
type Observer func(Change)
