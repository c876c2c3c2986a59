// Package catalogs provides the academic catalog: departments that own
// courses, held in a Catalog that serializes all access behind a single lock
// and round-trips itself through a compact binary file.
//
// Example usage:
//
//	cat := catalogs.New(catalogs.WithPath("./coursemap.bin"))
//	cat.ReplaceAll(seed)
//
//	ok, err := cat.UpdateCourse("COMS", "1004", func(c *catalogs.Course) bool {
//	    return c.Enroll()
//	})
//
//	if err := cat.Save(); err != nil {
//	    log.Fatal(err)
//	}
package catalogs

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentstation/coursemap/pkg/errors"
)

// Catalog owns every department. All reads and writes take the catalog lock
// for their full duration. Values handed out by read methods are copies.
type Catalog struct {
	options *catalogOptions
	id      uint64

	mu          sync.RWMutex
	departments map[string]*Department
	revision    uint64
	observer    Observer
}

var lastID atomic.Uint64

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	return &Catalog{
		options:     catalogDefaults().apply(opts...),
		id:          lastID.Add(1),
		departments: make(map[string]*Department),
	}
}

// Path returns the file used by Save and Load.
func (cat *Catalog) Path() string {
	return cat.options.path
}

// Width returns the length-prefix width used by Save and Load.
func (cat *Catalog) Width() Width {
	return cat.options.width
}

// SetObserver registers fn to receive every committed change. Pass nil to
// stop notifications.
func (cat *Catalog) SetObserver(fn Observer) {
	cat.mu.Lock()
	cat.observer = fn
	cat.mu.Unlock()
}

// ID identifies this catalog instance within the process. Two catalogs
// never share an ID, even when their revisions match.
func (cat *Catalog) ID() uint64 {
	return cat.id
}

// Revision increases with every committed change.
func (cat *Catalog) Revision() uint64 {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return cat.revision
}

// Len returns the number of departments.
func (cat *Catalog) Len() int {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return len(cat.departments)
}

// ReplaceAll discards the current contents and stores copies of departments.
func (cat *Catalog) ReplaceAll(departments map[string]*Department) {
	fresh := make(map[string]*Department, len(departments))
	for key, d := range departments {
		if d != nil {
			fresh[key] = d.Clone()
		}
	}
	cat.swap(fresh)
}

// swap installs an already-owned mapping.
func (cat *Catalog) swap(departments map[string]*Department) {
	cat.mu.Lock()
	cat.departments = departments
	change := cat.commit(CatalogReplaced, "", "")
	obs := cat.observer
	cat.mu.Unlock()

	if obs != nil {
		obs(change)
	}
}

// commit must be called with the write lock held.
func (cat *Catalog) commit(t ChangeType, dept, course string) Change {
	cat.revision++
	return Change{
		Type:       t,
		Department: dept,
		Course:     course,
		Revision:   cat.revision,
		Timestamp:  time.Now(),
	}
}

// Lookup returns a copy of the department stored under code. A miss is not
// an error.
func (cat *Catalog) Lookup(code string) (*Department, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	d, ok := cat.departments[code]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// Course returns a copy of one course. The error is a *errors.NotFoundError
// whose Resource is "department" or "course".
func (cat *Catalog) Course(deptCode, courseCode string) (*Course, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	c, err := cat.course(deptCode, courseCode)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (cat *Catalog) course(deptCode, courseCode string) (*Course, error) {
	d, ok := cat.departments[deptCode]
	if !ok {
		return nil, errors.NewNotFoundError("department", deptCode)
	}
	c, ok := d.courses[courseCode]
	if !ok {
		return nil, errors.NewNotFoundError("course", deptCode+" "+courseCode)
	}
	return c, nil
}

// DepartmentCodes returns the department keys in ascending order.
func (cat *Catalog) DepartmentCodes() []string {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return sortedKeys(cat.departments)
}

// Departments returns a deep copy of every department.
func (cat *Catalog) Departments() map[string]*Department {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	out := make(map[string]*Department, len(cat.departments))
	for key, d := range cat.departments {
		out[key] = d.Clone()
	}
	return out
}

// UpdateDepartment runs fn on the live department under the write lock. fn
// reports whether it changed anything; only then is the revision bumped and
// observers notified. The returned bool is fn's result.
func (cat *Catalog) UpdateDepartment(code string, fn func(*Department) bool) (bool, error) {
	cat.mu.Lock()
	d, ok := cat.departments[code]
	if !ok {
		cat.mu.Unlock()
		return false, errors.NewNotFoundError("department", code)
	}
	changed := fn(d)
	var change Change
	if changed {
		change = cat.commit(DepartmentUpdated, code, "")
	}
	obs := cat.observer
	cat.mu.Unlock()

	if changed && obs != nil {
		obs(change)
	}
	return changed, nil
}

// UpdateCourse runs fn on the live course under the write lock. Semantics
// match UpdateDepartment.
func (cat *Catalog) UpdateCourse(deptCode, courseCode string, fn func(*Course) bool) (bool, error) {
	cat.mu.Lock()
	c, err := cat.course(deptCode, courseCode)
	if err != nil {
		cat.mu.Unlock()
		return false, err
	}
	changed := fn(c)
	var change Change
	if changed {
		change = cat.commit(CourseUpdated, deptCode, courseCode)
	}
	obs := cat.observer
	cat.mu.Unlock()

	if changed && obs != nil {
		obs(change)
	}
	return changed, nil
}

// String renders the whole catalog in department-key order:
//
//	For the COMS department:
//	<department rendering>
func (cat *Catalog) String() string {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	var b strings.Builder
	for _, key := range sortedKeys(cat.departments) {
		b.WriteString("For the ")
		b.WriteString(key)
		b.WriteString(" department:\n")
		b.WriteString(cat.departments[key].String())
		b.WriteString("\n")
	}
	return b.String()
}

// Equal compares department contents by key. Options, revision and observer
// are ignored.
func (cat *Catalog) Equal(other *Catalog) bool {
	if cat == nil || other == nil {
		return cat == other
	}
	if cat == other {
		return true
	}
	a := cat.Departments()
	b := other.Departments()
	if len(a) != len(b) {
		return false
	}
	for key, d := range a {
		od, ok := b[key]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}
