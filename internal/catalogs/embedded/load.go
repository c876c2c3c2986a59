// Package embedded decodes the reference catalog compiled into the binary.
package embedded

import (
	"github.com/goccy/go-yaml"

	embeddedCatalog "github.com/agentstation/coursemap/internal/embedded"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
)

// courseYAML is one entry of a department's courses block.
type courseYAML struct {
	Instructor string `yaml:"instructor"`
	Location   string `yaml:"location"`
	Time       string `yaml:"time"`
	Capacity   int    `yaml:"capacity"`
	Enrolled   int    `yaml:"enrolled"`
}

type departmentYAML struct {
	Chair   string                `yaml:"chair"`
	Majors  int                   `yaml:"majors"`
	Courses map[string]courseYAML `yaml:"courses"`
}

type catalogYAML struct {
	Departments map[string]departmentYAML `yaml:"departments"`
}

// Load returns the reference departments keyed by department code.
func Load() (map[string]*catalogs.Department, error) {
	data, err := embeddedCatalog.FS.ReadFile(embeddedCatalog.ReferencePath)
	if err != nil {
		return nil, errors.WrapIO("read", embeddedCatalog.ReferencePath, err)
	}
	return Parse(data)
}

// Parse decodes a catalog document in the reference YAML layout.
func Parse(data []byte) (map[string]*catalogs.Department, error) {
	var doc catalogYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", embeddedCatalog.ReferencePath, err)
	}

	departments := make(map[string]*catalogs.Department, len(doc.Departments))
	for code, d := range doc.Departments {
		if d.Majors < 0 {
			return nil, errors.NewValidationError("majors", d.Majors, "department "+code+" has a negative major count")
		}
		dept := catalogs.NewDepartment(code, d.Chair, d.Majors, nil)
		for courseCode, c := range d.Courses {
			if c.Capacity < 0 {
				return nil, errors.NewValidationError("capacity", c.Capacity, "course "+code+" "+courseCode+" has a negative capacity")
			}
			course := dept.CreateCourse(courseCode, c.Instructor, c.Location, c.Time, c.Capacity)
			course.SetEnrolled(c.Enrolled)
		}
		departments[code] = dept
	}
	return departments, nil
}

// NewCatalog builds a catalog holding the reference departments.
func NewCatalog(opts ...catalogs.Option) (*catalogs.Catalog, error) {
	departments, err := Load()
	if err != nil {
		return nil, errors.WrapResource("seed", "catalog", "", err)
	}
	cat := catalogs.New(opts...)
	cat.ReplaceAll(departments)
	return cat, nil
}
