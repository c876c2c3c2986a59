package catalogs

import (
	"github.com/agentstation/coursemap/internal/catalogs/persistence"
	"github.com/agentstation/coursemap/pkg/errors"
)

// MarshalBinary encodes the catalog with its configured width.
func (cat *Catalog) MarshalBinary() ([]byte, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	return Codec{Width: cat.options.width}.Encode(cat.departments)
}

// UnmarshalBinary replaces the catalog contents with the decoded data. On
// error the catalog is left unchanged.
func (cat *Catalog) UnmarshalBinary(data []byte) error {
	departments, err := Codec{Width: cat.options.width}.Decode(data)
	if err != nil {
		return err
	}
	cat.swap(departments)
	return nil
}

// Save writes the catalog to its configured path.
func (cat *Catalog) Save() error {
	return cat.SaveTo(cat.options.path)
}

// SaveTo writes the catalog to path, replacing the file atomically.
func (cat *Catalog) SaveTo(path string) error {
	data, err := cat.MarshalBinary()
	if err != nil {
		return errors.WrapResource("save", "catalog", "", err)
	}
	if err := persistence.WriteFile(path, data); err != nil {
		return errors.WrapResource("save", "catalog", "", err)
	}
	return nil
}

// Load replaces the catalog contents with the file at its configured path.
func (cat *Catalog) Load() error {
	return cat.LoadFrom(cat.options.path)
}

// LoadFrom replaces the catalog contents with the file at path. Unreadable
// and malformed files both return an error and leave the catalog unchanged;
// malformed files additionally satisfy errors.IsCorrupt.
func (cat *Catalog) LoadFrom(path string) error {
	data, err := persistence.ReadFile(path)
	if err != nil {
		return errors.WrapResource("load", "catalog", "", err)
	}
	if err := cat.UnmarshalBinary(data); err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return errors.WrapResource("load", "catalog", "", err)
	}
	return nil
}
