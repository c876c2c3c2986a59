// Package catalog provides common catalog operations for CLI commands.
package catalog

import (
	"context"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/cmd/application"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
)

// Load starts the application's service in inspect mode, unless it is
// already running, and returns its catalog. Inspect mode reads the data file
// (or seeds when it is missing) and never writes it back.
func Load(ctx context.Context, app application.Application) (*catalogs.Catalog, error) {
	cm, err := app.Coursemap()
	if err != nil {
		return nil, err
	}

	if cm.State() == coursemap.StateFresh {
		if err := cm.Start(ctx, coursemap.ModeInspect); err != nil {
			return nil, err
		}
	}

	cat, err := cm.Catalog()
	if err != nil {
		return nil, errors.WrapResource("get", "catalog", "", err)
	}
	return cat, nil
}

// Department returns a copy of the department stored under code.
func Department(cat *catalogs.Catalog, code string) (*catalogs.Department, error) {
	d, ok := cat.Lookup(code)
	if !ok {
		return nil, errors.NewNotFoundError("department", code)
	}
	return d, nil
}
