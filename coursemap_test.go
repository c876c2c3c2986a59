package coursemap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/coursemap/internal/catalogs/embedded"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
	"github.com/agentstation/coursemap/pkg/logging"
)

func newTestClient(t *testing.T, opts ...Option) (*client, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.bin")
	all := append([]Option{WithDataFile(path), WithLogger(logging.NewNopLogger())}, opts...)
	c, err := New(all...)
	require.NoError(t, err)
	return c.(*client), path
}

func smallSeed() (map[string]*catalogs.Department, error) {
	d := catalogs.NewDepartment("IEOR", "Jay Sethuraman", 67, nil)
	d.CreateCourse("2500", "Uday Menon", "627 MUDD", "11:40-12:55", 50)
	return map[string]*catalogs.Department{"IEOR": d}, nil
}

func TestNewDefaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, StateFresh, c.State())
	assert.Equal(t, "./coursemap.bin", c.DataFile())

	_, err = c.Catalog()
	assert.True(t, errors.IsNotReady(err))
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithDataFile(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithWidth(catalogs.Width(3)))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithSeed(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeRun, false},
		{"run", ModeRun, false},
		{"setup", ModeSetup, false},
		{" SETUP ", ModeSetup, false},
		{"inspect", ModeInspect, false},
		{"teardown", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupThenRun(t *testing.T) {
	ctx := context.Background()
	setup, path := newTestClient(t)

	require.NoError(t, setup.Start(ctx, ModeSetup))
	assert.Equal(t, StateFresh, setup.State())
	require.NoError(t, setup.Shutdown(ctx))
	assert.FileExists(t, path)

	run, err := New(WithDataFile(path), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	require.NoError(t, run.Start(ctx, ModeRun))
	assert.Equal(t, StateReady, run.State())

	cat, err := run.Catalog()
	require.NoError(t, err)

	reference, err := embedded.NewCatalog()
	require.NoError(t, err)
	assert.True(t, cat.Equal(reference))
	assert.Equal(t, reference.String(), cat.String())

	rendered := cat.String()
	assert.True(t, strings.HasPrefix(rendered, "For the CHEM department:\n"))
	assert.Contains(t, rendered, "For the COMS department:\nCOMS 1004: \nInstructor: Adam Cannon; Location: 417 IAB; Time: 11:40-12:55\n")
}

func TestRunSeedsWhenFileMissing(t *testing.T) {
	ctx := context.Background()
	c, path := newTestClient(t, WithSeed(smallSeed))

	require.NoError(t, c.Start(ctx, ModeRun))
	cat, err := c.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"IEOR"}, cat.DepartmentCodes())
	assert.NoFileExists(t, path)

	require.NoError(t, c.Shutdown(ctx))
	assert.Equal(t, StateClosed, c.State())
	assert.FileExists(t, path)
}

func TestRunPersistsMutationsOnShutdown(t *testing.T) {
	ctx := context.Background()
	c, path := newTestClient(t, WithSeed(smallSeed))
	require.NoError(t, c.Start(ctx, ModeRun))

	cat, err := c.Catalog()
	require.NoError(t, err)
	ok, err := cat.UpdateDepartment("IEOR", func(d *catalogs.Department) bool {
		d.AddMajor()
		return true
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, c.Shutdown(ctx))

	restored := catalogs.New(catalogs.WithPath(path))
	require.NoError(t, restored.Load())
	d, found := restored.Lookup("IEOR")
	require.True(t, found)
	assert.Equal(t, 68, d.Majors())
}

func TestInspectNeverWrites(t *testing.T) {
	ctx := context.Background()
	c, path := newTestClient(t, WithSeed(smallSeed))
	require.NoError(t, c.Start(ctx, ModeInspect))
	assert.Equal(t, StateReady, c.State())

	cat, err := c.Catalog()
	require.NoError(t, err)
	_, err = cat.UpdateDepartment("IEOR", func(d *catalogs.Department) bool {
		d.AddMajor()
		return true
	})
	require.NoError(t, err)

	require.NoError(t, c.Shutdown(ctx))
	assert.Equal(t, StateClosed, c.State())
	assert.NoFileExists(t, path)
}

func TestShutdownPersistsOnce(t *testing.T) {
	ctx := context.Background()
	c, path := newTestClient(t, WithSeed(smallSeed))
	require.NoError(t, c.Start(ctx, ModeRun))
	require.NoError(t, c.Shutdown(ctx))

	require.NoError(t, os.Remove(path))
	require.NoError(t, c.Shutdown(ctx))
	assert.NoFileExists(t, path)

	_, err := c.Catalog()
	assert.True(t, errors.IsNotReady(err))
}

func TestShutdownBeforeStartIsNoop(t *testing.T) {
	c, path := newTestClient(t)
	require.NoError(t, c.Shutdown(context.Background()))
	assert.Equal(t, StateFresh, c.State())
	assert.NoFileExists(t, path)
}

func TestStartTwiceFails(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, WithSeed(smallSeed))
	require.NoError(t, c.Start(ctx, ModeRun))

	err := c.Start(ctx, ModeRun)
	assert.True(t, errors.IsNotReady(err))
}

func TestStartCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestClient(t)
	assert.Error(t, c.Start(ctx, ModeRun))
	assert.Equal(t, StateFresh, c.State())
}

func TestRunCorruptFileFails(t *testing.T) {
	c, path := newTestClient(t)
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0o644))

	err := c.Start(context.Background(), ModeRun)
	require.Error(t, err)
	assert.True(t, errors.IsCorrupt(err))
	assert.Equal(t, StateFresh, c.State())

	// setup repairs the file
	require.NoError(t, c.Start(context.Background(), ModeSetup))
	require.NoError(t, c.Start(context.Background(), ModeRun))
	assert.Equal(t, StateReady, c.State())
}

func TestOverride(t *testing.T) {
	ctx := context.Background()
	c, path := newTestClient(t)

	departments, err := smallSeed()
	require.NoError(t, err)
	cat := catalogs.New()
	cat.ReplaceAll(departments)

	c.Override(cat)
	assert.Equal(t, StateReady, c.State())

	got, err := c.Catalog()
	require.NoError(t, err)
	assert.Same(t, cat, got)

	require.NoError(t, c.Shutdown(ctx))
	assert.NoFileExists(t, path)
}

func TestOverrideNotifiesHooks(t *testing.T) {
	c, _ := newTestClient(t, WithSeed(smallSeed))
	require.NoError(t, c.Start(context.Background(), ModeRun))

	var got []catalogs.Change
	c.OnChange(func(ch catalogs.Change) {
		// hooks may read the client
		live, err := c.Catalog()
		require.NoError(t, err)
		assert.Equal(t, ch.Revision, live.Revision())
		got = append(got, ch)
	})

	departments, err := smallSeed()
	require.NoError(t, err)
	cat := catalogs.New()
	cat.ReplaceAll(departments)
	c.Override(cat)

	require.Len(t, got, 1)
	assert.Equal(t, catalogs.CatalogReplaced, got[0].Type)
	assert.Equal(t, cat.Revision(), got[0].Revision)

	// the replacement catalog keeps notifying
	_, err = cat.UpdateDepartment("IEOR", func(d *catalogs.Department) bool {
		d.AddMajor()
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, catalogs.DepartmentUpdated, got[1].Type)
}

func TestOverrideNilIgnored(t *testing.T) {
	c, _ := newTestClient(t)
	c.Override(nil)
	assert.Equal(t, StateFresh, c.State())
}

func TestSaveRequiresReady(t *testing.T) {
	c, path := newTestClient(t, WithSeed(smallSeed))
	assert.True(t, errors.IsNotReady(c.Save()))

	require.NoError(t, c.Start(context.Background(), ModeRun))
	require.NoError(t, c.Save())
	assert.FileExists(t, path)
}

func TestWidth32RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, path := newTestClient(t, WithSeed(smallSeed), WithWidth(catalogs.Width32))
	require.NoError(t, c.Start(ctx, ModeSetup))

	wide := catalogs.New(catalogs.WithPath(path))
	assert.True(t, errors.IsCorrupt(wide.Load()))

	narrow := catalogs.New(catalogs.WithPath(path), catalogs.WithWidth(catalogs.Width32))
	require.NoError(t, narrow.Load())
	assert.Equal(t, []string{"IEOR"}, narrow.DepartmentCodes())
}

func TestOnChangeHooks(t *testing.T) {
	c, _ := newTestClient(t, WithSeed(smallSeed))

	var mu sync.Mutex
	var got []catalogs.Change
	c.OnChange(func(ch catalogs.Change) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ch)
	})
	c.OnChange(nil)

	require.NoError(t, c.Start(context.Background(), ModeRun))
	cat, err := c.Catalog()
	require.NoError(t, err)

	_, err = cat.UpdateCourse("IEOR", "2500", func(course *catalogs.Course) bool {
		return course.Enroll()
	})
	require.NoError(t, err)

	// unchanged mutations do not notify
	_, err = cat.UpdateCourse("IEOR", "2500", func(*catalogs.Course) bool { return false })
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, catalogs.CourseUpdated, got[0].Type)
	assert.Equal(t, "IEOR", got[0].Department)
	assert.Equal(t, "2500", got[0].Course)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "fresh", StateFresh.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "state(9)", State(9).String())
}
