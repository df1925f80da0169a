package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duplex3d/printflow/internal/config"
)

// --- Mock types ---

type MockSearch struct {
	mock.Mock
}

func (m *MockSearch) Locate(ctx context.Context, basename string) (string, error) {
	args := m.Called(ctx, basename)
	return args.String(0), args.Error(1)
}

func newResolver(search Search) (*Resolver, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Resolver{Search: search, GOOS: "linux", Out: out}, out
}

// --- Tests ---

func TestResolver_Resolve(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "duplex_profile.ini")
	require.NoError(t, os.WriteFile(profile, []byte("[print]\n"), 0o644))

	search := new(MockSearch)
	search.On("Locate", mock.Anything, SlicerBasename).Return("/usr/bin/prusa-slicer-console", nil)
	search.On("Locate", mock.Anything, OrienterBasename).Return("/usr/local/bin/meshtweaker", nil)
	search.On("Locate", mock.Anything, ProfileBasename).Return(profile, nil)

	resolver, out := newResolver(search)

	tc, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/prusa-slicer-console", tc.Slicer)
	assert.Equal(t, "/usr/local/bin/meshtweaker", tc.Orienter)
	assert.Equal(t, ConverterCommand, tc.Converter)
	assert.Equal(t, profile, tc.Profile)
	assert.Contains(t, out.String(), "Using slicing profile")

	search.AssertExpectations(t)
}

func TestResolver_SlicerNotFoundIsFatal(t *testing.T) {
	search := new(MockSearch)
	search.On("Locate", mock.Anything, SlicerBasename).Return("", nil)

	resolver, _ := newResolver(search)

	_, err := resolver.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrToolNotFound)

	// Nothing else is looked up once the slicer is missing.
	search.AssertNumberOfCalls(t, "Locate", 1)
}

func TestResolver_OrienterNotFoundIsFatal(t *testing.T) {
	search := new(MockSearch)
	search.On("Locate", mock.Anything, SlicerBasename).Return("/usr/bin/prusa-slicer-console", nil)
	search.On("Locate", mock.Anything, OrienterBasename).Return("", nil)

	resolver, _ := newResolver(search)

	_, err := resolver.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestResolver_MissingProfileIsNotFatal(t *testing.T) {
	search := new(MockSearch)
	search.On("Locate", mock.Anything, SlicerBasename).Return("/usr/bin/prusa-slicer-console", nil)
	search.On("Locate", mock.Anything, OrienterBasename).Return("/usr/local/bin/meshtweaker", nil)
	search.On("Locate", mock.Anything, ProfileBasename).Return("", nil)

	resolver, out := newResolver(search)

	tc, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Empty(t, tc.Profile)
	assert.Contains(t, out.String(), "No slicing profile")
}

func TestResolver_DanglingProfilePathIsReported(t *testing.T) {
	dangling := filepath.Join(t.TempDir(), "gone.ini")

	search := new(MockSearch)
	search.On("Locate", mock.Anything, SlicerBasename).Return("/usr/bin/prusa-slicer-console", nil)
	search.On("Locate", mock.Anything, OrienterBasename).Return("/usr/local/bin/meshtweaker", nil)
	search.On("Locate", mock.Anything, ProfileBasename).Return(dangling, nil)

	resolver, out := newResolver(search)

	tc, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	// The dangling path is still passed downstream.
	assert.Equal(t, dangling, tc.Profile)
	assert.Contains(t, out.String(), "does not exist")
}

func TestResolver_WindowsUsesFixedSlicerPath(t *testing.T) {
	search := new(MockSearch)
	search.On("Locate", mock.Anything, OrienterBasename).Return(`C:\tools\meshtweaker.exe`, nil)
	search.On("Locate", mock.Anything, ProfileBasename).Return("", nil)

	resolver, _ := newResolver(search)
	resolver.GOOS = "windows"

	tc, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, windowsSlicerPath, tc.Slicer)
	search.AssertNotCalled(t, "Locate", mock.Anything, SlicerBasename)
}

func TestResolver_OverridesSkipDiscovery(t *testing.T) {
	search := new(MockSearch)

	resolver, _ := newResolver(search)
	resolver.Overrides = config.ToolsConfig{
		Slicer:    "/opt/slicer",
		Orienter:  "/opt/orienter",
		Converter: "/opt/gcode2as",
		Profile:   "/opt/profile.ini",
	}

	tc, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/opt/slicer", tc.Slicer)
	assert.Equal(t, "/opt/orienter", tc.Orienter)
	assert.Equal(t, "/opt/gcode2as", tc.Converter)
	assert.Equal(t, "/opt/profile.ini", tc.Profile)
	search.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything)
}

func TestResolver_SearchErrorPropagates(t *testing.T) {
	search := new(MockSearch)
	search.On("Locate", mock.Anything, SlicerBasename).Return("", errors.New("locate database unreadable"))

	resolver, _ := newResolver(search)

	_, err := resolver.Resolve(context.Background())
	assert.ErrorContains(t, err, "locate database unreadable")
}
