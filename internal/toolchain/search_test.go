package toolchain

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, int, error) {
	called := m.Called(ctx, name, args, stdin)
	return called.Get(0).([]byte), called.Get(1).([]byte), called.Int(2), called.Error(3)
}

func TestLocateSearch_FirstMatchWins(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, "locate", []string{"meshtweaker"}, nil).
		Return([]byte("/usr/local/bin/meshtweaker\n/home/op/old/meshtweaker\n"), []byte(nil), 0, nil)

	search := LocateSearch{Runner: runner}

	path, err := search.Locate(context.Background(), "meshtweaker")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/meshtweaker", path)

	runner.AssertExpectations(t)
}

func TestLocateSearch_ExitOneMeansNotFound(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, "locate", mock.Anything, nil).
		Return([]byte(nil), []byte(nil), 1, nil)

	search := LocateSearch{Runner: runner}

	path, err := search.Locate(context.Background(), "duplex_profile.ini")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLocateSearch_EmptyOutputMeansNotFound(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, "locate", mock.Anything, nil).
		Return([]byte("\n"), []byte(nil), 0, nil)

	search := LocateSearch{Runner: runner}

	path, err := search.Locate(context.Background(), "duplex_profile.ini")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLocateSearch_RunnerErrorPropagates(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, "locate", mock.Anything, nil).
		Return([]byte(nil), []byte(nil), 0, errors.New("locate: command not found"))

	search := LocateSearch{Runner: runner}

	_, err := search.Locate(context.Background(), "prusa-slicer-console")
	assert.ErrorContains(t, err, "command not found")
}

func TestLocateSearch_UnexpectedExitCodeIsAnError(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, "locate", mock.Anything, nil).
		Return([]byte(nil), []byte("locate: database corrupt\n"), 2, nil)

	search := LocateSearch{Runner: runner}

	_, err := search.Locate(context.Background(), "prusa-slicer-console")
	assert.ErrorContains(t, err, "exit code 2")
}
