package wallpaper

import (
	"os"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of the CommandRunner interface.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) LookPath(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockRunner) Run(name string, cmdArgs ...string) error {
	args := m.Called(name, cmdArgs)
	return args.Error(0)
}

func (m *MockRunner) StartDetached(name string, cmdArgs ...string) (Process, error) {
	args := m.Called(name, cmdArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Process), args.Error(1)
}

// MockProcess is a mock implementation of the Process interface.
type MockProcess struct {
	mock.Mock
}

func (m *MockProcess) Pid() int {
	return m.Called().Int(0)
}

func (m *MockProcess) Signal(sig os.Signal) error {
	return m.Called(sig).Error(0)
}

func (m *MockProcess) Terminate() error {
	return m.Called().Error(0)
}

func (m *MockProcess) Kill() error {
	return m.Called().Error(0)
}

func (m *MockProcess) Wait() error {
	return m.Called().Error(0)
}
