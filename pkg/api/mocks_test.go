package api

import (
	"github.com/stretchr/testify/mock"

	"github.com/livelypi/lively/pkg/wallpaper"
)

// MockController is a mock implementation of WallpaperController.
type MockController struct {
	mock.Mock
}

func (m *MockController) Apply(desc wallpaper.Descriptor) (wallpaper.Outcome, error) {
	args := m.Called(desc)
	return args.Get(0).(wallpaper.Outcome), args.Error(1)
}

func (m *MockController) PauseAll() error {
	return m.Called().Error(0)
}

func (m *MockController) ResumeAll() error {
	return m.Called().Error(0)
}

func (m *MockController) StopAll() error {
	return m.Called().Error(0)
}

func (m *MockController) Snapshot() []wallpaper.RendererStatus {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]wallpaper.RendererStatus)
}

// MockLibrary is a mock implementation of LibraryStore.
type MockLibrary struct {
	mock.Mock
}

func (m *MockLibrary) Add(desc wallpaper.Descriptor) wallpaper.Entry {
	args := m.Called(desc)
	return args.Get(0).(wallpaper.Entry)
}

func (m *MockLibrary) Remove(id string) (wallpaper.Entry, bool) {
	args := m.Called(id)
	return args.Get(0).(wallpaper.Entry), args.Bool(1)
}

func (m *MockLibrary) List() []wallpaper.Entry {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]wallpaper.Entry)
}
