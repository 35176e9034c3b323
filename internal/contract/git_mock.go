package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ShortLog implements the GitClient interface.
func (m *MockGitClient) ShortLog(ctx context.Context, repoPath string, startDate, endDate time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, startDate, endDate)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// IsWorkTreeClean implements the GitClient interface.
func (m *MockGitClient) IsWorkTreeClean(ctx context.Context, repoPath string) (bool, error) {
	ret := m.Called(ctx, repoPath)
	clean, _ := ret.Get(0).(bool)
	return clean, ret.Error(1)
}

// RevBefore implements the GitClient interface.
func (m *MockGitClient) RevBefore(ctx context.Context, repoPath string, date time.Time) (string, error) {
	ret := m.Called(ctx, repoPath, date)
	rev, _ := ret.Get(0).(string)
	return rev, ret.Error(1)
}

// CurrentRef implements the GitClient interface.
func (m *MockGitClient) CurrentRef(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	ref, _ := ret.Get(0).(string)
	return ref, ret.Error(1)
}

// Checkout implements the GitClient interface.
func (m *MockGitClient) Checkout(ctx context.Context, repoPath string, ref string) error {
	ret := m.Called(ctx, repoPath, ref)
	return ret.Error(0)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	hash, _ := ret.Get(0).(string)
	return hash, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// BlameFile implements the GitClient interface.
func (m *MockGitClient) BlameFile(ctx context.Context, repoPath string, path string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, path)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
