package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/issueseed/internal/models"
)

type MockIssueTracker struct {
	mock.Mock
}

func (m *MockIssueTracker) CreateIssue(ctx context.Context, spec models.IssueSpec) (*models.CreateIssueResponse, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreateIssueResponse), args.Error(1)
}

func (m *MockIssueTracker) Repository() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIssueTracker) IssuesURL() string {
	args := m.Called()
	return args.String(0)
}
