package runanywhere

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"

	MockProviderName = "local-mock-runanywhere"
	MockMessage      = "This is a mock response. Replace with a real SDK integration for production."
)

type MockResponse struct {
	Provider  string `json:"provider"`
	Method    string `json:"method"`
	Task      string `json:"task"`
	Input     any    `json:"input"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// MockClient stands in for the RunAnywhere service when no real integration is
// configured. RunTask, Execute and Call are interchangeable and never fail.
type MockClient struct {
	apiKey string
	now    func() time.Time
}

func NewMockClient(apiKey string) *MockClient {
	return &MockClient{apiKey: apiKey, now: time.Now}
}

// MockProvider builds a MockClient; it is the last resort in the provider chain.
func MockProvider(apiKey string) (any, error) {
	return NewMockClient(apiKey), nil
}

func (m *MockClient) RunTask(_ context.Context, req *model.TaskRequest) (any, error) {
	return m.respond("runTask", req), nil
}

func (m *MockClient) Execute(_ context.Context, req *model.TaskRequest) (any, error) {
	return m.respond("execute", req), nil
}

func (m *MockClient) Call(_ context.Context, req *model.TaskRequest) (any, error) {
	return m.respond("call", req), nil
}

func (m *MockClient) respond(method string, req *model.TaskRequest) *MockResponse {
	var input any
	if req != nil {
		input = req.Input
	}
	return &MockResponse{
		Provider:  MockProviderName,
		Method:    method,
		Task:      req.TaskName(),
		Input:     input,
		Message:   MockMessage,
		Timestamp: m.now().UTC().Format(timestampLayout),
	}
}
