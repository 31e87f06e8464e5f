package dispatch

import (
	"context"
	"testing"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allMethodsClient struct{ invoked []string }

func (c *allMethodsClient) RunTask(_ context.Context, _ *model.TaskRequest) (any, error) {
	c.invoked = append(c.invoked, MethodRunTask)
	return MethodRunTask, nil
}

func (c *allMethodsClient) Execute(_ context.Context, _ *model.TaskRequest) (any, error) {
	c.invoked = append(c.invoked, MethodExecute)
	return MethodExecute, nil
}

func (c *allMethodsClient) Call(_ context.Context, _ *model.TaskRequest) (any, error) {
	c.invoked = append(c.invoked, MethodCall)
	return MethodCall, nil
}

type executeCallClient struct{ invoked []string }

func (c *executeCallClient) Execute(_ context.Context, _ *model.TaskRequest) (any, error) {
	c.invoked = append(c.invoked, MethodExecute)
	return MethodExecute, nil
}

func (c *executeCallClient) Call(_ context.Context, _ *model.TaskRequest) (any, error) {
	c.invoked = append(c.invoked, MethodCall)
	return MethodCall, nil
}

type callOnlyClient struct{ invoked []string }

func (c *callOnlyClient) Call(_ context.Context, req *model.TaskRequest) (any, error) {
	c.invoked = append(c.invoked, MethodCall)
	return map[string]any{"method": MethodCall, "task": req.TaskName()}, nil
}

type nativeClient struct{}

func (nativeClient) Run(_ context.Context, _ *model.TaskRequest) (any, error) {
	return MethodNative, nil
}

type noMethodsClient struct{}

func TestAdapt(t *testing.T) {
	tests := []struct {
		name           string
		client         any
		expectedMethod string
		expectedError  error
	}{
		{name: "all methods prefer runTask", client: &allMethodsClient{}, expectedMethod: MethodRunTask},
		{name: "execute before call", client: &executeCallClient{}, expectedMethod: MethodExecute},
		{name: "generic call only", client: &callOnlyClient{}, expectedMethod: MethodCall},
		{name: "native backend", client: nativeClient{}, expectedMethod: MethodNative},
		{name: "no supported method", client: noMethodsClient{}, expectedError: ErrUnsupportedClient},
		{name: "nil client", client: nil, expectedError: ErrUnsupportedClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Adapt(tt.client)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, a)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedMethod, a.Method())

			got, err := a.Run(context.Background(), &model.TaskRequest{})
			require.NoError(t, err)
			if tt.expectedMethod != MethodCall {
				assert.Equal(t, tt.expectedMethod, got)
			}
		})
	}
}

func TestAdapt_InvokesOnlyChosenMethod(t *testing.T) {
	c := &allMethodsClient{}
	a, err := Adapt(c)
	require.NoError(t, err)

	_, err = a.Run(context.Background(), &model.TaskRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{MethodRunTask}, c.invoked)
}
