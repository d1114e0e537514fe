package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIModule_Metadata(t *testing.T) {
	m := NewModule(":3000", &mockLogger{})
	assert.Equal(t, "api", m.Name())
	assert.Equal(t, []string{"auth", "task", "activity"}, m.Dependencies())
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestAPIModule_StartRequiresDependencies(t *testing.T) {
	m := NewModule(":0", &mockLogger{})
	assert.ErrorContains(t, m.Start(context.Background()), "auth dependency not set")

	m.authPort = &mockAuthPort{}
	assert.ErrorContains(t, m.Start(context.Background()), "task dependency not set")

	m.taskPort = &mockTaskPort{}
	assert.ErrorContains(t, m.Start(context.Background()), "activity dependency not set")
}

func TestAPIModule_StopBeforeStart(t *testing.T) {
	m := NewModule(":0", &mockLogger{})
	assert.NoError(t, m.Stop(context.Background()))
}
