package services

import (
	"context"
	"sync"
)

// fakeLLM is a counting stand-in for gemini.Client.
type fakeLLM struct {
	mu       sync.Mutex
	calls    int
	lastUser string
	body     string
	err      error
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastUser = user
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func (f *fakeLLM) Model() string { return "fake-model" }

func (f *fakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
