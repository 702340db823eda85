// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchui

import (
	"html/template"
	"strings"
	"sync"
)

// Input supplies the current query text.
type Input interface {
	Value() string
}

// Container receives rendered markup. Clear empties it; Append adds a block
// after the existing content.
type Container interface {
	Clear()
	Append(html template.HTML)
}

// StaticInput is an Input with a fixed value.
type StaticInput string

// Value returns s.
func (s StaticInput) Value() string { return string(s) }

// InputFunc adapts a function to Input.
type InputFunc func() string

// Value calls f.
func (f InputFunc) Value() string { return f() }

// TextInput is a mutable Input, like a text field a user types into.
type TextInput struct {
	mu    sync.RWMutex
	value string
}

// Set replaces the text.
func (t *TextInput) Set(v string) {
	t.mu.Lock()
	t.value = v
	t.mu.Unlock()
}

// Value returns the current text.
func (t *TextInput) Value() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

// MemoryContainer holds markup in memory.
type MemoryContainer struct {
	mu  sync.Mutex
	buf strings.Builder
}

// NewMemoryContainer returns a container holding initial.
func NewMemoryContainer(initial template.HTML) *MemoryContainer {
	c := &MemoryContainer{}
	c.buf.WriteString(string(initial))
	return c
}

// Clear empties the container.
func (c *MemoryContainer) Clear() {
	c.mu.Lock()
	c.buf.Reset()
	c.mu.Unlock()
}

// Append adds html after the current content.
func (c *MemoryContainer) Append(html template.HTML) {
	c.mu.Lock()
	c.buf.WriteString(string(html))
	c.mu.Unlock()
}

// HTML returns the current content.
func (c *MemoryContainer) HTML() template.HTML {
	c.mu.Lock()
	defer c.mu.Unlock()
	return template.HTML(c.buf.String())
}
