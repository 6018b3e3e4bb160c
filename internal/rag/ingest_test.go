package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
)

func TestComposeContent(t *testing.T) {
	p := estate.Project{
		Name:         "Marina Pearl",
		Description:  "Waterfront apartments in Dubai Marina.",
		Features:     "sea view; balcony",
		Facilities:   "pool; gym",
		City:         "Dubai",
		PropertyType: "apartment",
	}

	content := ComposeContent(p)

	assert.Contains(t, content, "Project Name: Marina Pearl")
	assert.Contains(t, content, "Description: Waterfront apartments in Dubai Marina.")
	assert.Contains(t, content, "Features: sea view; balcony")
	assert.Contains(t, content, "City: Dubai")
	assert.Contains(t, content, "Property Type: apartment")
}

func TestComposeContent_SkipsEmptyFields(t *testing.T) {
	p := estate.Project{Name: "Bare Bones", City: "London"}

	content := ComposeContent(p)

	assert.Contains(t, content, "Project Name: Bare Bones")
	assert.Contains(t, content, "City: London")
	assert.NotContains(t, content, "Description:")
	assert.NotContains(t, content, "Features:")
	assert.Equal(t, 2, len(strings.Split(content, "\n")))
}
