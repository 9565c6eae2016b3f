package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChangeEvent(t *testing.T) {
	result := &FetchResult{
		TitleID:        "CUSA12345_00",
		Name:           "F1 22",
		CurrentVersion: "01.05",
		Region:         "EU",
		IconURL:        "https://example.com/icon.png",
		Link:           "https://orbispatches.com/CUSA12345_00",
	}

	event := NewChangeEvent(CategoryOrbis, result, "01.04")

	assert.Equal(t, CategoryOrbis, event.Category)
	assert.Equal(t, "CUSA12345_00", event.TitleID)
	assert.Equal(t, "F1 22", event.Name)
	assert.Equal(t, "EU", event.Region)
	assert.Equal(t, "01.04", event.PastVersion)
	assert.Equal(t, "01.05", event.CurrentVersion)
	assert.Equal(t, result.Link, event.Link)
}

func TestKnownCategories(t *testing.T) {
	names := make([]string, 0, len(KnownCategories))
	for _, c := range KnownCategories {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{"battle", "prospero", "orbis", "steam"}, names)
}

func TestNewTrackedTitles(t *testing.T) {
	titles := NewTrackedTitles(CategoryOrbis, []string{"CUSA2", "CUSA1"})

	assert.Equal(t, []TrackedTitle{
		{Category: CategoryOrbis, ID: "CUSA2"},
		{Category: CategoryOrbis, ID: "CUSA1"},
	}, titles)
	assert.Empty(t, NewTrackedTitles(CategoryOrbis, nil))
}
