package explorer

import (
	"testing"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/stretchr/testify/assert"
)

func sampleRecords() []FileRecord {
	return []FileRecord{
		{Name: "Budget 2024.xlsx", Category: "Spreadsheets"},
		{Name: "budget-notes.txt", Category: "Documents"},
		{Name: "Straße.pdf", Category: "Documents"},
		{Name: "logo.PNG", Category: "Images"},
		{Name: "report.pdf", Category: "Documents"},
	}
}

func names(records []FileRecord) []string {
	result := make([]string, len(records))
	for i, r := range records {
		result[i] = r.Name
	}
	return result
}

func TestFilter(t *testing.T) {
	records := sampleRecords()
	all := AllCategories(catalog.Default)

	for _, tt := range []struct {
		name    string
		enabled CategorySet
		search  string
		want    []string
	}{
		{name: "all", enabled: all, want: names(records)},
		{name: "none", enabled: NoCategories(), want: []string{}},
		{name: "documents", enabled: NewCategorySet("Documents"), want: []string{"budget-notes.txt", "Straße.pdf", "report.pdf"}},
		{name: "search_ignores_case", enabled: all, search: "BUDGET", want: []string{"Budget 2024.xlsx", "budget-notes.txt"}},
		{name: "search_and_category", enabled: NewCategorySet("Documents"), search: "budget", want: []string{"budget-notes.txt"}},
		{name: "unicode_folding", enabled: all, search: "STRASSE", want: []string{"Straße.pdf"}},
		{name: "extension_in_name", enabled: all, search: ".png", want: []string{"logo.PNG"}},
		{name: "no_match", enabled: all, search: "zzz", want: []string{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(records, tt.enabled, tt.search)))
		})
	}
}

func TestFilter_IdempotentAndPure(t *testing.T) {
	records := sampleRecords()
	original := sampleRecords()
	spec := FilterSpec{Enabled: NewCategorySet("Documents", "Images"), Search: "p"}

	first := spec.Apply(records)
	second := spec.Apply(records)
	assert.Equal(t, first, second)
	assert.Equal(t, original, records)

	if len(first) > 0 {
		first[0].Name = "changed"
	}
	assert.Equal(t, original, records, "result does not alias the input")
}

func TestCategorySet_Names(t *testing.T) {
	set := NewCategorySet("Code", "Documents", "Unknown")
	assert.Equal(t, []string{"Documents", "Code"}, set.Names(catalog.Default))
	assert.True(t, set.Has("Code"))
	assert.False(t, set.Has("Audio"))
	assert.Len(t, AllCategories(catalog.Default), 9)
}
