package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAllPresent(t *testing.T) {
	result := Require(Fields{
		"studentId": "2024-0001",
		"firstName": "Maria",
		"year":      2,
	})

	require.True(t, result.IsValid)
	assert.Equal(t, map[string]bool{
		"studentId": true,
		"firstName": true,
		"year":      true,
	}, result.RequiredFields)
}

func TestRequireMissingFieldsEnumerated(t *testing.T) {
	result := Require(Fields{
		"userId":    "u-100",
		"firstName": "",
		"lastName":  "Reyes",
		"email":     "",
		"password":  "secret",
	})

	require.False(t, result.IsValid)
	assert.True(t, result.RequiredFields["userId"])
	assert.False(t, result.RequiredFields["firstName"])
	assert.True(t, result.RequiredFields["lastName"])
	assert.False(t, result.RequiredFields["email"])
	assert.True(t, result.RequiredFields["password"])
}

func TestRequireZeroNumberCountsAsMissing(t *testing.T) {
	// Presence is truthiness-based, so a year of 0 reads as absent.
	result := Require(Fields{"year": 0})

	require.False(t, result.IsValid)
	assert.False(t, result.RequiredFields["year"])

	result = Require(Fields{"year": 1})
	assert.True(t, result.IsValid)
}

func TestRequireNilValue(t *testing.T) {
	result := Require(Fields{"dateOfBirth": nil})

	require.False(t, result.IsValid)
	assert.False(t, result.RequiredFields["dateOfBirth"])
}

func TestRequirePointerValues(t *testing.T) {
	empty := ""
	name := "Ana"
	zero := 0
	year := 3
	var when time.Time
	dob := time.Date(2003, time.June, 12, 0, 0, 0, 0, time.UTC)

	result := Require(Fields{
		"emptyStr": &empty,
		"name":     &name,
		"zeroInt":  &zero,
		"year":     &year,
		"zeroTime": &when,
		"dob":      &dob,
		"nilStr":   (*string)(nil),
	})

	assert.False(t, result.RequiredFields["emptyStr"])
	assert.True(t, result.RequiredFields["name"])
	assert.False(t, result.RequiredFields["zeroInt"])
	assert.True(t, result.RequiredFields["year"])
	assert.False(t, result.RequiredFields["zeroTime"])
	assert.True(t, result.RequiredFields["dob"])
	assert.False(t, result.RequiredFields["nilStr"])
}

func TestRequireEmptyFieldSetIsValid(t *testing.T) {
	result := Require(Fields{})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.RequiredFields)
}
