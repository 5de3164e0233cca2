package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuest_FullName(t *testing.T) {
	guest := &Guest{FirstName: "Anna", LastName: "Smith"}
	assert.Equal(t, "Anna Smith", guest.FullName())

	guest = &Guest{FirstName: "Anna"}
	assert.Equal(t, "Anna", guest.FullName())
}

func TestGuest_HasContactDetails(t *testing.T) {
	phone := "+4512345678"
	empty := ""

	assert.False(t, (&Guest{}).HasContactDetails())
	assert.False(t, (&Guest{Phone: &empty}).HasContactDetails())
	assert.True(t, (&Guest{Phone: &phone}).HasContactDetails())

	email := "anna@example.com"
	assert.True(t, (&Guest{Email: &email}).HasContactDetails())
}

func TestGuest_IsPlusOne(t *testing.T) {
	main := uint(1)
	assert.False(t, (&Guest{}).IsPlusOne())
	assert.True(t, (&Guest{PlusOneOf: &main}).IsPlusOne())
}

func TestIsValidResponse(t *testing.T) {
	assert.True(t, IsValidResponse(ResponseYes))
	assert.True(t, IsValidResponse(ResponseNo))
	assert.True(t, IsValidResponse(ResponseNoAnswer))
	assert.False(t, IsValidResponse("maybe"))
	assert.False(t, IsValidResponse(""))
}
