package main

import (
	"github.com/siahsang/conduit/internal/validator"
)

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckEmail(email, "must be a valid email address")
}

func checkTags(v *validator.Validator, tags []string) {
	for _, tag := range tags {
		v.CheckNotBlank(tag, "tagList", "must not contain blank tags")
	}
	v.Check(v.IsUnique(tags), "tagList", "must not contain duplicate tags")
}
