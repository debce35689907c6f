// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// untitledCourse is shown for courses that carry neither a display name nor a
// title.
const untitledCourse = "Untitled Course"

// Course is a single course record as returned by GET /api/courses.
type Course struct {
	// Semester is the short semester code (e.g. "f24").
	Semester string `json:"semester"`

	// Title is the course code (e.g. "csci1100").
	Title string `json:"title"`

	// DisplayName is the human-readable course name. It is free text entered by
	// instructors and must be escaped before rendering.
	DisplayName string `json:"display_name"`

	// DisplaySemester is the human-readable semester (e.g. "Fall 2024").
	DisplaySemester string `json:"display_semester"`

	// UserGroup is the user's role in the course (1 instructor … 4 student).
	UserGroup int `json:"user_group"`

	// RegistrationSection is the section the user is registered in.
	RegistrationSection string `json:"registration_section"`
}

// Label returns the name shown to the user: the display name, falling back
// to the title and finally to a fixed placeholder.
func (c Course) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	if c.Title != "" {
		return c.Title
	}
	return untitledCourse
}

// Courses is the data part of the GET /api/courses response.
type Courses struct {
	Unarchived []Course `json:"unarchived_courses"`
	Dropped    []Course `json:"dropped_courses"`
}

// GradeSummary is the grade detail of a single gradeable. The backend shape is
// not fixed yet, so it is passed through to the UI untouched.
type GradeSummary map[string]any

// AttemptRecord is a single previous submission attempt of a gradeable,
// passed through to the UI untouched.
type AttemptRecord map[string]any
