// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/submitty-sidebar/models"
)

const courseLabelWidth = 36

// courseList is an accordion: each course is one line, and expanding it
// shows the semester and section underneath.
type courseList struct {
	courses  []models.Course
	dropped  int
	cursor   int
	expanded map[int]bool
	loaded   bool
}

func (l *courseList) set(msg coursesMsg) {
	l.courses = msg.Unarchived
	l.dropped = len(msg.Dropped)
	l.expanded = make(map[int]bool)
	l.loaded = true
	if l.cursor >= len(l.courses) {
		l.cursor = max(len(l.courses)-1, 0)
	}
}

func (l *courseList) reset() {
	*l = courseList{}
}

func (l *courseList) move(delta int) {
	if len(l.courses) == 0 {
		return
	}
	l.cursor = min(max(l.cursor+delta, 0), len(l.courses)-1)
}

func (l *courseList) toggle() {
	if len(l.courses) == 0 {
		return
	}
	if l.expanded == nil {
		l.expanded = make(map[int]bool)
	}
	l.expanded[l.cursor] = !l.expanded[l.cursor]
}

func (l *courseList) selected() (models.Course, bool) {
	if l.cursor < 0 || l.cursor >= len(l.courses) {
		return models.Course{}, false
	}
	return l.courses[l.cursor], true
}

func (l *courseList) View() string {
	if !l.loaded {
		return helpStyle.Render("Courses not loaded")
	}
	if len(l.courses) == 0 {
		return "No courses found."
	}

	var b strings.Builder
	for i, c := range l.courses {
		marker := "▸"
		if l.expanded[i] {
			marker = "▾"
		}
		line := fmt.Sprintf("%s %s", marker, fitText(c.Label(), courseLabelWidth))
		if i == l.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if l.expanded[i] {
			b.WriteString("    ")
			b.WriteString(c.DisplaySemester)
			if c.RegistrationSection != "" {
				b.WriteString(" / section ")
				b.WriteString(c.RegistrationSection)
			}
			b.WriteString("\n    [g] grade ")
			b.WriteString(c.Title)
			b.WriteString("\n")
		}
	}
	if l.dropped > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d dropped course(s) hidden", l.dropped)))
	}

	return strings.TrimRight(b.String(), "\n")
}
