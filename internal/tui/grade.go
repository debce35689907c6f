// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/submitty-sidebar/models"
)

// scoreText is what the copy key puts on the clipboard: the "score" field
// when the backend sends one, the whole summary otherwise.
func scoreText(details models.GradeSummary) string {
	if v, ok := details["score"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	if len(details) == 0 {
		return ""
	}
	b, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(b)
}

func gradeView(g models.DisplayGrade) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Grade: " + g.HW))
	b.WriteString("\n")

	score := scoreText(g.GradeDetails)
	if score == "" {
		score = "-"
	}
	b.WriteString("Score: ")
	b.WriteString(score)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Previous attempts: %d\n", len(g.PreviousAttempts))
	for i, a := range g.PreviousAttempts {
		raw, err := json.Marshal(a)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, fitText(string(raw), 60))
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
