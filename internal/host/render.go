// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package host

import (
	"html/template"
	"strings"

	"github.com/MKhiriev/submitty-sidebar/models"
)

// Course names are free text entered by instructors; html/template escapes
// them contextually.
var coursesTemplate = template.Must(template.New("courses").Parse(`
{{- range . }}
<button class="accordion" type="button">{{ .Label }}</button>
<div class="panel">
  <p class="course-meta">{{ .DisplaySemester }}{{ with .RegistrationSection }} / section {{ . }}{{ end }}</p>
  <p>{{ .Title }} <button class="grade-button" type="button" data-hw="{{ .Title }}">Grade</button></p>
</div>
{{- else }}
<p>No courses found.</p>
{{- end }}
`))

// RenderCourses renders the accordion markup of the unarchived course list.
func RenderCourses(courses []models.Course) (string, error) {
	var sb strings.Builder
	if err := coursesTemplate.Execute(&sb, courses); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
