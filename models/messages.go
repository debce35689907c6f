// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/MKhiriev/submitty-sidebar/internal/validators"
)

// Commands sent from the UI to the host.
const (
	CommandReady                  = "ready"
	CommandLogin                  = "login"
	CommandLogout                 = "logout"
	CommandFetchAndDisplayCourses = "fetchAndDisplayCourses"
	CommandGrade                  = "grade"
	CommandHello                  = "hello"
)

// Commands sent from the host to the UI.
const (
	CommandDisplayCourses    = "displayCourses"
	CommandDisplayGrade      = "displayGrade"
	CommandError             = "error"
	CommandSessionState      = "sessionState"
	CommandNotify            = "notify"
	CommandPromptCredentials = "promptCredentials"
)

// Empty is the payload of commands that carry no data
// (ready, logout, fetchAndDisplayCourses).
type Empty struct{}

// Credentials is the payload of the login command and the answer to a
// promptCredentials request. The password travels UI → host only.
type Credentials struct {
	URL      string `json:"url,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the credentials before any network call is made.
func (c Credentials) Validate() error {
	return validators.Credentials(c.URL, c.Username, c.Password)
}

// GradeRequest is the payload of the grade command.
type GradeRequest struct {
	HW string `json:"hw"`
}

// Validate requires a gradeable identifier.
func (g GradeRequest) Validate() error {
	return validators.Required(validators.FieldHW, g.HW)
}

// Hello is the payload of the hello command.
type Hello struct {
	Text string `json:"text"`
}

// DisplayCourses is posted after courses were fetched. UnarchivedHTML is
// already escaped and safe to insert into the document; the structured lists
// are for UIs that render courses themselves.
type DisplayCourses struct {
	UnarchivedHTML string   `json:"unarchivedHtml"`
	Unarchived     []Course `json:"unarchived"`
	Dropped        []Course `json:"dropped"`
}

// DisplayGrade is posted after the grade detail of a gradeable was fetched.
type DisplayGrade struct {
	HW               string          `json:"hw"`
	GradeDetails     GradeSummary    `json:"gradeDetails"`
	PreviousAttempts []AttemptRecord `json:"previousAttempts"`
}

// ErrorMessage is posted whenever a user-visible operation fails, so the UI
// can render inline state instead of waiting forever.
type ErrorMessage struct {
	Message string `json:"message"`
}

// SessionStateMessage is posted on every session state transition. It never
// carries the token.
type SessionStateMessage struct {
	State   string `json:"state"`
	BaseURL string `json:"baseUrl,omitempty"`
}

// Notification levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notification mirrors a host notification in the UI.
type Notification struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// PromptCredentials asks the UI for credentials. NeedURL is set when no base
// URL is configured yet.
type PromptCredentials struct {
	NeedURL bool   `json:"needUrl"`
	URL     string `json:"url,omitempty"`
}
