// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// Messages delivered from the host.
type (
	sessionStateMsg models.SessionStateMessage
	coursesMsg      models.DisplayCourses
	gradeMsg        models.DisplayGrade
	hostErrorMsg    models.ErrorMessage
	notifyMsg       models.Notification

	promptMsg struct {
		request bridge.Message
		prompt  models.PromptCredentials
	}
)

// Results of commands started by the model.
type (
	loginDoneMsg struct {
		err error
	}

	copiedMsg struct {
		err error
	}
)
