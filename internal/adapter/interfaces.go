// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the typed client of the Submitty REST API.
//
// [SubmittyAPI] hides the HTTP layer from the session manager and the host
// controller. Every failure, whether a network error, a non-2xx status or a
// "fail" response envelope, is returned as an [*APIError]; authentication
// rejections additionally match [ErrAuthRejected] with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/submitty-sidebar/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/submitty_api_mock.go -package=mock

// SubmittyAPI is the Domain API Client.
type SubmittyAPI interface {
	// SetBaseURL points the client at a Submitty instance, e.g.
	// "https://submitty.example.edu". Safe to call concurrently with requests.
	SetBaseURL(baseURL string)

	// BaseURL returns the configured base URL or "".
	BaseURL() string

	// Login exchanges a user id and password for an API token
	// (POST /api/token).
	Login(ctx context.Context, userID, password string) (string, error)

	// FetchCourses lists the unarchived and dropped courses of the token
	// owner (GET /api/courses).
	FetchCourses(ctx context.Context, token string) (models.Courses, error)

	// FetchGradeDetail returns the grade summary of a gradeable, using the
	// token from the configured token source.
	FetchGradeDetail(ctx context.Context, gradeableID string) (models.GradeSummary, error)

	// FetchAttemptHistory returns previous submission attempts of a
	// gradeable, using the token from the configured token source.
	FetchAttemptHistory(ctx context.Context, gradeableID string) ([]models.AttemptRecord, error)
}
