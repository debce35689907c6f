// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-02", "")
	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "N/A (commit: N/A, built: 2026-01-02)", info.String())

	assert.Equal(t, "0.3.0", info.WithFallbackVersion("0.3.0").BuildVersion())
	assert.Equal(t, "N/A", info.WithFallbackVersion("").BuildVersion())
	assert.Equal(t, "1.0.0", NewAppBuildInfo("1.0.0", "", "").WithFallbackVersion("0.3.0").BuildVersion())
}
