// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package webview

import (
	"encoding/base64"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Production(t *testing.T) {
	doc, err := render(Options{Production: true}, "bm9uY2U=")
	require.NoError(t, err)

	assert.Equal(t,
		"default-src 'none'; script-src 'self' 'nonce-bm9uY2U='; style-src 'self'; img-src 'self' data:; font-src 'self'; connect-src 'self'",
		doc.CSP)
	assert.Contains(t, doc.HTML, `<script nonce="bm9uY2U=">`)
	assert.Contains(t, doc.HTML, `src="/assets/index.js"`)
	assert.Contains(t, doc.HTML, `href="/assets/index.css"`)
	assert.Contains(t, doc.HTML, "wsPath")
	assert.NotContains(t, doc.HTML, "localhost:5173")
	assert.Equal(t, 1, strings.Count(doc.HTML, "<script nonce="), "exactly one inline script")
}

func TestRender_Development(t *testing.T) {
	doc, err := render(Options{}, "abc")
	require.NoError(t, err)

	assert.Contains(t, doc.CSP, "script-src 'self' 'nonce-abc' http://localhost:5173")
	assert.Contains(t, doc.CSP, "connect-src 'self' ws://localhost:5173 http://localhost:5173")
	assert.True(t, strings.HasPrefix(doc.CSP, "default-src 'none'"))
	assert.Contains(t, doc.HTML, `src="http://localhost:5173/src/main.tsx"`)
	assert.Contains(t, doc.HTML, `src="http://localhost:5173/@vite/client"`)
}

func TestRender_CustomDevServerAndTitle(t *testing.T) {
	doc, err := render(Options{DevServer: "127.0.0.1:3000", Title: "<Sidebar>"}, "n")
	require.NoError(t, err)

	assert.Contains(t, doc.CSP, "ws://127.0.0.1:3000")
	assert.Contains(t, doc.HTML, "<title>&lt;Sidebar&gt;</title>")
}

func TestRender_FreshNonce(t *testing.T) {
	a, err := Render(Options{Production: true})
	require.NoError(t, err)
	b, err := Render(Options{Production: true})
	require.NoError(t, err)

	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.Contains(t, a.CSP, "'nonce-"+a.Nonce+"'")
}

func TestNewNonce(t *testing.T) {
	n, err := NewNonce()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(n)
	require.NoError(t, err)
	assert.Len(t, raw, nonceBytes)
}

func TestAssets(t *testing.T) {
	for _, name := range []string{"index.js", "index.css"} {
		b, err := fs.ReadFile(Assets(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, b)
	}
}
