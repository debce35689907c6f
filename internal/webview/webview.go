// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package webview renders the document the browser UI is loaded from and
// ships its static assets.
//
// In production the page loads the embedded assets from the host itself and
// allows exactly one inline script, tagged with a fresh nonce. In
// development the scripts come from the local dev server, which the content
// security policy then allows for scripts and live-reload connections.
package webview

import (
	"crypto/rand"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

// DefaultDevServer is the address of the local frontend dev server.
const DefaultDevServer = "localhost:5173"

const (
	nonceBytes   = 16
	devEntry     = "/src/main.tsx"
	devClient    = "/@vite/client"
	scriptAsset  = "/assets/index.js"
	stylesAsset  = "/assets/index.css"
	defaultTitle = "Submitty"
	defaultWS    = "/ws"
)

//go:embed assets
var assets embed.FS

// Assets returns the static files served under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Options configures Render.
type Options struct {
	Production bool
	// DevServer is host:port of the dev server, used outside production.
	DevServer string
	// WebSocketPath is where the page opens the bridge connection.
	WebSocketPath string
	Title         string
}

// Document is a rendered page together with the policy it was rendered for.
type Document struct {
	HTML  string
	CSP   string
	Nonce string
}

type pageConfig struct {
	WebSocketPath string `json:"wsPath"`
	Production    bool   `json:"production"`
}

type pageData struct {
	Title        string
	CSP          string
	Nonce        string
	Config       pageConfig
	StylesURL    string
	ScriptURL    string
	DevClientURL string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta http-equiv="Content-Security-Policy" content="{{ .CSP }}">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" type="text/css" href="{{ .StylesURL }}">
<title>{{ .Title }}</title>
</head>
<body>
<div id="root"></div>
<script nonce="{{ .Nonce }}">window.submittySidebar = {{ .Config }};</script>
{{- with .DevClientURL }}
<script type="module" src="{{ . }}"></script>
{{- end }}
<script type="module" src="{{ .ScriptURL }}"></script>
</body>
</html>
`))

// Render produces the document for opts with a fresh nonce.
func Render(opts Options) (Document, error) {
	nonce, err := NewNonce()
	if err != nil {
		return Document{}, err
	}
	return render(opts, nonce)
}

func render(opts Options, nonce string) (Document, error) {
	if opts.DevServer == "" {
		opts.DevServer = DefaultDevServer
	}
	if opts.WebSocketPath == "" {
		opts.WebSocketPath = defaultWS
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	data := pageData{
		Title:     opts.Title,
		CSP:       ContentSecurityPolicy(opts, nonce),
		Nonce:     nonce,
		Config:    pageConfig{WebSocketPath: opts.WebSocketPath, Production: opts.Production},
		StylesURL: stylesAsset,
		ScriptURL: scriptAsset,
	}
	if !opts.Production {
		origin := "http://" + opts.DevServer
		data.ScriptURL = origin + devEntry
		data.DevClientURL = origin + devClient
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return Document{}, fmt.Errorf("render webview document: %w", err)
	}

	return Document{HTML: sb.String(), CSP: data.CSP, Nonce: nonce}, nil
}

// ContentSecurityPolicy builds the policy for opts. Everything not listed is
// denied.
func ContentSecurityPolicy(opts Options, nonce string) string {
	scripts := []string{"'self'", "'nonce-" + nonce + "'"}
	styles := []string{"'self'"}
	connect := []string{"'self'"}

	if !opts.Production {
		dev := opts.DevServer
		if dev == "" {
			dev = DefaultDevServer
		}
		scripts = append(scripts, "http://"+dev)
		styles = append(styles, "http://"+dev, "'unsafe-inline'")
		connect = append(connect, "ws://"+dev, "http://"+dev)
	}

	directives := []string{
		"default-src 'none'",
		"script-src " + strings.Join(scripts, " "),
		"style-src " + strings.Join(styles, " "),
		"img-src 'self' data:",
		"font-src 'self'",
		"connect-src " + strings.Join(connect, " "),
	}
	return strings.Join(directives, "; ")
}

// NewNonce returns a random base64 value for a CSP nonce.
func NewNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
