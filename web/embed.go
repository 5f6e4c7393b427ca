// Package web embeds the browser-side assets served by the API.
package web

import _ "embed"

//go:embed tracker.js
var TrackerJS []byte
