package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the embedded base stylesheet, inlined by default.
	StylesheetName = "regform.css"
	// RuntimeScriptName is the live validation script served from the root
	// runtime bundle.
	RuntimeScriptName = "regform-live.js"

	pageTemplate = "templates/registration.tmpl"
)

// TemplatesFS exposes the embedded template bundle for consumers that want to
// override a single template and keep the rest.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so callers can serve it instead of
// inlining it.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
