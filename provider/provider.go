// Package provider defines machine-translation backends for filling merge
// plans: an OpenAI chat backend, a glossary-only offline backend, and a
// mock for tests.
package provider

import "github.com/RimLocale/rimloc"

// Provider is an alias to the main package interface for convenience.
type Provider = rimloc.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = rimloc.TranslateRequest
