package model

import (
	"errors"
	"strings"
)

// TranslationRequest is the request body for POST /translate.
type TranslationRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	DestLang   string `json:"dest_lang"`
}

// Validate checks the translation request fields.
func (r *TranslationRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Text) == "" {
		errs = append(errs, FieldError{Field: "text", Message: "text is required"})
	}
	if strings.TrimSpace(r.SourceLang) == "" {
		errs = append(errs, FieldError{Field: "source_lang", Message: "source_lang is required"})
	}
	if strings.TrimSpace(r.DestLang) == "" {
		errs = append(errs, FieldError{Field: "dest_lang", Message: "dest_lang is required"})
	}
	return errs
}

// TranslationResult is the success payload of a translation call. Errors are
// carried as typed Go errors, never folded into the text field.
type TranslationResult struct {
	Text string `json:"text"`
}

var (
	// ErrTranslationNotConfigured means the service has no translator endpoint
	// or API key set.
	ErrTranslationNotConfigured = errors.New("translation service not configured")

	// ErrTranslationUnavailable means the remote translator could not be
	// reached or answered with a non-success status.
	ErrTranslationUnavailable = errors.New("translation service unavailable")

	// ErrTranslationMalformed means the remote translator answered with a
	// payload we could not interpret.
	ErrTranslationMalformed = errors.New("translation service returned malformed data")
)
