// Package language maps the ISO 639-3 codes reported by language detection
// to ISO 639-1 codes and display names.
package language
