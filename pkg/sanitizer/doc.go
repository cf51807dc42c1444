// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent. Invalid input is never rejected here: blank
// values come back empty and validation decides what is required.
//
// Normalization includes:
//   - Strings: collapse inner whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Slices: normalize each item, drop blanks and case-insensitive duplicates
package sanitizer
