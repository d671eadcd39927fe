// Package sanitizer normalizes lead form input before validation.
//
// All functions are idempotent. Invalid input yields an empty string rather
// than an error; validators decide whether empty is acceptable.
//
// Normalization includes:
//   - Text fields: collapse whitespace, trim leading/trailing spaces
//   - Emails: trimmed and lower-cased
//   - Phone numbers: composed "<dial code> <number>" values to E.164
package sanitizer
