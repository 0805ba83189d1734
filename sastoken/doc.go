// Package sastoken reads the expiry of signed storage URLs.
//
// Signed URLs carry their expiry in the "se" query parameter
// (YYYY-MM-DDTHH:MM:SSZ). A URL without a readable expiry is treated as
// non-expiring; nothing in this package returns an error.
package sastoken
