// Package util holds small helpers shared by the speech packages: size
// parsing for config values, secret masking for logs, pointer helpers and
// file-name extraction from storage URLs.
package util
