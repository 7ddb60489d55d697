package model

import "strings"

// NormalizeRepo lowercases and trims an owner/name repository identity.
func NormalizeRepo(fullName string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(fullName), "/"))
}

// NormalizeChannel lowercases a channel name.
func NormalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimSpace(channel))
}

// RepoShortName returns the part of owner/name after the slash.
func RepoShortName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
