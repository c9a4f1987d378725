package sysinfo

import (
	"path/filepath"
	"strings"
)

// gitRevision resolves .git/HEAD under root to a 7-character commit hash.
// HEAD may hold the hash directly (detached) or a "ref: " pointer resolved
// through the named reference file. Returns "" for anything missing,
// unreadable, or malformed.
func gitRevision(root string, readFile func(string) (string, error)) string {
	if root == "" {
		return ""
	}
	head, err := readFile(filepath.Join(root, ".git", "HEAD"))
	if err != nil {
		return ""
	}
	head = strings.TrimSpace(head)
	if ref, ok := strings.CutPrefix(head, "ref: "); ok {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.Contains(ref, "..") {
			return ""
		}
		target, err := readFile(filepath.Join(root, ".git", filepath.FromSlash(ref)))
		if err != nil {
			return ""
		}
		head = strings.TrimSpace(target)
	}
	return shortHash(head)
}

func shortHash(s string) string {
	if len(s) < 7 {
		return ""
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return ""
		}
	}
	return s[:7]
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
