// Package services contains stateless domain services for the movie bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ghuser/moviebox/services/movie/domain/models"
)

// MaxTitleInDirName caps how much of the title ends up in a directory name.
const MaxTitleInDirName = 30

// SanitizeFilename maps s onto [A-Za-z0-9_.-]. Every other rune becomes an
// underscore and runs of underscores collapse to one. Never fails.
func SanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, r := range s {
		if !isSafeRune(r) {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	default:
		return false
	}
}

// StorageDirName returns "{unixMillis}-{sanitized title}", truncating the
// title to MaxTitleInDirName runes before sanitizing.
func StorageDirName(createdAt time.Time, title string) string {
	return fmt.Sprintf("%d-%s", createdAt.UnixMilli(), SanitizeFilename(truncateRunes(title, MaxTitleInDirName)))
}

// StoredFileName returns "{slot}-{unixMillis}-{sanitized stem}{ext}" for an
// uploaded file. Any client-side directory components are dropped first.
func StoredFileName(slot models.Slot, at time.Time, originalName string) string {
	base := clientBaseName(originalName)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" && ext == "" {
		stem = "upload"
	}
	return fmt.Sprintf("%s-%d-%s%s", slot, at.UnixMilli(), SanitizeFilename(stem), SanitizeFilename(ext))
}

// clientBaseName strips both '/' and '\' separated prefixes; some browsers
// still send "C:\fakepath\clip.mp4".
func clientBaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "." || name == ".." {
		return ""
	}
	return name
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
