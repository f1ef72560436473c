package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

var controlCharRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// NormalizeNickname trims and validates a requested nickname.
// Nicknames stay case-sensitive.
func NormalizeNickname(nickname string) (string, error) {
	nickname = controlCharRegex.ReplaceAllString(nickname, "")
	nickname = strings.TrimSpace(nickname)

	n := utf8.RuneCountInString(nickname)
	if n < domain.MinNicknameLength || n > domain.MaxNicknameLength {
		return "", domain.ErrInvalidNickname
	}
	return nickname, nil
}

// suggestNickname derives a free variant of base by appending a number,
// keeping the result within the nickname length limit
func suggestNickname(base string, taken func(string) bool) string {
	const maxAttempts = 100

	for i := 2; i < maxAttempts+2; i++ {
		suffix := fmt.Sprintf("%d", i)
		runes := []rune(base)
		if room := domain.MaxNicknameLength - len(suffix); len(runes) > room {
			runes = runes[:room]
		}
		candidate := string(runes) + suffix
		if !taken(candidate) {
			return candidate
		}
	}
	return ""
}
