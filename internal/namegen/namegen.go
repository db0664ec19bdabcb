package namegen

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Word lists for generating competitor display names
var adjectives = []string{
	"swift", "clever", "bright", "bold", "eager", "lively", "mighty", "noble",
	"quick", "sharp", "steady", "keen", "daring", "witty", "cosmic", "epic",
	"turbo", "zippy", "stellar", "rapid", "fearless", "focused", "tireless",
}

var nouns = []string{
	"falcon", "tiger", "dolphin", "panda", "wolf", "phoenix", "comet", "scholar",
	"owl", "fox", "hawk", "lynx", "otter", "raven", "badger", "coder",
	"thinker", "reader", "wizard", "pioneer", "explorer", "champion",
}

// Avatar glyphs assigned to generated competitors
var avatars = []string{"🦊", "🐼", "🦉", "🐯", "🐺", "🦅", "🐬", "🤖", "👾", "🧠"}

// GenerateCompetitorName generates a random display name like "Swift Falcon"
func GenerateCompetitorName() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	return title(adjective) + " " + title(noun), nil
}

// PickAvatar returns a random avatar glyph
func PickAvatar() (string, error) {
	return randomElement(avatars)
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}

// title uppercases the first letter of an ASCII word
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
