package storage

import (
	"net/url"
	"strings"
)

// Namespace is the set of storage keys that belong to one user.
type Namespace struct {
	User           string
	Missions       string
	Diaries        string
	Characters     string
	Templates      string
	Representative string
}

// NamespaceFor derives the keys for user. The identity is path-escaped so two
// distinct users can never share a key.
func NamespaceFor(user string) (Namespace, error) {
	u := strings.TrimSpace(user)
	if u == "" {
		return Namespace{}, ErrInvalidIdentity
	}
	prefix := "users/" + url.PathEscape(u) + "/"
	return Namespace{
		User:           u,
		Missions:       prefix + "missions",
		Diaries:        prefix + "diaries",
		Characters:     prefix + "characters",
		Templates:      prefix + "templates",
		Representative: prefix + "representative",
	}, nil
}

func (n Namespace) Keys() []string {
	return []string{n.Missions, n.Diaries, n.Characters, n.Templates, n.Representative}
}
