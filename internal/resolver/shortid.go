package resolver

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/shoplist/internal/model"
)

// MinShortIDLength is the shortest prefix accepted for lookups.
const MinShortIDLength = 4

// ShortIDLength is how many characters the CLI prints.
const ShortIDLength = 8

// NotFoundError means no id starts with the given prefix.
type NotFoundError struct {
	Kind    string
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s matching %q", e.Kind, e.ShortID)
}

// AmbiguousError means more than one id starts with the prefix.
type AmbiguousError struct {
	Kind    string
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	short := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		short[i] = Short(m)
	}
	return fmt.Sprintf("ambiguous %s %q matches %d ids: %s",
		e.Kind, e.ShortID, len(e.Matches), strings.Join(short, ", "))
}

// Short truncates an id for display.
func Short(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// Resolve finds the one id in ids that equals or starts with shortID.
func Resolve(kind, shortID string, ids []string) (string, error) {
	shortID = strings.TrimSpace(shortID)
	for _, id := range ids {
		if id == shortID {
			return id, nil
		}
	}
	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("%s id must be at least %d characters (got %d)", kind, MinShortIDLength, len(shortID))
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, shortID) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Kind: kind, ShortID: shortID, Matches: matches}
	}
}

// ResolveList resolves a list id prefix against all lists.
func ResolveList(st *model.AppState, shortID string) (string, error) {
	ids := make([]string, len(st.Lists))
	for i, l := range st.Lists {
		ids[i] = l.ID
	}
	return Resolve("list", shortID, ids)
}

// ResolveItem resolves an item id prefix within one list.
func ResolveItem(l *model.List, shortID string) (string, error) {
	if l == nil {
		return "", &NotFoundError{Kind: "item", ShortID: shortID}
	}
	ids := make([]string, len(l.Items))
	for i, it := range l.Items {
		ids[i] = it.ID
	}
	return Resolve("item", shortID, ids)
}
