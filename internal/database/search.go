package database

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern makes s match literally inside a LIKE pattern.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}
