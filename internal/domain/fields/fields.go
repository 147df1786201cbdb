package fields

import (
	"encoding/json"
	"strings"
)

// GenreList is the comma-joined genre text as stored in the content table
// (e.g. "Action, Drama"). It marshals to a JSON array of trimmed names.
type GenreList string

func (g GenreList) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Names())
}

func (g *GenreList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*g = JoinGenres(names)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = GenreList(s)
	return nil
}

func (g GenreList) Names() []string {
	if g == "" {
		return []string{}
	}
	parts := strings.Split(string(g), ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func JoinGenres(names []string) GenreList {
	return GenreList(strings.Join(names, ", "))
}
