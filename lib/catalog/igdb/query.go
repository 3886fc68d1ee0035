package igdb

import (
	"fmt"
	"strings"
)

// gameFields is every field the sync pipeline consumes. keep in sync
// with Game.
var gameFields = []string{
	"name",
	"summary",
	"first_release_date",
	"cover.url",
	"platforms.name",
	"genres.name",
	"involved_companies.company.name",
	"involved_companies.developer",
	"involved_companies.publisher",
	"screenshots.url",
	"alternative_names.name",
	"franchises.name",
	"collections.name",
	"total_rating",
	"total_rating_count",
	"category",
	"parent_game",
}

type gamesQuery struct {
	Where  string
	Offset int64
	Limit  int64
}

// String renders the query in the catalog's apicalypse syntax.
func (q gamesQuery) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, "fields %s;\n", strings.Join(gameFields, ","))
	if q.Where != "" {
		fmt.Fprintf(&out, "where %s;\n", q.Where)
	}
	fmt.Fprintf(&out, "offset %d;\n", q.Offset)
	fmt.Fprintf(&out, "limit %d;\n", q.Limit)
	out.WriteString("sort id asc;\n")
	return out.String()
}
