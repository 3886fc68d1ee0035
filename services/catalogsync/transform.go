package catalogsync

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gamereviews-backend/lib/catalog/igdb"
	"gamereviews-backend/services/catalogsync/db"
)

// TransformGame maps one source record to the local schema. it does
// no i/o and never fails on a missing optional field, those map to
// null/empty. only a record without an id or name is rejected.
func TransformGame(src igdb.Game, now time.Time) (db.CreateGameParams, error) {
	if src.ID == 0 {
		return db.CreateGameParams{}, fmt.Errorf("record has no id")
	}
	if src.Name == "" {
		return db.CreateGameParams{}, fmt.Errorf("record %d has no name", src.ID)
	}

	screenshots := make([]string, 0, len(src.Screenshots))
	for _, s := range src.Screenshots {
		if s.Url == "" {
			continue
		}
		screenshots = append(screenshots, canonicalImageUrl(s.Url))
	}

	var cover sql.NullString
	if src.Cover != nil && src.Cover.Url != "" {
		cover = nullString(canonicalImageUrl(src.Cover.Url))
	}

	var rating sql.NullInt64
	if src.TotalRating > 0 {
		rating = sql.NullInt64{Int64: int64(src.TotalRating + 0.5), Valid: true}
	}

	var parent sql.NullInt64
	if src.ParentGame != 0 {
		parent = sql.NullInt64{Int64: src.ParentGame, Valid: true}
	}

	return db.CreateGameParams{
		IgdbID:           src.ID,
		Name:             src.Name,
		Slug:             Slugify(src.Name),
		Summary:          nullString(src.Summary),
		ReleaseDate:      epochToDate(src.FirstReleaseDate),
		CoverUrl:         cover,
		Developer:        primaryCompany(src.InvolvedCompanies, func(c igdb.InvolvedCompany) bool { return c.Developer }),
		Publisher:        primaryCompany(src.InvolvedCompanies, func(c igdb.InvolvedCompany) bool { return c.Publisher }),
		Platforms:        jsonNames(src.Platforms),
		Genres:           jsonNames(src.Genres),
		Screenshots:      jsonStrings(screenshots),
		AlternativeNames: jsonNames(src.AlternativeNames),
		FranchiseName:    firstName(src.Franchises),
		CollectionName:   firstName(src.Collections),
		TotalRating:      rating,
		RatingCount:      src.TotalRatingCount,
		Category:         sql.NullInt64{Int64: src.Category, Valid: true},
		ParentIgdbID:     parent,
		LastSynced:       now.Unix(),
	}, nil
}

// Slugify derives a url-safe slug from a display name: lowercase,
// runs of anything non-alphanumeric collapse into a single hyphen,
// no leading or trailing hyphens.
func Slugify(name string) string {
	var out strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = true
			continue
		}
		if pendingHyphen && out.Len() > 0 {
			out.WriteByte('-')
		}
		pendingHyphen = false
		out.WriteRune(r)
	}
	return out.String()
}

const imageSizeToken = "t_1080p"

// canonicalImageUrl rewrites the catalog's templated media urls
// (scheme-relative, thumbnail-sized) into absolute urls at a fixed
// display size.
func canonicalImageUrl(raw string) string {
	out := strings.Replace(raw, "//images.igdb.com", "https://images.igdb.com", 1)
	out = strings.Replace(out, "t_thumb", imageSizeToken, 1)
	return out
}

func epochToDate(epoch int64) sql.NullString {
	if epoch <= 0 {
		return sql.NullString{}
	}
	return sql.NullString{
		String: time.Unix(epoch, 0).UTC().Format("2006-01-02"),
		Valid:  true,
	}
}

// primaryCompany picks the first company whose role flag matches,
// falling back to the first company when no role matches and null
// when the list is empty.
func primaryCompany(companies []igdb.InvolvedCompany, role func(igdb.InvolvedCompany) bool) sql.NullString {
	for _, c := range companies {
		if role(c) && c.Company.Name != "" {
			return nullString(c.Company.Name)
		}
	}
	for _, c := range companies {
		if c.Company.Name != "" {
			return nullString(c.Company.Name)
		}
	}
	return sql.NullString{}
}

func firstName(entities []igdb.NamedEntity) sql.NullString {
	if len(entities) == 0 {
		return sql.NullString{}
	}
	return nullString(entities[0].Name)
}

func jsonNames(entities []igdb.NamedEntity) string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name == "" {
			continue
		}
		names = append(names, e.Name)
	}
	return jsonStrings(names)
}

func jsonStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	// marshalling a []string cannot fail
	out, _ := json.Marshal(values)
	return string(out)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
