package corpus

// MovieSort is the closed set of orderings for movie listings.
type MovieSort int

const (
	MovieSortTitle MovieSort = iota
	MovieSortYear
	MovieSortRating
)

var movieSortNames = map[string]MovieSort{
	"movie_title": MovieSortTitle,
	"year":        MovieSortYear,
	"rating":      MovieSortRating,
}

// ParseMovieSort maps a query value to a MovieSort. Empty selects the title order.
func ParseMovieSort(s string) (MovieSort, error) {
	if s == "" {
		return MovieSortTitle, nil
	}
	if v, ok := movieSortNames[s]; ok {
		return v, nil
	}
	return 0, InvalidArgument("invalid movie sort %q: expected movie_title, year or rating", s)
}

func (s MovieSort) String() string {
	for name, v := range movieSortNames {
		if v == s {
			return name
		}
	}
	return "unknown"
}

// CharacterSort is the closed set of orderings for character listings.
type CharacterSort int

const (
	CharacterSortName CharacterSort = iota
	CharacterSortMovie
	CharacterSortLines
)

var characterSortNames = map[string]CharacterSort{
	"character":       CharacterSortName,
	"movie":           CharacterSortMovie,
	"number_of_lines": CharacterSortLines,
}

// ParseCharacterSort maps a query value to a CharacterSort. Empty selects the name order.
func ParseCharacterSort(s string) (CharacterSort, error) {
	if s == "" {
		return CharacterSortName, nil
	}
	if v, ok := characterSortNames[s]; ok {
		return v, nil
	}
	return 0, InvalidArgument("invalid character sort %q: expected character, movie or number_of_lines", s)
}

func (s CharacterSort) String() string {
	for name, v := range characterSortNames {
		if v == s {
			return name
		}
	}
	return "unknown"
}

const (
	DefaultLimit = 50
	MaxLimit     = 250
)

// Page selects a window of an ordered result.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return InvalidArgument("limit must be between 1 and %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset < 0 {
		return InvalidArgument("offset must be non-negative, got %d", p.Offset)
	}
	return nil
}

// Slice returns the window of items selected by p.
func Slice[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
