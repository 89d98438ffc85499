package corpus

import (
	"cmp"
	"slices"
	"strings"

	"corpus-backend/internal/models"
)

const topCharacterCount = 5

type movieComparator func(a, b *movieNode) int

// Ties are broken by ascending id so that pages are stable.
var movieComparators = map[MovieSort]movieComparator{
	MovieSortTitle: func(a, b *movieNode) int {
		return cmp.Or(strings.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	},
	MovieSortYear: func(a, b *movieNode) int {
		return cmp.Or(strings.Compare(a.Year, b.Year), cmp.Compare(a.ID, b.ID))
	},
	MovieSortRating: func(a, b *movieNode) int {
		return cmp.Or(compareRatingDesc(a.IMDBRating, b.IMDBRating), cmp.Compare(a.ID, b.ID))
	},
}

// compareRatingDesc orders higher ratings first and missing ratings last.
func compareRatingDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}

type characterComparator func(g *Graph, a, b *characterNode) int

var characterComparators = map[CharacterSort]characterComparator{
	CharacterSortName: func(_ *Graph, a, b *characterNode) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	},
	CharacterSortMovie: func(g *Graph, a, b *characterNode) int {
		return cmp.Or(strings.Compare(g.movies[a.MovieID].Title, g.movies[b.MovieID].Title), cmp.Compare(a.ID, b.ID))
	},
	CharacterSortLines: func(_ *Graph, a, b *characterNode) int {
		return cmp.Or(cmp.Compare(len(b.lineIDs), len(a.lineIDs)), cmp.Compare(a.ID, b.ID))
	},
}

// containsFold reports whether s contains upperSubstr, which must already be
// upper-cased, ignoring case.
func containsFold(s, upperSubstr string) bool {
	return strings.Contains(strings.ToUpper(s), upperSubstr)
}

func (g *Graph) GetMovie(id int64) (*models.MovieDetail, error) {
	movie, ok := g.movies[id]
	if !ok {
		return nil, NotFound("movie not found")
	}

	cast := make([]*characterNode, 0, len(movie.characterIDs))
	for _, cid := range movie.characterIDs {
		cast = append(cast, g.characters[cid])
	}
	slices.SortFunc(cast, func(a, b *characterNode) int {
		return characterComparators[CharacterSortLines](g, a, b)
	})

	top := make([]models.TopCharacter, 0, topCharacterCount)
	for _, c := range cast[:min(len(cast), topCharacterCount)] {
		top = append(top, models.TopCharacter{
			CharacterID: c.ID,
			Character:   c.Name,
			NumLines:    len(c.lineIDs),
		})
	}

	return &models.MovieDetail{
		MovieID:       movie.ID,
		Title:         movie.Title,
		TopCharacters: top,
	}, nil
}

func (g *Graph) ListMovies(name string, sort MovieSort, page Page) ([]models.MovieSummary, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	compare, ok := movieComparators[sort]
	if !ok {
		return nil, InvalidArgument("invalid movie sort %d", sort)
	}

	needle := strings.ToUpper(name)
	items := make([]*movieNode, 0, len(g.movies))
	for _, m := range g.movies {
		if needle == "" || containsFold(m.Title, needle) {
			items = append(items, m)
		}
	}
	slices.SortFunc(items, compare)

	window := Slice(items, page)
	out := make([]models.MovieSummary, 0, len(window))
	for _, m := range window {
		out = append(out, models.MovieSummary{
			MovieID:    m.ID,
			MovieTitle: m.Title,
			Year:       m.Year,
			IMDBRating: m.IMDBRating,
			IMDBVotes:  m.IMDBVotes,
		})
	}
	return out, nil
}

func (g *Graph) GetCharacter(id int64) (*models.CharacterDetail, error) {
	character, ok := g.characters[id]
	if !ok {
		return nil, NotFound("character not found")
	}

	together := map[int64]int{}
	for _, cvID := range character.conversationIDs {
		cv := g.conversations[cvID]
		other := cv.Character1ID
		if other == id {
			other = cv.Character2ID
		}
		together[other] += len(cv.lineIDs)
	}

	partners := make([]models.ConversationPartner, 0, len(together))
	for otherID, n := range together {
		other := g.characters[otherID]
		partners = append(partners, models.ConversationPartner{
			CharacterID:           other.ID,
			Character:             other.Name,
			Gender:                other.Gender,
			NumberOfLinesTogether: n,
		})
	}
	slices.SortFunc(partners, func(a, b models.ConversationPartner) int {
		return cmp.Or(
			cmp.Compare(b.NumberOfLinesTogether, a.NumberOfLinesTogether),
			cmp.Compare(a.CharacterID, b.CharacterID),
		)
	})

	return &models.CharacterDetail{
		CharacterID:      character.ID,
		Character:        character.Name,
		Movie:            g.movies[character.MovieID].Title,
		Gender:           character.Gender,
		TopConversations: partners,
	}, nil
}

func (g *Graph) ListCharacters(name string, sort CharacterSort, page Page) ([]models.CharacterSummary, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	compare, ok := characterComparators[sort]
	if !ok {
		return nil, InvalidArgument("invalid character sort %d", sort)
	}

	needle := strings.ToUpper(name)
	items := make([]*characterNode, 0, len(g.characters))
	for _, c := range g.characters {
		if needle == "" || containsFold(c.Name, needle) {
			items = append(items, c)
		}
	}
	slices.SortFunc(items, func(a, b *characterNode) int { return compare(g, a, b) })

	window := Slice(items, page)
	out := make([]models.CharacterSummary, 0, len(window))
	for _, c := range window {
		out = append(out, models.CharacterSummary{
			CharacterID:   c.ID,
			Character:     c.Name,
			Movie:         g.movies[c.MovieID].Title,
			NumberOfLines: len(c.lineIDs),
		})
	}
	return out, nil
}

func (g *Graph) GetConversation(id int64) (*models.ConversationTranscript, error) {
	cv, ok := g.conversations[id]
	if !ok {
		return nil, NotFound("conversation not found")
	}

	lines := make([]models.TranscriptLine, 0, len(cv.lineIDs))
	for _, lid := range cv.lineIDs {
		l := g.lines[lid]
		lines = append(lines, models.TranscriptLine{
			CharacterName: g.characters[l.CharacterID].Name,
			Line:          l.LineText,
		})
	}

	return &models.ConversationTranscript{
		ConversationID: cv.ID,
		MovieID:        cv.MovieID,
		MovieTitle:     g.movies[cv.MovieID].Title,
		Lines:          lines,
	}, nil
}

func (g *Graph) GetLine(id int64) (*models.LineDetail, error) {
	l, ok := g.lines[id]
	if !ok {
		return nil, NotFound("line not found")
	}

	cv := g.conversations[l.ConversationID]
	spokenTo := cv.Character2ID
	if spokenTo == l.CharacterID {
		spokenTo = cv.Character1ID
	}

	return &models.LineDetail{
		LineID:         l.ID,
		Movie:          g.movies[l.MovieID].Title,
		SpokenBy:       g.characters[l.CharacterID].Name,
		SpokenTo:       g.characters[spokenTo].Name,
		ConversationID: l.ConversationID,
		Line:           l.LineText,
	}, nil
}

func (g *Graph) ListLines(character, movie string, page Page) ([]models.LineSummary, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	characterNeedle := strings.ToUpper(character)
	movieNeedle := strings.ToUpper(movie)

	out := make([]models.LineSummary, 0, min(page.Limit, len(g.lineOrder)))
	skipped := 0
	for _, lid := range g.lineOrder {
		if len(out) >= page.Limit {
			break
		}
		l := g.lines[lid]
		speaker := g.characters[l.CharacterID]
		film := g.movies[l.MovieID]
		if characterNeedle != "" && !containsFold(speaker.Name, characterNeedle) {
			continue
		}
		if movieNeedle != "" && !containsFold(film.Title, movieNeedle) {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		out = append(out, models.LineSummary{
			LineID:        l.ID,
			MovieTitle:    film.Title,
			CharacterName: speaker.Name,
			Line:          l.LineText,
		})
	}
	return out, nil
}
