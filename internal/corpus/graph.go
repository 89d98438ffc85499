// Package corpus holds the in-memory entity graph of the dialogue corpus and
// the queries answered by traversing it.
//
// A Graph is immutable once built. Writers derive a new Graph with
// WithConversation and publish it; readers never observe a partial rebuild.
package corpus

import (
	"cmp"
	"maps"
	"slices"

	"corpus-backend/internal/models"
)

// Records is the flat, table-shaped form of the corpus as stored on disk.
type Records struct {
	Movies        []models.Movie
	Characters    []models.Character
	Conversations []models.Conversation
	Lines         []models.Line
}

type movieNode struct {
	models.Movie
	characterIDs    []int64
	conversationIDs []int64
}

type characterNode struct {
	models.Character
	lineIDs         []int64
	conversationIDs []int64
}

type conversationNode struct {
	models.Conversation
	lineIDs []int64 // ordered by line sort
}

type Graph struct {
	movies        map[int64]*movieNode
	characters    map[int64]*characterNode
	conversations map[int64]*conversationNode
	lines         map[int64]*models.Line

	// lineOrder lists every line id by (conversation id, line sort, line id).
	lineOrder []int64

	maxConversationID int64
	maxLineID         int64
}

// Counts summarises the size of a graph.
type Counts struct {
	Movies        int
	Characters    int
	Conversations int
	Lines         int
}

// Build indexes records into a Graph, deriving every back-reference from the
// forward foreign keys. Rows that break referential integrity are rejected.
func Build(r *Records) (*Graph, error) {
	g := &Graph{
		movies:            make(map[int64]*movieNode, len(r.Movies)),
		characters:        make(map[int64]*characterNode, len(r.Characters)),
		conversations:     make(map[int64]*conversationNode, len(r.Conversations)),
		lines:             make(map[int64]*models.Line, len(r.Lines)),
		maxConversationID: -1,
		maxLineID:         -1,
	}

	for _, m := range r.Movies {
		if _, dup := g.movies[m.ID]; dup {
			return nil, InvalidArgument("movies: duplicate movie_id %d", m.ID)
		}
		g.movies[m.ID] = &movieNode{Movie: m}
	}

	for _, c := range r.Characters {
		if _, dup := g.characters[c.ID]; dup {
			return nil, InvalidArgument("characters: duplicate character_id %d", c.ID)
		}
		movie, ok := g.movies[c.MovieID]
		if !ok {
			return nil, InvalidArgument("characters: character %d references unknown movie %d", c.ID, c.MovieID)
		}
		g.characters[c.ID] = &characterNode{Character: c}
		movie.characterIDs = append(movie.characterIDs, c.ID)
	}

	for _, cv := range r.Conversations {
		if _, dup := g.conversations[cv.ID]; dup {
			return nil, InvalidArgument("conversations: duplicate conversation_id %d", cv.ID)
		}
		if err := g.checkParticipants(cv); err != nil {
			return nil, err
		}
		g.conversations[cv.ID] = &conversationNode{Conversation: cv}
		g.movies[cv.MovieID].conversationIDs = append(g.movies[cv.MovieID].conversationIDs, cv.ID)
		g.characters[cv.Character1ID].conversationIDs = append(g.characters[cv.Character1ID].conversationIDs, cv.ID)
		g.characters[cv.Character2ID].conversationIDs = append(g.characters[cv.Character2ID].conversationIDs, cv.ID)
		g.maxConversationID = max(g.maxConversationID, cv.ID)
	}

	seenSort := make(map[int64]map[int]struct{}, len(r.Conversations))
	for i := range r.Lines {
		l := r.Lines[i]
		if _, dup := g.lines[l.ID]; dup {
			return nil, InvalidArgument("lines: duplicate line_id %d", l.ID)
		}
		if err := g.checkLine(&l); err != nil {
			return nil, err
		}
		sorts := seenSort[l.ConversationID]
		if sorts == nil {
			sorts = make(map[int]struct{})
			seenSort[l.ConversationID] = sorts
		}
		if _, dup := sorts[l.LineSort]; dup {
			return nil, InvalidArgument("lines: line %d repeats line_sort %d in conversation %d", l.ID, l.LineSort, l.ConversationID)
		}
		sorts[l.LineSort] = struct{}{}

		g.lines[l.ID] = &l
		g.characters[l.CharacterID].lineIDs = append(g.characters[l.CharacterID].lineIDs, l.ID)
		g.conversations[l.ConversationID].lineIDs = append(g.conversations[l.ConversationID].lineIDs, l.ID)
		g.lineOrder = append(g.lineOrder, l.ID)
		g.maxLineID = max(g.maxLineID, l.ID)
	}

	for _, cv := range g.conversations {
		slices.SortFunc(cv.lineIDs, func(a, b int64) int {
			return cmp.Compare(g.lines[a].LineSort, g.lines[b].LineSort)
		})
	}
	slices.SortFunc(g.lineOrder, g.compareLineOrder)

	return g, nil
}

func (g *Graph) checkParticipants(cv models.Conversation) error {
	if _, ok := g.movies[cv.MovieID]; !ok {
		return InvalidArgument("conversations: conversation %d references unknown movie %d", cv.ID, cv.MovieID)
	}
	if cv.Character1ID == cv.Character2ID {
		return InvalidArgument("conversations: conversation %d has identical participants %d", cv.ID, cv.Character1ID)
	}
	for _, id := range []int64{cv.Character1ID, cv.Character2ID} {
		ch, ok := g.characters[id]
		if !ok {
			return InvalidArgument("conversations: conversation %d references unknown character %d", cv.ID, id)
		}
		if ch.MovieID != cv.MovieID {
			return InvalidArgument("conversations: character %d of conversation %d is not in movie %d", id, cv.ID, cv.MovieID)
		}
	}
	return nil
}

func (g *Graph) checkLine(l *models.Line) error {
	cv, ok := g.conversations[l.ConversationID]
	if !ok {
		return InvalidArgument("lines: line %d references unknown conversation %d", l.ID, l.ConversationID)
	}
	if _, ok := g.characters[l.CharacterID]; !ok {
		return InvalidArgument("lines: line %d references unknown character %d", l.ID, l.CharacterID)
	}
	if l.MovieID != cv.MovieID {
		return InvalidArgument("lines: line %d is in movie %d but its conversation is in movie %d", l.ID, l.MovieID, cv.MovieID)
	}
	if l.CharacterID != cv.Character1ID && l.CharacterID != cv.Character2ID {
		return InvalidArgument("lines: speaker %d of line %d is not a participant of conversation %d", l.CharacterID, l.ID, cv.ID)
	}
	return nil
}

func (g *Graph) compareLineOrder(a, b int64) int {
	la, lb := g.lines[a], g.lines[b]
	return cmp.Or(
		cmp.Compare(la.ConversationID, lb.ConversationID),
		cmp.Compare(la.LineSort, lb.LineSort),
		cmp.Compare(la.ID, lb.ID),
	)
}

func (g *Graph) Counts() Counts {
	return Counts{
		Movies:        len(g.movies),
		Characters:    len(g.characters),
		Conversations: len(g.conversations),
		Lines:         len(g.lines),
	}
}

// PrepareConversation validates a new conversation against the graph and
// assigns it the next free conversation id and line ids. Line sort starts at 0
// and follows input order. The graph itself is not modified.
func (g *Graph) PrepareConversation(nc models.NewConversation) (models.Conversation, []models.Line, error) {
	if _, ok := g.movies[nc.MovieID]; !ok {
		return models.Conversation{}, nil, NotFound("movie not found")
	}
	if c, ok := g.characters[nc.Character1ID]; !ok || c.MovieID != nc.MovieID {
		return models.Conversation{}, nil, NotFound("character 1 not found")
	}
	if c, ok := g.characters[nc.Character2ID]; !ok || c.MovieID != nc.MovieID {
		return models.Conversation{}, nil, NotFound("character 2 not found")
	}
	if nc.Character1ID == nc.Character2ID {
		return models.Conversation{}, nil, InvalidArgument("character 1 and character 2 must be different")
	}
	for i, l := range nc.Lines {
		if l.CharacterID != nc.Character1ID && l.CharacterID != nc.Character2ID {
			return models.Conversation{}, nil, InvalidArgument("line %d is spoken by character %d who is not in the conversation", i, l.CharacterID)
		}
	}

	conv := models.Conversation{
		ID:           g.maxConversationID + 1,
		Character1ID: nc.Character1ID,
		Character2ID: nc.Character2ID,
		MovieID:      nc.MovieID,
	}
	lines := make([]models.Line, len(nc.Lines))
	for i, l := range nc.Lines {
		lines[i] = models.Line{
			ID:             g.maxLineID + 1 + int64(i),
			CharacterID:    l.CharacterID,
			MovieID:        nc.MovieID,
			ConversationID: conv.ID,
			LineSort:       i,
			LineText:       l.Text,
		}
	}
	return conv, lines, nil
}

// WithConversation returns a new graph that also contains conv and its lines.
// The receiver is left untouched so that readers holding it stay consistent.
// conv and lines must come from PrepareConversation on the same graph.
func (g *Graph) WithConversation(conv models.Conversation, lines []models.Line) *Graph {
	next := &Graph{
		movies:            maps.Clone(g.movies),
		characters:        maps.Clone(g.characters),
		conversations:     maps.Clone(g.conversations),
		lines:             maps.Clone(g.lines),
		maxConversationID: max(g.maxConversationID, conv.ID),
		maxLineID:         g.maxLineID,
	}

	movie := *g.movies[conv.MovieID]
	movie.conversationIDs = append(slices.Clip(movie.conversationIDs), conv.ID)
	next.movies[conv.MovieID] = &movie

	node := &conversationNode{Conversation: conv, lineIDs: make([]int64, 0, len(lines))}
	next.conversations[conv.ID] = node

	touched := map[int64]*characterNode{}
	character := func(id int64) *characterNode {
		if c, ok := touched[id]; ok {
			return c
		}
		c := *g.characters[id]
		c.lineIDs = slices.Clip(c.lineIDs)
		c.conversationIDs = slices.Clip(c.conversationIDs)
		touched[id] = &c
		next.characters[id] = &c
		return &c
	}
	c1, c2 := character(conv.Character1ID), character(conv.Character2ID)
	c1.conversationIDs = append(c1.conversationIDs, conv.ID)
	c2.conversationIDs = append(c2.conversationIDs, conv.ID)

	added := make([]int64, 0, len(lines))
	for i := range lines {
		l := lines[i]
		next.lines[l.ID] = &l
		node.lineIDs = append(node.lineIDs, l.ID)
		speaker := character(l.CharacterID)
		speaker.lineIDs = append(speaker.lineIDs, l.ID)
		added = append(added, l.ID)
		next.maxLineID = max(next.maxLineID, l.ID)
	}

	// New conversation ids are larger than every existing one, so the new
	// lines sort after all current lines.
	next.lineOrder = slices.Concat(g.lineOrder, added)
	return next
}
