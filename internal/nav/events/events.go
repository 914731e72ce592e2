// Package events defines the bus messages exchanged between the host, the
// controllers and cosmetic listeners.
package events

import (
	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/nav/episode"
)

const (
	// TypeContact carries a Contact from the host to a controller.
	TypeContact = "contact"
	// TypeEpisodeBegin carries an EpisodeBegin after a controller reset.
	TypeEpisodeBegin = "episode.begin"
	// TypeEpisodeEnd carries an EpisodeEnd once per finished episode.
	TypeEpisodeEnd = "episode.end"
)

// Contact is a tagged collision or trigger reported by the host.
type Contact struct {
	Tag episode.Tag
}

type EpisodeBegin struct {
	Agent string
	Index uint64
}

type EpisodeEnd struct {
	Agent  string
	Record episode.Record
}

// NewContact builds a contact event from source.
func NewContact(source string, tag episode.Tag) bus.Event {
	return bus.NewEvent(TypeContact, source, Contact{Tag: tag})
}

func NewEpisodeBegin(agent string, index uint64) bus.Event {
	return bus.NewEvent(TypeEpisodeBegin, agent, EpisodeBegin{Agent: agent, Index: index})
}

func NewEpisodeEnd(agent string, rec episode.Record) bus.Event {
	return bus.NewEvent(TypeEpisodeEnd, agent, EpisodeEnd{Agent: agent, Record: rec})
}
