package gameflow

import "GameFlowApi/internal/clock"

// EventKind is the normalized play-by-play event type. The upstream feed
// encodes events as numeric (EVENTMSGTYPE, EVENTMSGACTIONTYPE) pairs; KindOf
// maps them. Every kind has an entry in statFolds, verified by test, so a new
// kind cannot silently fall through attribution.
type EventKind int

const (
	KindOther EventKind = iota
	KindMake2
	KindMake3
	KindMakeOther
	KindMiss2
	KindMiss3
	KindMissOther
	KindFreeThrow
	KindRebound
	KindTurnover
	KindFoul
	kindSentinel // keep last
)

func (k EventKind) String() string {
	switch k {
	case KindMake2:
		return "make2"
	case KindMake3:
		return "make3"
	case KindMakeOther:
		return "make"
	case KindMiss2:
		return "miss2"
	case KindMiss3:
		return "miss3"
	case KindMissOther:
		return "miss"
	case KindFreeThrow:
		return "fta"
	case KindRebound:
		return "reb"
	case KindTurnover:
		return "tov"
	case KindFoul:
		return "foul"
	default:
		return "other"
	}
}

// Upstream EVENTMSGTYPE codes.
const (
	msgTypeMake      = 1
	msgTypeMiss      = 2
	msgTypeFreeThrow = 3
	msgTypeRebound   = 4
	msgTypeTurnover  = 5
	msgTypeFoul      = 6
)

// KindOf maps an (EVENTMSGTYPE, EVENTMSGACTIONTYPE) pair to an EventKind.
func KindOf(msgType, actionType int) EventKind {
	switch msgType {
	case msgTypeMake:
		switch actionType {
		case 1:
			return KindMake2
		case 2, 3:
			return KindMake3
		default:
			return KindMakeOther
		}
	case msgTypeMiss:
		switch actionType {
		case 1:
			return KindMiss2
		case 2, 3:
			return KindMiss3
		default:
			return KindMissOther
		}
	case msgTypeFreeThrow:
		return KindFreeThrow
	case msgTypeRebound:
		return KindRebound
	case msgTypeTurnover:
		return KindTurnover
	case msgTypeFoul:
		return KindFoul
	default:
		return KindOther
	}
}

// Event is one normalized play-by-play occurrence. PlayerID is the primary
// actor; AssistID, StealID and BlockID carry secondary credit (0 when absent).
// Read-only input to attribution, never mutated.
type Event struct {
	Period      int            `json:"period"`
	Clock       clock.Duration `json:"clock"`
	Kind        EventKind      `json:"-"`
	PlayerID    int64          `json:"-"`
	AssistID    int64          `json:"-"`
	StealID     int64          `json:"-"`
	BlockID     int64          `json:"-"`
	Offensive   bool           `json:"-"`
	Made        bool           `json:"-"`
	Description string         `json:"description"`
}

// statFolds maps every EventKind onto its statline mutation. The subtype
// behind MakeOther/MissOther is ambiguous in the feed, so those (and
// KindOther) are explicit no-ops rather than guessed field goals.
var statFolds = map[EventKind]func(*Statline, Event){
	KindMake2: func(s *Statline, _ Event) {
		s.FGM++
		s.FGA++
		s.Pts += 2
	},
	KindMake3: func(s *Statline, _ Event) {
		s.FGM++
		s.FGA++
		s.FG3M++
		s.FG3A++
		s.Pts += 3
	},
	KindMiss2: func(s *Statline, _ Event) {
		s.FGA++
	},
	KindMiss3: func(s *Statline, _ Event) {
		s.FGA++
		s.FG3A++
	},
	KindFreeThrow: func(s *Statline, e Event) {
		s.FTA++
		if e.Made {
			s.FTM++
			s.Pts++
		}
	},
	KindRebound: func(s *Statline, e Event) {
		s.Reb++
		if e.Offensive {
			s.OReb++
		}
	},
	KindTurnover: func(s *Statline, _ Event) {
		s.Tov++
	},
	KindFoul: func(s *Statline, _ Event) {
		s.PF++
	},
	KindMakeOther: func(_ *Statline, _ Event) {},
	KindMissOther: func(_ *Statline, _ Event) {},
	KindOther:     func(_ *Statline, _ Event) {},
}
