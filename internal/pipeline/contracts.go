package pipeline

import (
	"GameFlowApi/internal/clock"
	"GameFlowApi/internal/gameflow"
)

// The types below are the JSON contracts the store serves to the frontend.
// Field names and shapes are load-bearing; renderers bind to them directly.

type TeamScore struct {
	Tricode string `json:"tricode"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
}

type GameScore struct {
	GameID   string    `json:"gameId"`
	Date     string    `json:"date"`
	HomeTeam TeamScore `json:"homeTeam"`
	AwayTeam TeamScore `json:"awayTeam"`
	Status   string    `json:"status"`
}

// PlayerTotals is a player's full-game line plus the derived metrics hv
// (hustle value), prod (production per minute) and eff (efficiency).
type PlayerTotals struct {
	Min float64 `json:"min"`
	gameflow.Statline
	PlusMinus int     `json:"plusMinus"`
	HV        int     `json:"hv"`
	Prod      float64 `json:"prod"`
	Eff       int     `json:"eff"`
}

// BoxStint is the flat per-stint row of the boxscore contract.
type BoxStint struct {
	Period    int            `json:"period"`
	InTime    clock.Duration `json:"inTime"`
	OutTime   clock.Duration `json:"outTime"`
	Minutes   float64        `json:"minutes"`
	PlusMinus int            `json:"plusMinus"`
	gameflow.Statline
}

type BoxPlayer struct {
	PlayerID string       `json:"playerId"`
	Name     string       `json:"name"`
	Team     string       `json:"team"`
	Totals   PlayerTotals `json:"totals"`
	Stints   []BoxStint   `json:"stints"`
}

// PeriodLine is one period's shooting summary for one team. The box score
// feed only carries game-level totals, so a single "Game" line stands in for
// true per-period splits.
type PeriodLine struct {
	Period string `json:"period"`
	FGM    int    `json:"fgm"`
	FGA    int    `json:"fga"`
	FG3M   int    `json:"fg3m"`
	FG3A   int    `json:"fg3a"`
	FTM    int    `json:"ftm"`
	FTA    int    `json:"fta"`
	Pts    int    `json:"pts"`
}

type Boxscore struct {
	GameID   string      `json:"gameId"`
	Date     string      `json:"date"`
	HomeTeam TeamScore   `json:"homeTeam"`
	AwayTeam TeamScore   `json:"awayTeam"`
	Players  []BoxPlayer `json:"players"`

	TeamTotals struct {
		Home gameflow.Statline `json:"home"`
		Away gameflow.Statline `json:"away"`
	} `json:"teamTotals"`

	PeriodTotals struct {
		Home []PeriodLine `json:"home"`
		Away []PeriodLine `json:"away"`
	} `json:"periodTotals"`
}

type FlowEvent struct {
	Clock       string `json:"clock"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type FlowStint struct {
	Period    int               `json:"period"`
	InTime    clock.Duration    `json:"inTime"`
	OutTime   clock.Duration    `json:"outTime"`
	Minutes   float64           `json:"minutes"`
	PlusMinus int               `json:"plusMinus"`
	Stats     gameflow.Statline `json:"stats"`
	Events    []FlowEvent       `json:"events"`
}

type FlowPlayer struct {
	PlayerID string      `json:"playerId"`
	Name     string      `json:"name"`
	Team     string      `json:"team"`
	Stints   []FlowStint `json:"stints"`
}

type TeamRef struct {
	Tricode string `json:"tricode"`
	Name    string `json:"name"`
}

type Gameflow struct {
	GameID   string       `json:"gameId"`
	HomeTeam TeamRef      `json:"homeTeam"`
	AwayTeam TeamRef      `json:"awayTeam"`
	Players  []FlowPlayer `json:"players"`
}
