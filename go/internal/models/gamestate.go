package models

import (
	"encoding/json"
	"fmt"
)

// RoundingMethod identifies one of the fixed rounding policies.
type RoundingMethod string

const (
	RoundingStandard  RoundingMethod = "standard"
	RoundingBankers   RoundingMethod = "bankers"
	RoundingRoundUp   RoundingMethod = "roundUp"
	RoundingRoundDown RoundingMethod = "roundDown"
	RoundingCeil      RoundingMethod = "ceil"
	RoundingFloor     RoundingMethod = "floor"
)

// CardValues is the fixed voting deck. The unknown card is modeled
// separately, see Vote.
var CardValues = []int{1, 2, 3, 5, 8, 13, 21}

// Vote is a cast card: either a numeric story point value or the "?"
// card. A player who has not voted carries a nil *Vote.
type Vote struct {
	Points  int
	Unknown bool
}

// UnknownVote returns the "?" card.
func UnknownVote() *Vote {
	return &Vote{Unknown: true}
}

// NumericVote returns a numeric card.
func NumericVote(points int) *Vote {
	return &Vote{Points: points}
}

// MarshalJSON encodes the vote as a bare number, or as "?" for the
// unknown card, matching the broadcast wire format.
func (v Vote) MarshalJSON() ([]byte, error) {
	if v.Unknown {
		return json.Marshal("?")
	}
	return json.Marshal(v.Points)
}

// UnmarshalJSON accepts a number or the string "?".
func (v *Vote) UnmarshalJSON(data []byte) error {
	var points int
	if err := json.Unmarshal(data, &points); err == nil {
		v.Points = points
		v.Unknown = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid vote value: %s", string(data))
	}
	v.Points = 0
	v.Unknown = true
	return nil
}

// Player is one participant in the session. Edit mode is a view-local
// concern and is deliberately not part of the synchronized snapshot.
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Vote *Vote  `json:"vote"`
}

// GameState is the unit of synchronization: the full session state,
// always transmitted and received as one atomic snapshot.
type GameState struct {
	Players        []Player       `json:"players"`
	UserStory      string         `json:"userStory"`
	ShowResults    bool           `json:"showResults"`
	RoundingMethod RoundingMethod `json:"roundingMethod"`
}
