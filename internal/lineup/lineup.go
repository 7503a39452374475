// Package lineup turns the lineup documents found in match records into
// model.Lineups. Two layouts exist in the wild: a flat one with
// blue_lineup/red_lineup arrays and an older nested one under
// teams[0].<side>[0].lineup[0].member. Entries use either terse keys
// (goal, assist, keeper) or Spanish ones (goles, asistencias, portero).
package lineup

import (
	"encoding/json"
	"errors"
	"strings"

	"futsal-app/internal/model"

	"github.com/tidwall/gjson"
)

var ErrUnknownShape = errors.New("unrecognized lineup shape")

const (
	flatBlueKey = "blue_lineup"
	flatRedKey  = "red_lineup"

	nestedBlueKey = "teams.0.blue.0.lineup.0.member"
	nestedRedKey  = "teams.0.red.0.lineup.0.member"
)

var (
	nameKeys     = []string{"name", "nombre", "player", "jugador"}
	goalKeys     = []string{"goal", "goles"}
	assistKeys   = []string{"assist", "asistencias"}
	concededKeys = []string{"keeper", "portero"}
)

// Normalize reads either layout. When neither matches it returns empty
// rosters together with ErrUnknownShape.
func Normalize(raw []byte) (model.Lineups, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return model.Lineups{}, ErrUnknownShape
	}
	return fromResult(gjson.ParseBytes(raw))
}

func fromResult(doc gjson.Result) (model.Lineups, error) {
	blueFlat := doc.Get(flatBlueKey)
	redFlat := doc.Get(flatRedKey)
	if blueFlat.Exists() || redFlat.Exists() {
		return model.Lineups{
			Blue: members(blueFlat),
			Red:  members(redFlat),
		}, nil
	}

	blueNested := doc.Get(nestedBlueKey)
	redNested := doc.Get(nestedRedKey)
	if blueNested.Exists() || redNested.Exists() {
		return model.Lineups{
			Blue: members(blueNested),
			Red:  members(redNested),
		}, nil
	}
	return model.Lineups{}, ErrUnknownShape
}

func members(list gjson.Result) []model.Participation {
	if !list.IsArray() {
		return []model.Participation{}
	}
	entries := list.Array()
	out := make([]model.Participation, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(firstPresent(entry, nameKeys).String())
		if name == "" {
			continue
		}
		out = append(out, model.Participation{
			Player:   name,
			Goals:    counter(entry, goalKeys),
			Assists:  counter(entry, assistKeys),
			Conceded: counter(entry, concededKeys),
		})
	}
	return out
}

func firstPresent(entry gjson.Result, keys []string) gjson.Result {
	for _, key := range keys {
		if v := entry.Get(key); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func counter(entry gjson.Result, keys []string) int {
	v := firstPresent(entry, keys)
	if !v.Exists() {
		return 0
	}
	n := v.Int()
	if n < 0 {
		return 0
	}
	return int(n)
}

type flatDoc struct {
	Blue []model.Participation `json:"blue_lineup"`
	Red  []model.Participation `json:"red_lineup"`
}

// Encode writes the flat layout with terse keys.
func Encode(l model.Lineups) []byte {
	doc := flatDoc{Blue: l.Blue, Red: l.Red}
	if doc.Blue == nil {
		doc.Blue = []model.Participation{}
	}
	if doc.Red == nil {
		doc.Red = []model.Participation{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return []byte(`{"blue_lineup":[],"red_lineup":[]}`)
	}
	return data
}
