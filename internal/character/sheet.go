package character

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

// CurrentSheetVersion is the sheet schema version written by this build.
const CurrentSheetVersion = 1

// ErrUnsupportedSheetVersion indicates a sheet written by a newer build.
var ErrUnsupportedSheetVersion = apperrors.New(apperrors.CodeCharacterSheetBadVer, "sheet version is not supported")

// HitPoints tracks current, maximum, and temporary hit points.
type HitPoints struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary,omitempty"`
}

// SpellSlot tracks one spell-slot level.
type SpellSlot struct {
	Max  int `json:"max"`
	Used int `json:"used"`
}

// Spellcasting holds the casting block of a sheet.
type Spellcasting struct {
	Ability     string               `json:"ability,omitempty"`
	SaveDC      int                  `json:"save_dc,omitempty"`
	AttackBonus int                  `json:"attack_bonus,omitempty"`
	Slots       map[string]SpellSlot `json:"slots,omitempty"`
}

// Sheet is the free-form character attribute bag.
//
// Known blocks are typed; everything else round-trips through Extra so a
// sheet edited by a newer build keeps its unknown attributes when saved by
// this one.
type Sheet struct {
	Version      int
	Abilities    map[string]int
	HitPoints    HitPoints
	Skills       map[string]int
	Spellcasting *Spellcasting
	Extra        map[string]json.RawMessage
}

// Validate checks the sheet schema version.
func (s Sheet) Validate() error {
	if s.Version < 1 || s.Version > CurrentSheetVersion {
		return ErrUnsupportedSheetVersion
	}
	return nil
}

const (
	sheetKeyVersion      = "version"
	sheetKeyAbilities    = "abilities"
	sheetKeyHitPoints    = "hit_points"
	sheetKeySkills       = "skills"
	sheetKeySpellcasting = "spellcasting"
)

// MarshalJSON writes the typed blocks alongside preserved unknown keys.
func (s Sheet) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+5)
	for key, value := range s.Extra {
		out[key] = value
	}

	version := s.Version
	if version == 0 {
		version = CurrentSheetVersion
	}
	encode := func(key string, value any) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal sheet %s: %w", key, err)
		}
		out[key] = raw
		return nil
	}

	if err := encode(sheetKeyVersion, version); err != nil {
		return nil, err
	}
	if err := encode(sheetKeyHitPoints, s.HitPoints); err != nil {
		return nil, err
	}
	if s.Abilities != nil {
		if err := encode(sheetKeyAbilities, s.Abilities); err != nil {
			return nil, err
		}
	}
	if s.Skills != nil {
		if err := encode(sheetKeySkills, s.Skills); err != nil {
			return nil, err
		}
	}
	if s.Spellcasting != nil {
		if err := encode(sheetKeySpellcasting, s.Spellcasting); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads the typed blocks and keeps unknown keys in Extra.
func (s *Sheet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal sheet: %w", err)
	}

	parsed := Sheet{Version: CurrentSheetVersion}
	decode := func(key string, target any) error {
		value, ok := raw[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(value, target); err != nil {
			return fmt.Errorf("unmarshal sheet %s: %w", key, err)
		}
		delete(raw, key)
		return nil
	}

	if err := decode(sheetKeyVersion, &parsed.Version); err != nil {
		return err
	}
	if err := decode(sheetKeyAbilities, &parsed.Abilities); err != nil {
		return err
	}
	if err := decode(sheetKeyHitPoints, &parsed.HitPoints); err != nil {
		return err
	}
	if err := decode(sheetKeySkills, &parsed.Skills); err != nil {
		return err
	}
	if err := decode(sheetKeySpellcasting, &parsed.Spellcasting); err != nil {
		return err
	}

	if len(raw) > 0 {
		parsed.Extra = raw
	}

	*s = parsed
	return nil
}

// AbilityModifier returns the standard (score-10)/2 modifier for the named
// ability, rounding toward negative infinity. Unknown abilities read as 10.
func (s Sheet) AbilityModifier(name string) int {
	score, ok := s.Abilities[name]
	if !ok {
		score = 10
	}
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}
