package localstore

import "context"

// Prefs adapts a Store's preference table to the synchronous key-value
// contract the application state expects. Errors degrade to absent reads;
// preference persistence is advisory and never blocks the UI.
type Prefs struct {
	Store Store
}

func (p Prefs) ActiveCharacter(userID string) (string, bool) {
	if p.Store == nil {
		return "", false
	}
	value, found, err := p.Store.GetPreference(context.Background(), userID, PrefActiveCharacter)
	if err != nil || !found {
		return "", false
	}
	return value, true
}

func (p Prefs) SetActiveCharacter(userID, characterID string) error {
	if p.Store == nil {
		return nil
	}
	return p.Store.SetPreference(context.Background(), userID, PrefActiveCharacter, characterID)
}

func (p Prefs) ClearActiveCharacter(userID string) error {
	if p.Store == nil {
		return nil
	}
	return p.Store.DeletePreference(context.Background(), userID, PrefActiveCharacter)
}
