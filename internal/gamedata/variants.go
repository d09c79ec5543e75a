package gamedata

import "time"

// VariantDef defines a named game configuration loaded from JSON.
type VariantDef struct {
	ID              string  `json:"id"`              // Unique identifier (e.g., "classic")
	Name            string  `json:"name"`            // Display name (e.g., "Classic")
	Description     string  `json:"description"`     // One-line summary for menus
	Rows            int     `json:"rows"`            // Grid height including borders
	Cols            int     `json:"cols"`            // Grid width including borders
	LevelCount      int     `json:"levelCount"`      // Rounds per game
	WallProbability float64 `json:"wallProbability"` // Chance of each interior wall
	MinOpenFraction float64 `json:"minOpenFraction"` // Reachable share of all cells
	SecondsPerLevel int     `json:"secondsPerLevel"` // Countdown per round
	KeepExitOpen    bool    `json:"keepExitOpen"`    // Force the far corner open
	StartDelayMs    int     `json:"startDelayMs"`    // "Get ready" pause before round 1
	ClearDelayMs    int     `json:"clearDelayMs"`    // Pause between rounds
}

// StartDelay returns the pre-game pause as a duration.
func (v *VariantDef) StartDelay() time.Duration {
	return time.Duration(v.StartDelayMs) * time.Millisecond
}

// ClearDelay returns the between-round pause as a duration.
func (v *VariantDef) ClearDelay() time.Duration {
	return time.Duration(v.ClearDelayMs) * time.Millisecond
}

// VariantsFile represents the structure of variants.json.
type VariantsFile struct {
	Variants []VariantDef `json:"variants"`
}

// LoadVariants loads variant definitions from the embedded variants.json file.
func LoadVariants() ([]VariantDef, error) {
	file, err := Load[VariantsFile]("variants.json")
	if err != nil {
		return nil, err
	}
	return file.Variants, nil
}

// MustLoadVariants loads variant definitions, panicking on error.
func MustLoadVariants() []VariantDef {
	variants, err := LoadVariants()
	if err != nil {
		panic(err)
	}
	return variants
}
