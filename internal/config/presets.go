package config

import "sort"

// Presets are the per-element scramble settings used across the portfolio.
var Presets = map[string]ScrambleConfig{
	"default":      {SpeedMs: 50, Tick: 1, Step: 1, Scramble: 3, Chance: 0.8},
	"hero-name":    {SpeedMs: 50, Tick: 1, Step: 2, Scramble: 6, Chance: 0.8, Overflow: true},
	"hero-surname": {SpeedMs: 40, Tick: 1, Step: 1, Scramble: 4, Chance: 0.8},
	"hero-title":   {SpeedMs: 35, Tick: 1, Step: 1, Scramble: 4, Chance: 0.8},
	"heading":      {SpeedMs: 30, Tick: 1, Step: 1, Scramble: 2, Chance: 0.8},
	"glitch":       {SpeedMs: 30, Tick: 1, Step: 1, Scramble: 2, Chance: 1, Overflow: true},
	"overdrive":    {SpeedMs: 50, Tick: 1, Step: 1, Scramble: 3, Seed: 6, Chance: 0.8, Overdrive: true},
}

func GetPreset(name string) *ScrambleConfig {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	return &sc
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
