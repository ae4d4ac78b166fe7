// Package hydration computes daily hydration volume targets and a supplement
// cheatsheet from body mass, climate and workout load. Like the nutrition
// calculator it is a pure computation with conservative defaults.
package hydration

import (
	"fmt"
	"strings"
)

// Profile describes the client for hydration purposes.
type Profile struct {
	MassKg      float64
	VitaminDLow bool // deficient or low sun exposure
}

// Climate is the average conditions the client trains in.
type Climate struct {
	AvgTempC       float64
	AvgHumidityPct float64
}

// Workout is one planned session in a typical week.
type Workout struct {
	Day       string
	Minutes   int
	Intensity string // "moderate" | "vigorous"
}

// SessionGuidance is the hydration rule set for one workout.
type SessionGuidance struct {
	Workout    Workout
	PreMl      int
	DuringMl   int
	PostMl     int
	SodiumNote string
}

// Plan is the hydration and supplement output a step folds into its text.
type Plan struct {
	BaselineMlPerDay int
	HeatAdjustmentMl int
	Sessions         []SessionGuidance
	Supplements      []string
	Notes            []string
}

const (
	baselineMlPerKg  = 35
	minBaselineMl    = 1500
	hotTempC         = 30
	humidPct         = 70
	heatAdjustmentMl = 500
	longSessionMin   = 60
)

// Baseline returns the daily baseline water intake in ml for a body mass.
func Baseline(massKg float64) int {
	if massKg <= 0 {
		massKg = 70
	}
	ml := int(massKg * baselineMlPerKg)
	if ml < minBaselineMl {
		ml = minBaselineMl
	}
	// round to the nearest 50 ml for a usable number
	return (ml + 25) / 50 * 50
}

// Build computes the full hydration and supplement plan.
func Build(p Profile, c Climate, workouts []Workout) Plan {
	plan := Plan{BaselineMlPerDay: Baseline(p.MassKg)}

	if c.AvgTempC >= hotTempC || c.AvgHumidityPct >= humidPct {
		plan.HeatAdjustmentMl = heatAdjustmentMl
		plan.Notes = append(plan.Notes,
			fmt.Sprintf("Hot/humid climate (%.0f C, %.0f%% humidity): add %d ml across the day and favour cooler training hours.",
				c.AvgTempC, c.AvgHumidityPct, heatAdjustmentMl))
	}

	for _, w := range workouts {
		g := SessionGuidance{Workout: w, PreMl: 500}
		perQuarter := 200
		post := 600
		if strings.EqualFold(w.Intensity, "vigorous") {
			perQuarter = 250
			post = 750
		}
		g.DuringMl = w.Minutes / 15 * perQuarter
		g.PostMl = post
		if w.Minutes >= longSessionMin || strings.EqualFold(w.Intensity, "vigorous") {
			g.SodiumNote = "add 300-600 mg sodium (electrolyte tab or salted snack)"
		}
		plan.Sessions = append(plan.Sessions, g)
	}

	plan.Supplements = []string{
		"Whey or plant protein: fill the gap to your daily protein target, any time of day.",
		"Creatine monohydrate: 3-5 g daily, timing irrelevant; skip if kidney disease.",
		"Caffeine: optional 3 mg/kg 30-45 min pre-workout; avoid within 8 h of bedtime.",
	}
	if p.VitaminDLow {
		plan.Supplements = append(plan.Supplements,
			"Vitamin D3: 1000-2000 IU with a meal; re-test levels after ~3 months.")
	}

	plan.Notes = append(plan.Notes,
		"Urine colour is a practical gauge: pale straw means you are on track.",
		"Spread intake across the day; avoid drinking more than ~1 L in a single hour.")

	return plan
}

// Format renders the plan as the plain-text section a consultation shows.
func (p Plan) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Baseline hydration: %d ml/day", p.BaselineMlPerDay)
	if p.HeatAdjustmentMl > 0 {
		fmt.Fprintf(&b, " (+%d ml heat adjustment)", p.HeatAdjustmentMl)
	}
	b.WriteString("\n\nWorkout hydration:\n")
	if len(p.Sessions) == 0 {
		b.WriteString("  - No workouts scheduled; keep to the daily baseline.\n")
	}
	for _, s := range p.Sessions {
		fmt.Fprintf(&b, "  - %s (%d min %s): %d ml before, %d ml during, %d ml after",
			s.Workout.Day, s.Workout.Minutes, s.Workout.Intensity, s.PreMl, s.DuringMl, s.PostMl)
		if s.SodiumNote != "" {
			fmt.Fprintf(&b, "; %s", s.SodiumNote)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nSupplement cheatsheet:\n")
	for _, s := range p.Supplements {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	b.WriteString("\nSafety & special notes:\n")
	for _, n := range p.Notes {
		fmt.Fprintf(&b, "  - %s\n", n)
	}
	return b.String()
}
