// Package nutrition computes daily calorie and macronutrient targets plus a
// simple 7-day rotating meal plan. Calculations are transparent and apply
// sensible defaults when stats are missing. This is not medical advice.
package nutrition

import (
	"fmt"
	"math"
	"strings"
)

// Profile is the minimal shared contract across advisory steps. Provide as
// many fields as available; defaults are applied for the rest.
type Profile struct {
	Name            string
	Sex             string // "male" | "female" | ""
	Age             int
	HeightCm        float64
	WeightKg        float64
	ActivityLevel   string // sedentary|light|moderate|active|very_active
	WorkoutsPerWeek int
	Goal            string
	DietPrefs       string
}

// Prefs tunes the calculation policy.
type Prefs struct {
	DeficitKcal      int     // daily deficit
	ProteinGPerKg    float64 // grams per kg body weight
	FatGPerKg        float64
	WorkoutBonusKcal int // additional fuel on training days
	MinFiberG        int
	MaxFiberG        int
	MinKcalFloor     int // never plan below this
}

// DefaultPrefs returns the standard policy: ~500 kcal/day deficit, protein
// 1.8 g/kg, fat 0.8 g/kg, carbs fill the remainder.
func DefaultPrefs() Prefs {
	return Prefs{
		DeficitKcal:      500,
		ProteinGPerKg:    1.8,
		FatGPerKg:        0.8,
		WorkoutBonusKcal: 200,
		MinFiberG:        25,
		MaxFiberG:        35,
		MinKcalFloor:     1200,
	}
}

// Targets holds the daily calorie and macro bands.
type Targets struct {
	KcalRest      int
	KcalWorkout   int
	ProteinG      int
	FatG          int
	CarbsRestG    int
	CarbsWorkoutG int
	FiberMinG     int
	FiberMaxG     int
}

// DayPlan is one day of the rotating meal plan.
type DayPlan struct {
	DayIndex     int // 1..7
	IsWorkoutDay bool
	KcalTarget   int
	Meals        []string
}

// Plan is the full nutrition output a step folds into its text.
type Plan struct {
	Summary string
	Targets Targets
	Days    []DayPlan
	Grocery []string
}

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var breakfasts = []string{
	"Greek yogurt bowl (yogurt 250 g, berries 150 g, granola 30 g)",
	"Protein oats (oats 60 g, milk 250 ml, whey 1 scoop, banana)",
	"Eggs & toast (3 eggs, whole-grain toast, tomato/cucumber)",
}

var lunches = []string{
	"Chicken quinoa salad (chicken 150 g, quinoa 100 g, greens)",
	"Tuna wrap (tuna 150 g, whole-wheat wrap, greens)",
	"Tofu stir-fry (tofu 200 g, mixed veg 200 g, brown rice 120 g)",
}

var dinners = []string{
	"Salmon plate (salmon 150 g, sweet potato 200 g, broccoli 200 g)",
	"Lean beef pasta (beef 120 g, whole-grain pasta 80 g, spinach)",
	"Lentil curry set (lentil curry 250 g, basmati rice 120 g, salad)",
}

var snacks = []string{
	"Apple + peanut butter",
	"Cottage cheese 150 g",
	"Whey shake",
	"Hummus & carrots",
}

var groceries = []string{
	"Chicken breast 1.2 kg", "Salmon 600 g", "Tuna (cans) x3", "Lean beef 500 g",
	"Eggs x12", "Tofu 2 blocks", "Greek yogurt 1.5 kg", "Whey protein 1 tub",
	"Quinoa, brown rice, whole-grain pasta, wraps, oats", "Berries 1 kg (frozen ok)",
	"Bananas 7-10, apples x6", "Leafy greens 2 large bags", "Sweet potatoes 1.5 kg",
	"Broccoli 1 kg, mixed veg 1 kg", "Olive oil, hummus, cottage cheese",
}

// BMR computes the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(sex string, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.HasPrefix(strings.ToLower(sex), "f") {
		return base - 161
	}
	return base + 5
}

// TDEE scales a BMR by the coarse-grained activity factor.
func TDEE(bmr float64, activityLevel string) float64 {
	factor, ok := activityFactors[strings.ToLower(activityLevel)]
	if !ok {
		factor = activityFactors["light"]
	}
	return bmr * factor
}

// InferActivity maps weekly workout count to an activity level.
func InferActivity(workoutsPerWeek int) string {
	switch {
	case workoutsPerWeek <= 1:
		return "sedentary"
	case workoutsPerWeek == 2:
		return "light"
	case workoutsPerWeek == 3:
		return "moderate"
	case workoutsPerWeek == 4:
		return "active"
	default:
		return "very_active"
	}
}

// WorkoutDays spreads the weekly workout count across a 7-day week.
func WorkoutDays(workoutsPerWeek int) []int {
	switch {
	case workoutsPerWeek <= 0:
		return nil
	case workoutsPerWeek == 1:
		return []int{3}
	case workoutsPerWeek == 2:
		return []int{2, 5}
	case workoutsPerWeek == 3:
		return []int{2, 4, 6}
	case workoutsPerWeek == 4:
		return []int{1, 3, 5, 7}
	case workoutsPerWeek == 5:
		return []int{1, 2, 4, 5, 7}
	default:
		return []int{1, 2, 3, 5, 6, 7}
	}
}

// defaultWeight infers a neutral placeholder from height at BMI ~24.
func defaultWeight(heightCm float64) float64 {
	if heightCm >= 140 && heightCm <= 210 {
		return 24.0 * (heightCm / 100.0) * (heightCm / 100.0)
	}
	return 75.0
}

// BuildPlan is the main entrypoint used by the nutrition step.
func BuildPlan(p Profile, prefs Prefs) Plan {
	weight := p.WeightKg
	if weight <= 0 {
		weight = defaultWeight(p.HeightCm)
	}
	height := p.HeightCm
	if height <= 0 {
		height = 175.0
	}
	age := p.Age
	if age <= 0 {
		age = 30
	}
	workouts := p.WorkoutsPerWeek
	if workouts <= 0 {
		workouts = 3
	}
	activity := p.ActivityLevel
	if activity == "" {
		activity = InferActivity(workouts)
	}

	bmr := BMR(p.Sex, weight, height, age)
	tdee := TDEE(bmr, activity)

	kcalRest := int(math.Round(tdee)) - prefs.DeficitKcal
	if kcalRest < prefs.MinKcalFloor {
		kcalRest = prefs.MinKcalFloor
	}
	kcalWorkout := kcalRest + prefs.WorkoutBonusKcal

	proteinG := int(math.Round(weight * prefs.ProteinGPerKg))
	fatG := int(math.Round(weight * prefs.FatGPerKg))
	kcalPF := proteinG*4 + fatG*9
	carbsRest := (kcalRest - kcalPF) / 4
	if carbsRest < 0 {
		carbsRest = 0
	}
	carbsWorkout := (kcalWorkout - kcalPF) / 4
	if carbsWorkout < 0 {
		carbsWorkout = 0
	}

	targets := Targets{
		KcalRest:      kcalRest,
		KcalWorkout:   kcalWorkout,
		ProteinG:      proteinG,
		FatG:          fatG,
		CarbsRestG:    carbsRest,
		CarbsWorkoutG: carbsWorkout,
		FiberMinG:     prefs.MinFiberG,
		FiberMaxG:     prefs.MaxFiberG,
	}

	workoutDays := WorkoutDays(workouts)
	isWorkout := make(map[int]bool, len(workoutDays))
	for _, d := range workoutDays {
		isWorkout[d] = true
	}

	days := make([]DayPlan, 0, 7)
	for i := 1; i <= 7; i++ {
		kcal := targets.KcalRest
		if isWorkout[i] {
			kcal = targets.KcalWorkout
		}
		meals := []string{
			"Breakfast: " + breakfasts[(i-1)%len(breakfasts)],
			"Lunch: " + lunches[(i-1)%len(lunches)],
			"Dinner: " + dinners[(i-1)%len(dinners)],
			"Snack: " + snacks[(i-1)%len(snacks)],
		}
		if kcal >= 2000 {
			meals = append(meals, "Snack: "+snacks[i%len(snacks)])
		}
		days = append(days, DayPlan{DayIndex: i, IsWorkoutDay: isWorkout[i], KcalTarget: kcal, Meals: meals})
	}

	who := p.Name
	if who == "" {
		who = "Client"
	}
	summary := fmt.Sprintf(
		"%s: phase-1 nutrition targets for the coming weeks.\n"+
			"Calories: %d kcal (rest) / %d kcal (workout).\n"+
			"Macros: protein %d g, fat %d g, carbs %d g (rest) / %d g (workout).\n"+
			"Fiber target: %d-%d g/day. Expect ~0.4-0.6 kg/week with good adherence.",
		who, targets.KcalRest, targets.KcalWorkout, targets.ProteinG, targets.FatG,
		targets.CarbsRestG, targets.CarbsWorkoutG, targets.FiberMinG, targets.FiberMaxG,
	)

	return Plan{Summary: summary, Targets: targets, Days: days, Grocery: groceries}
}

// Format renders the plan as the plain-text section a consultation shows.
func (p Plan) Format() string {
	var b strings.Builder
	b.WriteString(p.Summary)
	b.WriteString("\n\n7-day rotation:\n")
	for _, d := range p.Days {
		label := "rest"
		if d.IsWorkoutDay {
			label = "workout"
		}
		fmt.Fprintf(&b, "Day %d (%s, %d kcal):\n", d.DayIndex, label, d.KcalTarget)
		for _, m := range d.Meals {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
	}
	b.WriteString("\nGrocery list:\n")
	for _, g := range p.Grocery {
		fmt.Fprintf(&b, "  - %s\n", g)
	}
	return b.String()
}
