package core

import (
	"fmt"
	"strings"
)

const fitnessSystem = "You are a certified fitness coach. Create safe, practical workout plans for adults. " +
	"Balance cardio and strength, include warm-up and cool-down, and respect user constraints. " +
	"When planning, you should request up-to-date local weather via the provided capability before finalizing."

func fitnessUserPrompt(goal string) string {
	return "User goal & constraints:\n" +
		strings.TrimSpace(goal) + "\n\n" +
		"First, request any capabilities you need (e.g., weather, time). " +
		"Only after their results are returned, produce the final **2-week fitness plan** following these rules:\n" +
		"1) 3-5 sessions/week as appropriate for the goal and fitness level.\n" +
		"2) Include warm-up and cool-down for each session.\n" +
		"3) Mix cardio and strength; suggest sets x reps or time.\n" +
		"4) Adapt to weather: Rainy -> prefer indoor/covered that day; Sunny and humid -> reduce outdoor HIIT and add hydration notes.\n" +
		"5) Output sections:\n" +
		"   - Overview (2-3 lines)\n" +
		"   - Week 1 (day-by-day bullets)\n" +
		"   - Week 2 (day-by-day bullets)\n" +
		"   - Progression & Safety (bullets)\n" +
		"   - Weather & Equipment Adjustments (bullets)\n" +
		"   - Optional Tips (bullets)\n"
}

const summarySystem = `You are a professional fitness and nutrition coach creating a detailed and comprehensive summary for your client.

Your summary should include:

1. CLIENT GOALS & TIMELINE
- Primary fitness objectives
- Target timeline and milestones
- Any constraints or limitations mentioned

2. WORKOUT PLAN ACTION ITEMS
- Weekly schedule and structure
- Key exercises and progression

3. NUTRITION PLAN ACTION ITEMS
- Daily calorie and macro targets
- Meal timing and structure

4. HYDRATION & SUPPLEMENT ACTION ITEMS
- Daily hydration targets
- Recommended supplements and timing

Format as clear, actionable items that the client can easily follow and reference.
Use an encouraging, professional coaching tone with clear headers and bullet points.`

func summaryUserPrompt(context string) string {
	return "Here's the complete consultation data:\n\n" +
		context + "\n\n" +
		"Please provide a detailed summary of this fitness and nutrition consultation that the client can use as their action plan."
}

const summaryDisclaimer = "This plan is for informational purposes only. Please consult with healthcare " +
	"professionals before starting any new fitness program or taking supplements, " +
	"especially if you have pre-existing conditions."

func formatSummary(body string) string {
	rule := strings.Repeat("=", 60)
	return fmt.Sprintf("%s\nLIVEWELL - YOUR PERSONALIZED ACTION PLAN\n%s\n\n%s\n\n%s\nDISCLAIMER\n%s\n%s\n",
		rule, rule, strings.TrimSpace(body), rule, rule, summaryDisclaimer)
}
