package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/livewell-ai/livewell/config"
	"github.com/livewell-ai/livewell/internal/agent/core"
	"github.com/livewell-ai/livewell/internal/telemetry"
)

func consultCMD() *cobra.Command {
	var cfgPath string
	var goal string
	var consult = &cobra.Command{
		Use:   "consult",
		Short: "Run one advisory consultation from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)

			if goal == "" {
				fmt.Println("==================================================")
				fmt.Println("           LIVE WELL AI - Health Advisor")
				fmt.Println("==================================================")
				fmt.Println()
				fmt.Print("Tell me your health goal and constraints: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read goal: %w", err)
				}
				goal = strings.TrimSpace(line)
			}

			logger := log.New(log.Writer(), "[ADVISOR] ", log.LstdFlags)
			tele := telemetry.NewTelemetry(cfg.Telemetry)
			engine, err := core.NewEngine(cfg, logger, tele)
			if err != nil {
				return fmt.Errorf("build engine: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.General.DefaultTimeout)
			defer cancel()

			result, err := engine.Run(ctx, core.Update{core.KeyUserGoal: goal})
			if err != nil {
				return fmt.Errorf("consultation failed: %w", err)
			}

			printSection("FITNESS PLAN", result.Get(core.KeyFitnessPlan))
			printSection("NUTRITION PLAN", result.Get(core.KeyNutritionPlan))
			printSection("HYDRATION & SUPPLEMENT PLAN", result.Get(core.KeyHydrationPlan))

			fmt.Println()
			fmt.Println(result.Get(core.KeySummary))
			fmt.Println()
			fmt.Println("Thank you for using Live Well AI. Stay healthy!")
			return nil
		},
	}
	consult.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	consult.Flags().StringVarP(&goal, "goal", "g", "", "health goal and constraints (prompted when omitted)")

	return consult
}

func printSection(title, body string) {
	fmt.Println()
	fmt.Printf("=== %s ===\n", title)
	fmt.Println(body)
}
