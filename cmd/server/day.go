package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/service"
)

var (
	dayEmail string
	dayDate  string
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show a day's meals and totals",
	Long: `Print every meal logged on a date with its calories and protein,
followed by the day's totals.

EXAMPLES:

  nutritrack day --email ada@example.com                 # today
  nutritrack day --email ada@example.com --date 2024-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, err := application.Users.GetByEmail(ctx, dayEmail)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no user with email %s", dayEmail)
		}

		date := dayDate
		if date == "" {
			date = time.Now().Format(models.DateLayout)
		}
		day, err := application.Days.GetAssembledDay(ctx, date, user.ID)
		if err != nil {
			return err
		}
		printDay(cmd.OutOrStdout(), date, day)
		return nil
	},
}

// printDay renders an assembled day. A nil day means nothing was logged.
func printDay(w io.Writer, date string, day *service.AssembledDayDTO) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintln(w, date)
	if day == nil || len(day.Meals) == 0 {
		faint.Fprintln(w, "  Nothing logged.")
		return
	}

	for _, m := range day.Meals {
		kind := ""
		if m.Kind == service.MealKindFake {
			kind = faint.Sprint(" (quick)")
		}
		fmt.Fprintf(w, "  %s %8.1f kcal %6.1f g protein%s\n", padRight(m.Name, 24), m.Calories, m.Protein, kind)
	}
	fmt.Fprintf(w, "  %s %s %s\n",
		padRight("Total", 24),
		color.New(color.FgGreen, color.Bold).Sprintf("%8.1f kcal", day.Calories),
		color.New(color.FgCyan).Sprintf("%6.1f g protein", day.Protein))
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	dayCmd.Flags().StringVar(&dayEmail, "email", "", "email of the user")
	dayCmd.Flags().StringVar(&dayDate, "date", "", "date as YYYY-MM-DD (default today)")
	_ = dayCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(dayCmd)
}
