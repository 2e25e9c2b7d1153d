package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidyayathra/tutor/internal/review"
	"github.com/vidyayathra/tutor/internal/tutor"
)

var statsCmd = &cobra.Command{
	Use:   "stats [learner-id]",
	Short: "Show a learner's profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		learnerID := tutor.DefaultLearnerID
		if len(args) == 1 {
			learnerID = args[0]
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.ProfileRepo().Load(cmd.Context(), learnerID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			fmt.Printf("No profile found for %q.\n", learnerID)
			return nil
		}

		fmt.Printf("Learner:     %s\n", learnerID)
		fmt.Printf("Level:       %s\n", p.Level)
		fmt.Printf("Confidence:  %.2f\n", p.Confidence)
		fmt.Printf("Questions:   %d\n", p.QuestionCount())
		fmt.Printf("Streak:      %d correct / %d incorrect\n", p.Streak.Correct, p.Streak.Incorrect)
		if p.LastTopic != "" {
			fmt.Printf("Last topic:  %s\n", p.LastTopic)
		}
		if len(p.WeakTopics) > 0 {
			fmt.Printf("Weak topics: %s\n", strings.Join(p.WeakTopics, ", "))
		}
		if len(p.Misconceptions) > 0 {
			fmt.Println("Misconceptions:")
			for _, m := range p.Misconceptions {
				fmt.Printf("  %s  %s (%s)\n", m.Timestamp.Local().Format("2006-01-02"), m.Pattern, m.Topic)
			}
		}

		if plan := review.NewScheduler(p.Reviews).Plan(time.Now()); len(plan) > 0 {
			fmt.Println("Reviews:")
			for _, ts := range plan {
				switch ts.Status {
				case review.StatusDue, review.StatusOverdue:
					fmt.Printf("  %-20s %s\n", ts.Topic, ts.Status)
				default:
					fmt.Printf("  %-20s in %d day(s)\n", ts.Topic, ts.DaysUntil)
				}
			}
		}
		return nil
	},
}
