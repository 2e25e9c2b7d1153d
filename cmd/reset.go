package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidyayathra/tutor/internal/tutor"
)

var resetCmd = &cobra.Command{
	Use:   "reset [learner-id]",
	Short: "Delete a learner's stored profile",
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

		if err := s.ProfileRepo().Delete(cmd.Context(), learnerID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}

		fmt.Printf("Profile %q reset.\n", learnerID)
		return nil
	},
}
