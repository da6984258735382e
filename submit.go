package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "submit <course-id> <assignment-id> <file>...",
		Short: "Submit files to an assignment",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			assignmentID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			if err := cli.Canvas.SubmitAssignment(cmd.Context(), courseID, assignmentID, args[2:], comment, cfg.Token); err != nil {
				return err
			}

			cmd.Printf("Submitted %d file(s) to assignment %d\n", len(args[2:]), assignmentID)

			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "text comment attached to the submission")

	return cmd
}
