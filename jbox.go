package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/jbox"
)

func newJBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jbox",
		Short: "Work with the JBox cloud storage",
	}

	cmd.AddCommand(newJBoxSpaceCmd())
	cmd.AddCommand(newJBoxPutCmd())

	return cmd
}

func newJBoxSpaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "space",
		Short: "Show the personal space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			info, err := jboxSpace(cmd, cli.JBox)
			if err != nil {
				return err
			}

			cmd.Printf("Library: %s\nSpace:   %s\n", info.LibraryID, info.SpaceID)

			return nil
		},
	}
}

// newJBoxPutCmd pushes Canvas course files straight into JBox without
// touching the local disk.
func newJBoxPutCmd() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "put <course-id> [file-id]...",
		Short: "Copy course files into JBox",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			info, err := jboxSpace(cmd, cli.JBox)
			if err != nil {
				return err
			}

			files, err := cli.Canvas.ListCourseFiles(ctx, courseID, cfg.Token)
			if err != nil {
				return err
			}

			wanted := selectFiles(files, args[1:])
			if len(wanted) == 0 {
				return fmt.Errorf("no matching files")
			}

			for i := range wanted {
				file := &wanted[i]

				report, finish := newProgressBar(file.DisplayName, file.Size)

				err := cli.UploadFileToJBox(ctx, file, saveDir, info, report)

				finish()

				if err != nil {
					return err
				}
			}

			cmd.Printf("Uploaded %d file(s) to %s\n", len(wanted), saveDir)

			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "dir", "/", "destination directory inside JBox")

	return cmd
}

// jboxSpace resolves the personal space with the stored user token.
func jboxSpace(cmd *cobra.Command, cli *jbox.Client) (*jbox.LoginInfo, error) {
	if cfg.JBoxUserToken == "" {
		return nil, fmt.Errorf("no JBox token stored, run \"%s login jbox\" first", cmd.Root().Name())
	}

	space, err := cli.GetSpaceInfo(cmd.Context(), cfg.JBoxUserToken)
	if err != nil {
		return nil, err
	}

	return space.Info(), nil
}
