package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/video"
)

func newVideoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Browse and download lecture recordings",
	}

	cmd.AddCommand(newVideoSubjectsCmd())
	cmd.AddCommand(newVideoListCmd())
	cmd.AddCommand(newVideoGetCmd())

	return cmd
}

func newVideoSubjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List lecture-capture subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newVideoClient()
			if err != nil {
				return err
			}

			subjects, err := cli.Subjects(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(subjects))
			for _, s := range subjects {
				rows = append(rows, []string{
					strconv.FormatInt(s.SubjectID, 10),
					strconv.FormatInt(s.TeclID, 10),
					s.SubjectName,
					s.UserName,
				})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "TERM", "NAME", "TEACHER"}, rows)

			return nil
		},
	}
}

func newVideoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <subject-id> <term-id>",
		Short: "List recordings of a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			teclID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}

			cli, err := newVideoClient()
			if err != nil {
				return err
			}

			course, err := cli.GetCourse(cmd.Context(), subjectID, teclID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(course.ResponseVoList))
			for _, v := range course.ResponseVoList {
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					v.VideName,
				})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)

			return nil
		},
	}
}

func newVideoGetCmd() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "get <video-id>",
		Short: "Download a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			cli, err := newVideoClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			key, err := cli.ConsumerKey(ctx)
			if err != nil {
				return err
			}

			info, err := cli.GetInfo(ctx, videoID, key)
			if err != nil {
				return err
			}

			if len(info.VideoPlayResponseVoList) == 0 {
				return fmt.Errorf("video %d has no playable streams", videoID)
			}

			if saveDir == "" {
				saveDir = cfg.SavePath
			}

			if err := os.MkdirAll(saveDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", saveDir, err)
			}

			// One file per camera view, numbered by stream position.
			for i := range info.VideoPlayResponseVoList {
				play := &info.VideoPlayResponseVoList[i]

				name := fmt.Sprintf("%s_%d.mp4", info.VideName, i+1)
				savePath := filepath.Join(saveDir, name)

				report, finish := newProgressBar(name, 0)

				err := cli.Download(ctx, play, savePath, report)

				finish()

				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "dir", "", "destination directory (default: configured save path)")

	return cmd
}

// newVideoClient builds a video client with the saved session cookies
// already seeded, so listing commands work without a fresh login.
func newVideoClient() (*video.Client, error) {
	cli, err := newClient()
	if err != nil {
		return nil, err
	}

	if cfg.VideoCookies != "" {
		if err := cli.Video.SeedCookies(cfg.VideoCookies); err != nil {
			return nil, err
		}
	}

	return cli.Video, nil
}
