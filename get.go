package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/canvas"
	"github.com/pangbo13/SJTU-Canvas-Helper/internal/progress"
)

// newGetCmd downloads course files. The client runs each transfer on one
// goroutine; concurrency across files is decided here with an errgroup.
func newGetCmd() *cobra.Command {
	var (
		jobs    int
		saveDir string
	)

	cmd := &cobra.Command{
		Use:   "get <course-id> [file-id]...",
		Short: "Download course files",
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

			files, err := cli.Canvas.ListCourseFiles(ctx, courseID, cfg.Token)
			if err != nil {
				return err
			}

			wanted := selectFiles(files, args[1:])
			if len(wanted) == 0 {
				return fmt.Errorf("no matching files")
			}

			if saveDir == "" {
				saveDir = cfg.SavePath
			}

			if err := os.MkdirAll(saveDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", saveDir, err)
			}

			if jobs < 1 {
				jobs = 1
			}

			group, ctx := errgroup.WithContext(ctx)
			group.SetLimit(jobs)

			for _, file := range wanted {
				group.Go(func() error {
					report, finish := newProgressBar(file.DisplayName, file.Size)
					defer finish()

					return cli.Canvas.DownloadFile(ctx, &file, cfg.Token, saveDir, report)
				})
			}

			return group.Wait()
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 1, "number of concurrent downloads")
	cmd.Flags().StringVar(&saveDir, "dir", "", "destination directory (default: configured save path)")

	return cmd
}

// selectFiles filters the listing down to the requested file ids; with no
// ids, every file is selected.
func selectFiles(files []canvas.File, ids []string) []canvas.File {
	if len(ids) == 0 {
		return files
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var selected []canvas.File

	for _, file := range files {
		if wanted[strconv.FormatInt(file.ID, 10)] {
			selected = append(selected, file)
		}
	}

	return selected
}

// newProgressBar returns a progress callback rendering to a terminal bar,
// plus a finish func. Off-terminal the callback is a no-op, keeping piped
// output clean.
func newProgressBar(name string, total int64) (progress.Func, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil, func() {}
	}

	bar := pb.Full.Start64(total)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", name+" ")

	report := func(p progress.Payload) {
		if p.Total > 0 {
			bar.SetTotal(p.Total)
		}

		bar.SetCurrent(p.Processed)
	}

	return report, func() { bar.Finish() }
}
