package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// newCoursesCmd lists courses visible to the stored token.
func newCoursesCmd() *cobra.Command {
	var taOnly bool

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			list := cli.Canvas.ListCourses
			if taOnly {
				list = cli.Canvas.ListTACourses
			}

			courses, err := list(cmd.Context(), cfg.Token)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(courses))
			for _, course := range courses {
				rows = append(rows, []string{
					strconv.FormatInt(course.ID, 10),
					course.CourseCode,
					course.Name,
					course.Term.Name,
				})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "CODE", "NAME", "TERM"}, rows)

			return nil
		},
	}

	cmd.Flags().BoolVar(&taOnly, "ta", false, "only courses with a TA enrollment")

	return cmd
}

// newFilesCmd lists the files of a course or folder.
func newFilesCmd() *cobra.Command {
	var folderID int64

	cmd := &cobra.Command{
		Use:   "files <course-id>",
		Short: "List course files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			var files []fileRow

			switch {
			case folderID != 0:
				listed, err := cli.Canvas.ListFolderFiles(cmd.Context(), folderID, cfg.Token)
				if err != nil {
					return err
				}

				for _, f := range listed {
					files = append(files, fileRow{f.ID, f.DisplayName, f.Size})
				}
			case len(args) == 1:
				courseID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return err
				}

				listed, err := cli.Canvas.ListCourseFiles(cmd.Context(), courseID, cfg.Token)
				if err != nil {
					return err
				}

				for _, f := range listed {
					files = append(files, fileRow{f.ID, f.DisplayName, f.Size})
				}
			default:
				return cmd.Usage()
			}

			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{
					strconv.FormatInt(f.id, 10),
					f.name,
					formatSize(f.size),
				})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "SIZE"}, rows)

			return nil
		},
	}

	cmd.Flags().Int64Var(&folderID, "folder", 0, "list a folder instead of a course")

	return cmd
}

type fileRow struct {
	id   int64
	name string
	size int64
}

// newUsersCmd lists the users or students of a course.
func newUsersCmd() *cobra.Command {
	var studentsOnly bool

	cmd := &cobra.Command{
		Use:   "users <course-id>",
		Short: "List course users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			list := cli.Canvas.ListCourseUsers
			if studentsOnly {
				list = cli.Canvas.ListCourseStudents
			}

			users, err := list(cmd.Context(), courseID, cfg.Token)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, user := range users {
				rows = append(rows, []string{
					strconv.FormatInt(user.ID, 10),
					user.Name,
					user.Email,
				})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL"}, rows)

			return nil
		},
	}

	cmd.Flags().BoolVar(&studentsOnly, "students", false, "only the student roster")

	return cmd
}

// newAssignmentsCmd lists the assignments of a course.
func newAssignmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assignments <course-id>",
		Short: "List course assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			assignments, err := cli.Canvas.ListAssignments(cmd.Context(), courseID, cfg.Token)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(assignments))
			for _, a := range assignments {
				rows = append(rows, []string{
					strconv.FormatInt(a.ID, 10),
					a.Name,
					formatDate(a.DueAt),
				})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "DUE"}, rows)

			return nil
		},
	}
}

// newCalendarCmd lists assignment calendar events for one or more courses.
func newCalendarCmd() *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "calendar <course-id>...",
		Short: "List assignment calendar events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contextCodes := make([]string, 0, len(args))
			for _, arg := range args {
				contextCodes = append(contextCodes, "course_"+strings.TrimSpace(arg))
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			events, err := cli.Canvas.ListCalendarEvents(cmd.Context(), contextCodes, startDate, endDate, cfg.Token)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.Title,
					event.ContextName,
					formatDate(event.StartAt),
				})
			}

			printTable(cmd.OutOrStdout(), []string{"TITLE", "COURSE", "START"}, rows)

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")

	return cmd
}
