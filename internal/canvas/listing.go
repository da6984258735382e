package canvas

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Me fetches the calling user's profile. It doubles as the cheap validity
// check for a caller-supplied bearer token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	me, err := getJSON[User](ctx, c, "/api/v1/users/self", nil, token)
	if err != nil {
		return nil, err
	}

	return &me, nil
}

// ListCourses returns every course the token can see, with teachers and
// term included. Access-restricted courses are filtered out.
func (c *Client) ListCourses(ctx context.Context, token string) ([]Course, error) {
	query := url.Values{"include[]": {"teachers", "term"}}

	all, err := listAll[Course](ctx, c, "/api/v1/courses", query, token)
	if err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(all))

	for _, course := range all {
		if !course.IsAccessRestricted() {
			courses = append(courses, course)
		}
	}

	c.logger.Debug("listed courses",
		slog.Int("total", len(all)),
		slog.Int("accessible", len(courses)),
	)

	return courses, nil
}

// ListTACourses returns the courses where the caller is enrolled as a TA.
func (c *Client) ListTACourses(ctx context.Context, token string) ([]Course, error) {
	query := url.Values{
		"include[]":       {"teachers", "term"},
		"enrollment_type": {"ta"},
	}

	return listAll[Course](ctx, c, "/api/v1/courses", query, token)
}

// ListCourseFiles returns all files of a course.
func (c *Client) ListCourseFiles(ctx context.Context, courseID int64, token string) ([]File, error) {
	return listAll[File](ctx, c, fmt.Sprintf("/api/v1/courses/%d/files", courseID), nil, token)
}

// ListCourseImages returns the image files of a course.
func (c *Client) ListCourseImages(ctx context.Context, courseID int64, token string) ([]File, error) {
	query := url.Values{"content_types[]": {"image"}}

	return listAll[File](ctx, c, fmt.Sprintf("/api/v1/courses/%d/files", courseID), query, token)
}

// ListFolderFiles returns the files directly inside a folder.
func (c *Client) ListFolderFiles(ctx context.Context, folderID int64, token string) ([]File, error) {
	return listAll[File](ctx, c, fmt.Sprintf("/api/v1/folders/%d/files", folderID), nil, token)
}

// ListCourseFolders returns every folder of a course.
func (c *Client) ListCourseFolders(ctx context.Context, courseID int64, token string) ([]Folder, error) {
	return listAll[Folder](ctx, c, fmt.Sprintf("/api/v1/courses/%d/folders", courseID), nil, token)
}

// ListFolderFolders returns the sub-folders directly inside a folder.
func (c *Client) ListFolderFolders(ctx context.Context, folderID int64, token string) ([]Folder, error) {
	return listAll[Folder](ctx, c, fmt.Sprintf("/api/v1/folders/%d/folders", folderID), nil, token)
}

// GetFolder fetches a single folder by id.
func (c *Client) GetFolder(ctx context.Context, folderID int64, token string) (*Folder, error) {
	folder, err := getJSON[Folder](ctx, c, fmt.Sprintf("/api/v1/folders/%d", folderID), nil, token)
	if err != nil {
		return nil, err
	}

	return &folder, nil
}

// GetColors fetches the user's custom course colors.
func (c *Client) GetColors(ctx context.Context, token string) (*Colors, error) {
	colors, err := getJSON[Colors](ctx, c, "/api/v1/users/self/colors", nil, token)
	if err != nil {
		return nil, err
	}

	return &colors, nil
}

// ListCourseUsers returns the users enrolled in a course.
func (c *Client) ListCourseUsers(ctx context.Context, courseID int64, token string) ([]User, error) {
	return listAll[User](ctx, c, fmt.Sprintf("/api/v1/courses/%d/users", courseID), nil, token)
}

// ListCourseStudents returns the student roster of a course. The students
// endpoint returns the full roster for page 0, so no pagination loop runs.
func (c *Client) ListCourseStudents(ctx context.Context, courseID int64, token string) ([]User, error) {
	return listPage[User](ctx, c, fmt.Sprintf("/api/v1/courses/%d/students", courseID), nil, token, 0)
}

// ListAssignments returns a course's assignments with submission, override
// and date details included.
func (c *Client) ListAssignments(ctx context.Context, courseID int64, token string) ([]Assignment, error) {
	query := url.Values{"include[]": {"submission", "overrides", "all_dates"}}

	return listAll[Assignment](ctx, c, fmt.Sprintf("/api/v1/courses/%d/assignments", courseID), query, token)
}

// ListSubmissions returns every student's submission for an assignment,
// with comments included. Requires a grading role.
func (c *Client) ListSubmissions(ctx context.Context, courseID, assignmentID int64, token string) ([]Submission, error) {
	query := url.Values{"include[]": {"submission_comments"}}
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions", courseID, assignmentID)

	return listAll[Submission](ctx, c, path, query, token)
}

// GetSubmission fetches one student's submission for an assignment.
func (c *Client) GetSubmission(ctx context.Context, courseID, assignmentID, studentID int64, token string) (*Submission, error) {
	query := url.Values{"include[]": {"submission_comments"}}
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions/%d", courseID, assignmentID, studentID)

	submission, err := getJSON[Submission](ctx, c, path, query, token)
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// GetMySubmission fetches the caller's own submission for an assignment.
func (c *Client) GetMySubmission(ctx context.Context, courseID, assignmentID int64, token string) (*Submission, error) {
	query := url.Values{"include[]": {"submission_comments"}}
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions/self", courseID, assignmentID)

	submission, err := getJSON[Submission](ctx, c, path, query, token)
	if err != nil {
		return nil, err
	}

	return &submission, nil
}
