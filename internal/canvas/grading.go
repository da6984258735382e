package canvas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// UpdateGrade posts a grade (and optionally a text comment) for one
// student's submission.
func (c *Client) UpdateGrade(ctx context.Context, courseID, assignmentID, studentID int64, grade, comment, token string) error {
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions/update_grades", courseID, assignmentID)

	form := url.Values{}
	form.Set(fmt.Sprintf("grade_data[%d][posted_grade]", studentID), grade)

	if comment != "" {
		form.Set(fmt.Sprintf("grade_data[%d][text_comment]", studentID), comment)
	}

	return c.submitForm(ctx, "POST", path, form, token)
}

// ModifyAssignmentDates updates an assignment's due and lock timestamps.
// Empty strings clear the corresponding date.
func (c *Client) ModifyAssignmentDates(ctx context.Context, courseID, assignmentID int64, dueAt, lockAt, token string) error {
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d", courseID, assignmentID)

	form := url.Values{}
	form.Set("assignment[due_at]", dueAt)
	form.Set("assignment[lock_at]", lockAt)

	return c.submitForm(ctx, "PUT", path, form, token)
}

// AddAssignmentOverride creates a per-student date override on an assignment.
func (c *Client) AddAssignmentOverride(ctx context.Context, courseID, assignmentID, studentID int64, title, dueAt, lockAt, token string) error {
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/overrides", courseID, assignmentID)

	form := url.Values{}
	form.Add("assignment_override[student_ids][]", strconv.FormatInt(studentID, 10))
	form.Set("assignment_override[title]", title)
	form.Set("assignment_override[due_at]", dueAt)
	form.Set("assignment_override[lock_at]", lockAt)

	return c.submitForm(ctx, "POST", path, form, token)
}

// ModifyAssignmentOverride updates the dates of an existing override.
func (c *Client) ModifyAssignmentOverride(ctx context.Context, courseID, assignmentID, overrideID int64, dueAt, lockAt, token string) error {
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/overrides/%d", courseID, assignmentID, overrideID)

	form := url.Values{}
	form.Set("assignment_override[due_at]", dueAt)
	form.Set("assignment_override[lock_at]", lockAt)

	return c.submitForm(ctx, "PUT", path, form, token)
}

// DeleteAssignmentOverride removes a date override from an assignment.
func (c *Client) DeleteAssignmentOverride(ctx context.Context, courseID, assignmentID, overrideID int64, token string) error {
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/overrides/%d", courseID, assignmentID, overrideID)

	return c.delete(ctx, path, token)
}

// DeleteSubmissionComment removes one comment from a student's submission.
func (c *Client) DeleteSubmissionComment(ctx context.Context, courseID, assignmentID int64, studentID string, commentID int64, token string) error {
	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions/%s/comments/%d",
		courseID, assignmentID, studentID, commentID)

	return c.delete(ctx, path, token)
}

// submitForm posts or puts a form body and drains the response, keeping the
// write operations to success/failure results.
func (c *Client) submitForm(ctx context.Context, method, path string, form url.Values, token string) error {
	var (
		resp *http.Response
		err  error
	)

	if method == http.MethodPut {
		resp, err = c.putForm(ctx, path, form, token)
	} else {
		resp, err = c.postForm(ctx, path, form, token)
	}

	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("canvas: draining response body: %w", err)
	}

	return nil
}
