package video

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/paging"
)

// ErrNoConsumerKey is returned when the player page carries no consumer-key
// meta node.
var ErrNoConsumerKey = errors.New("video: no consumer key in player page")

// ErrCourseNotFound is returned when a subject has no video course.
var ErrCourseNotFound = errors.New("video: course not found")

// collectPages walks the platform's indexed pages. rawURL must end with "?"
// or "&"; the pager appends pageSize/pageIndex directly, matching the query
// strings the platform expects.
func collectPages[T any](ctx context.Context, c *Client, rawURL string) ([]T, error) {
	return paging.CollectIndexed(ctx, func(ctx context.Context, pageIndex int) ([]T, paging.Meta, error) {
		pagedURL := fmt.Sprintf("%spageSize=100&pageIndex=%d", rawURL, pageIndex)

		var page itemPage[T]
		if err := c.getJSON(ctx, pagedURL, &page); err != nil {
			return nil, paging.Meta{}, err
		}

		return page.List, paging.Meta{PageCount: page.Page.PageCount, PageNext: page.Page.PageNext}, nil
	})
}

// Subjects lists every lecture-capture subject visible to the session.
func (c *Client) Subjects(ctx context.Context) ([]Subject, error) {
	return collectPages[Subject](ctx, c, c.baseURL+"/system/course/subject/findSubjectVodList?")
}

// GetCourse fetches the video course of one subject.
func (c *Client) GetCourse(ctx context.Context, subjectID, teclID int64) (*Course, error) {
	rawURL := fmt.Sprintf(
		"%s/system/resource/vodVideo/getCourseListBySubject?orderField=courTimes&subjectId=%d&teclId=%d&",
		c.baseURL, subjectID, teclID)

	courses, err := collectPages[Course](ctx, c, rawURL)
	if err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return nil, ErrCourseNotFound
	}

	return &courses[0], nil
}

// ConsumerKey discovers the OAuth consumer key from the player page: a meta
// node with id "xForSecName" whose "vaule" attribute (sic, the platform
// misspells it) holds the key base64 encoded.
func (c *Client) ConsumerKey(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, c.oauthKeyURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	encoded, found := findMetaValue(resp.Body, "xForSecName", "vaule")
	if !found {
		return "", ErrNoConsumerKey
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("video: decoding consumer key: %w", err)
	}

	return string(decoded), nil
}

// findMetaValue scans an HTML document for a meta node with the given id and
// returns the named attribute's value.
func findMetaValue(r io.Reader, id, attrName string) (string, bool) {
	tokenizer := html.NewTokenizer(r)

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if !strings.EqualFold(string(name), "meta") || !hasAttr {
				continue
			}

			var nodeID, value string

			for {
				key, val, more := tokenizer.TagAttr()

				switch string(key) {
				case "id":
					nodeID = string(val)
				case attrName:
					value = string(val)
				}

				if !more {
					break
				}
			}

			if nodeID == id {
				return value, true
			}
		}
	}
}
