package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the YouTube Data API v3. Every call is a single
// blocking request with no retry layer; transport failures surface to
// the caller, which decides how much of the run to abandon.
type Client struct {
	apiBase    string
	pageSize   int
	httpClient *http.Client
}

func NewClient(apiBase string, pageSize int, httpClient *http.Client) *Client {
	if strings.TrimSpace(apiBase) == "" {
		apiBase = "https://www.googleapis.com/youtube/v3"
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiBase:    strings.TrimRight(strings.TrimSpace(apiBase), "/"),
		pageSize:   pageSize,
		httpClient: httpClient,
	}
}

// LatestVideo returns the channel's most recent video id, or empty when
// the channel has no videos.
func (c *Client) LatestVideo(ctx context.Context, channelID string) (string, error) {
	query := url.Values{}
	query.Set("part", "id")
	query.Set("channelId", channelID)
	query.Set("order", "date")
	query.Set("maxResults", "1")
	query.Set("type", "video")

	var payload searchListResponse
	if err := c.get(ctx, "/search", query, &payload); err != nil {
		return "", fmt.Errorf("list latest video: %w", err)
	}
	if len(payload.Items) == 0 {
		return "", nil
	}
	return payload.Items[0].ID.VideoID, nil
}

// CommentPage fetches one page of top-level comments for a video in
// remote-delivery order (newest first). pageToken is empty for the first
// page; the returned token is empty on the last page.
func (c *Client) CommentPage(ctx context.Context, videoID, pageToken string) ([]Comment, string, error) {
	query := url.Values{}
	query.Set("part", "snippet")
	query.Set("videoId", videoID)
	query.Set("maxResults", strconv.Itoa(c.pageSize))
	query.Set("order", "time")
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	var payload commentThreadsResponse
	if err := c.get(ctx, "/commentThreads", query, &payload); err != nil {
		return nil, "", fmt.Errorf("list comments: %w", err)
	}

	comments := make([]Comment, 0, len(payload.Items))
	for _, item := range payload.Items {
		top := item.Snippet.TopLevelComment
		published := top.Snippet.PublishedAt
		if published == "" {
			published = top.Snippet.UpdatedAt
		}
		publishedAt, err := time.Parse(time.RFC3339, published)
		if err != nil {
			return nil, "", fmt.Errorf("parse comment %s published time %q: %w", top.ID, published, err)
		}
		userID := top.Snippet.AuthorChannelID.Value
		if userID == "" {
			userID = top.Snippet.AuthorDisplayName
		}
		comments = append(comments, Comment{
			CommentID:   top.ID,
			UserID:      userID,
			Text:        top.Snippet.TextOriginal,
			PublishedAt: publishedAt,
		})
	}
	return comments, payload.NextPageToken, nil
}

// InsertReply posts a reply under a top-level comment.
func (c *Client) InsertReply(ctx context.Context, parentCommentID, text string) error {
	query := url.Values{}
	query.Set("part", "snippet")
	body := insertCommentRequest{Snippet: insertCommentSnippet{
		ParentID:     parentCommentID,
		TextOriginal: text,
	}}
	if err := c.send(ctx, http.MethodPost, "/comments", query, body, nil); err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

// VideoSnippet reads the current snippet of a video, or ok=false when
// the video does not exist.
func (c *Client) VideoSnippet(ctx context.Context, videoID string) (map[string]any, bool, error) {
	query := url.Values{}
	query.Set("part", "snippet")
	query.Set("id", videoID)

	var payload videosListResponse
	if err := c.get(ctx, "/videos", query, &payload); err != nil {
		return nil, false, fmt.Errorf("get video metadata: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, false, nil
	}
	return payload.Items[0].Snippet, true, nil
}

// UpdateVideoSnippet writes a full snippet back. The snippet must come
// from VideoSnippet so untouched fields survive the update.
func (c *Client) UpdateVideoSnippet(ctx context.Context, videoID string, snippet map[string]any) error {
	query := url.Values{}
	query.Set("part", "snippet")
	body := updateVideoRequest{ID: videoID, Snippet: snippet}
	if err := c.send(ctx, http.MethodPut, "/videos", query, body, nil); err != nil {
		return fmt.Errorf("update video metadata: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.send(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.apiBase + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
