package youtube

import "time"

// Comment is one top-level comment as delivered by the platform,
// newest-first within a page.
type Comment struct {
	CommentID   string
	UserID      string
	Text        string
	PublishedAt time.Time
}

type searchListResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TopLevelComment struct {
				ID      string `json:"id"`
				Snippet struct {
					TextOriginal    string `json:"textOriginal"`
					AuthorChannelID struct {
						Value string `json:"value"`
					} `json:"authorChannelId"`
					AuthorDisplayName string `json:"authorDisplayName"`
					PublishedAt       string `json:"publishedAt"`
					UpdatedAt         string `json:"updatedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosListResponse struct {
	Items []struct {
		Snippet map[string]any `json:"snippet"`
	} `json:"items"`
}

type insertCommentRequest struct {
	Snippet insertCommentSnippet `json:"snippet"`
}

type insertCommentSnippet struct {
	ParentID     string `json:"parentId"`
	TextOriginal string `json:"textOriginal"`
}

type updateVideoRequest struct {
	ID      string         `json:"id"`
	Snippet map[string]any `json:"snippet"`
}
