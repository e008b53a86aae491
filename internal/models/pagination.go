package models

// Pagination is the metadata attached to every paginated list.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// TimelinePage is one page of a viewer's timeline. Built per request, never cached.
type TimelinePage struct {
	Posts      []PostView `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type CommentPage struct {
	Comments   []CommentView `json:"comments"`
	Pagination Pagination    `json:"pagination"`
}

type UserCommentPage struct {
	Comments   []UserCommentView `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}

type PostPage struct {
	Posts      []PostView `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type LikedPostPage struct {
	Posts      []LikedPostView `json:"posts"`
	Pagination Pagination      `json:"pagination"`
}
