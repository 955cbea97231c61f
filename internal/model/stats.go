package model

// StatsResponse is the API response for global platform statistics.
type StatsResponse struct {
	TotalClips    int `json:"totalClips"`
	TotalLikes    int `json:"totalLikes"`
	TotalComments int `json:"totalComments"`
	TotalAuthors  int `json:"totalAuthors"`
	Clips24h      int `json:"clips24h"`
}
