package model

// Stats is the admin dashboard summary. OnlineUsers comes from the hub's
// presence set and resets with the process; the rest are collection counts.
type Stats struct {
	TotalSongs   int64 `json:"totalSongs"`
	TotalAlbums  int64 `json:"totalAlbums"`
	TotalUsers   int64 `json:"totalUsers"`
	TotalArtists int64 `json:"totalArtists"`
	OnlineUsers  int   `json:"onlineUsers"`
}
