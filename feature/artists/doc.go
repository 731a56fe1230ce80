// Package artists manages the follow list and pulls releases of followed
// artists from the catalog.
//
// A refresh stores the albums and singles dated within the last
// release_months_back thirty-day months. Releases not stored before are
// flagged as new and the artist's last_checked time is set. Listing an
// artist's releases stores its whole catalog without flagging anything.
//
// # Routes
//
//	GET    /artists               followed artists by name
//	POST   /artists               follow an artist
//	DELETE /artists/:id           unfollow, dropping its releases
//	POST   /artists/:id/refresh   fetch recent releases
//	GET    /artists/:id/releases  sync and list all releases
package artists
