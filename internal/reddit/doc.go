// Package reddit implements the comment source over the Reddit data API.
//
// Client handles application-only OAuth and listing fetches; Stream polls a
// multireddit's newest comments and delivers them in order, skipping anything
// already seen. Fetches are rate limited, retried and breaker-protected.
package reddit
