// Package moviepilot provides a client for interacting with the MoviePilot API.
//
// MoviePilot is a media automation server: it searches metadata providers,
// manages subscriptions for movies and TV series, and drives downloaders.
// This package implements an idiomatic Go client for the subset of the API
// needed to search the catalog, create subscriptions, and read download
// progress.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the main API client with token caching and retry logic
//   - Types: domain models (media items, seasons, download tasks)
//   - Request: a single retrying request path shared by every operation
//   - Errors: structured error types for classification
//
// # Usage
//
// Create a client with the server URL and account credentials:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := moviepilot.NewClient(moviepilot.Config{
//		URL:      "http://moviepilot.local:3000",
//		Username: "admin",
//		Password: "secret",
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	results, err := client.SearchMedia(ctx, "interstellar")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Authentication is handled internally. The first request logs in with the
// configured credentials and caches the bearer token until shortly before it
// expires; a 401 response invalidates the cache so the next call logs in
// again. Callers never see tokens.
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrInvalidConfig: invalid client configuration
//   - ErrUnauthorized: authentication failure, never retried
//   - ErrInvalidTMDBID: a TMDB identifier that cannot name a series
//   - APIError: structured API errors with status codes
//
// Transient failures (transport errors, 5xx responses) are retried with a
// linearly growing delay before the last error is returned.
package moviepilot
