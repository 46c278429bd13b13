// Package lawmatch provides a Go client for the lawmatch HTTP API.
//
// The client wraps the lawyer search endpoint and returns composed,
// ranked result pages:
//
//	client := lawmatch.New("https://api.advolink.example",
//	    lawmatch.WithAPIKey("secret"),
//	)
//	res, err := client.Search(ctx, lawmatch.SearchParams{
//	    PracticeArea: "family law",
//	    Locations:    "Austin",
//	    Budget:       "$150 - $300/hr",
//	    Sort:         "relevance",
//	})
//
// Top matches appear separately from the paged results on page 1.
// Errors from the API are returned as *APIError; use errors.As to
// inspect the HTTP status and machine-readable code.
package lawmatch
