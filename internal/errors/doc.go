// Package errors provides structured, coded errors for starbug.
//
// Every error carries a code (e.g. "E110") registered in a table that maps
// the code to a category, a short message and a longer detail:
//
//	err := errors.New("E100").
//	    WithDetail(`path "/about" is registered twice`).
//	    WithSuggestion("Give every route a distinct path")
//
//	fmt.Println(err.Format())
//	// ERROR E100: Duplicate route path
//	//
//	//   path "/about" is registered twice
//	//
//	//   Hint: Give every route a distinct path
//
// Two SiteErrors with the same code match under errors.Is, so callers can
// compare against sentinels such as router.ErrNotFound even when the
// returned error carries extra detail.
package errors
