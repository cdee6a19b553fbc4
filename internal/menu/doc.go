// Package menu fetches the cafeteria menu page and turns it into display text.
//
// # Components
//
//   - Fetcher: downloads the menu page for one location and parses it
//   - Document: a parsed page, used for a single query and then dropped
//   - Selector: the CSS subset used to locate a meal inside a Document
//   - Extractor: maps each meal.Period to a Rule and returns its inner HTML
//   - Normalize: strips line-break markers and un-escapes ampersands
//
// # Usage
//
//	f := menu.NewFetcher(menu.WithTimeout(30 * time.Second))
//	doc, err := f.Fetch(ctx, "fclt")
//	if err != nil {
//	    return err
//	}
//	raw, err := menu.DefaultExtractor().Extract(doc, meal.Lunch)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(menu.Normalize(raw))
//
// Nothing in this package caches pages or retries requests.
package menu
