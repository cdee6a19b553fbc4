// Package query answers "what is on the menu at this hall right now".
//
// Service runs the query pipeline for a single location:
//
//  1. resolve the display name to the site parameter
//  2. compute the meal period for the supplied instant
//  3. fetch the menu page
//  4. extract the fragment for the period
//  5. normalize the fragment to display text
//
// Steps run strictly in order and the first failure is returned unchanged,
// so callers can match it with errors.Is against location.ErrUnknownLocation,
// menu.ErrFetch, menu.ErrParse or menu.ErrFragmentNotFound. Nothing is cached
// between queries.
//
// BatchQuerier runs independent queries for several locations concurrently.
package query
