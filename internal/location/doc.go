// Package location maps the dining hall names users type to the query
// parameter the cafeteria site expects.
//
// The default registry knows the two campus cafeterias:
//
//	카이마루 -> fclt
//	교수회관 -> emp
//
// Additional halls can be registered through the configuration file without
// touching menu extraction.
package location
