// Package report renders menu query results for the command line.
//
// Three formats are available: plain text (the same text the chat bot
// replies with), JSON for scripting, and Markdown for sharing. All writers
// implement Writer so the menu command can pick one at runtime with New.
package report
