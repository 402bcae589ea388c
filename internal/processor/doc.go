// Package processor contains the logic behind the gtranslate commands. It
// turns flags into translation requests, runs single and batch translations,
// prints results and records them in the history database.
package processor
