// Package translation talks to the unofficial translate.google.com/translate_a
// endpoints. It encodes a Request for one of two upstream variants, issues it
// under a timeout and normalizes the variant specific response body into the
// translated text or one of a small set of classified errors.
package translation
