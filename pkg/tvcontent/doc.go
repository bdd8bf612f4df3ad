// Package tvcontent manages the playlist of content items shown on a TV
// display: a URL, how long to show it, an optional caption and ordering.
//
// The whole collection lives in one JSON document of the form
// {"contents": [...]}. Every mutation reads the full document, changes an
// in-memory copy and writes the full document back through a DocumentStore.
// Stores for the local filesystem, memory, S3 and Postgres are provided
// under storage/.
package tvcontent
