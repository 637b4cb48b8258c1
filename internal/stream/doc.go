// Package stream forwards indexed ledger records to external streams.
package stream
