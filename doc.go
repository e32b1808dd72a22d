// Package flightdb keeps flight inventory records in memory, indexed by flight
// number, and persists them to a flat text file.
//
// Every record in the index is written to the file, one line per flight, in
// ascending flight number order:
//
//	<number> <destination> <seats> <deleted>
//
// Deleting a flight only marks it as deleted and clears its destination and
// seats. The record stays in the index and in the file, and updating it
// makes it available again.
package flightdb
