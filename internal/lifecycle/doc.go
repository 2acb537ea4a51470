// Package lifecycle decides which task and offer mutations a caller may
// perform given the current stored state. It performs no I/O: services load
// the rows, ask lifecycle for a verdict, then write.
//
// Task states move pending -> in_progress -> completed. The only backward
// move is in_progress -> pending through a decline by the tasker holding the
// accepted offer.
package lifecycle
